// Package domain contains the core business entities, update directives, and
// domain errors of the user directory. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
package domain
