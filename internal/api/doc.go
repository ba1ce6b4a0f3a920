// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the user store, translating HTTP concerns to directory operations.
package api
