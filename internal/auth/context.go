// Package auth resolves and carries the caller identity attached to each
// API request.
package auth

import "context"

// OrgContext holds the organization claims of an authenticated caller.
type OrgContext struct {
	// The ID of the organization (e.g. "org_123").
	ID string `json:"id"`
	// The slug of the organization (e.g. "org-slug").
	Slug string `json:"slug"`
	// The role of the user in the organization (e.g. "admin").
	Role string `json:"role"`
	// The names of the permissions the user has in the organization.
	Permissions []string `json:"permissions"`
	// Feature-permission map: binary bitmask values for each permission in Permissions.
	FeaturePermissionMap []int64 `json:"feature_permission_map"`
}

// UserContext is the identity made available to handlers once a caller is
// authenticated.
type UserContext struct {
	// User ID (the token subject).
	ID string `json:"id"`
	// Global roles from a custom claim.
	Roles []string `json:"roles"`
	// Optional organization context if the session token included org claims.
	Org *OrgContext `json:"org,omitempty"`
}

// contextKey is an unexported type for context keys defined in this package.
type contextKey struct{}

var userContextKey = contextKey{}

// WithUserContext returns a copy of ctx carrying the caller identity.
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext returns the caller identity stored in ctx, if any.
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}
