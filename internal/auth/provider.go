package auth

import "net/http"

// ContextProvider resolves the caller identity for an incoming request.
// Implementations return ErrNoToken, ErrInvalidToken or ErrExpiredToken
// when the request cannot be authenticated.
type ContextProvider interface {
	Identify(r *http.Request) (*UserContext, error)
}

// StaticProvider attaches the same fixed identity to every request. It is
// the default mode and stands in for a real identity provider integration.
type StaticProvider struct{}

// NewStaticProvider creates a StaticProvider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Ensure StaticProvider implements ContextProvider interface.
var _ ContextProvider = (*StaticProvider)(nil)

// Identify implements ContextProvider. It never fails.
func (p *StaticProvider) Identify(_ *http.Request) (*UserContext, error) {
	return &UserContext{
		ID:    "user_dummy",
		Roles: []string{"dummy_role"},
		Org: &OrgContext{
			ID:                   "org_dummy",
			Slug:                 "dummy-org",
			Role:                 "dummy_admin",
			Permissions:          []string{"read", "write"},
			FeaturePermissionMap: []int64{1, 2},
		},
	}, nil
}
