package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rburris/roster-api/internal/auth"
)

// pathID extracts the {id} path parameter. IDs are opaque strings, so no
// format validation happens here; an unknown id simply finds no row.
func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// callerID returns the authenticated caller's ID for log attribution, or an
// empty string when the request carries no identity.
func callerID(r *http.Request) string {
	if user, ok := auth.FromContext(r.Context()); ok {
		return user.ID
	}
	return ""
}
