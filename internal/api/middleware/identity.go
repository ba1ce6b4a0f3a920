package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rburris/roster-api/internal/api/shared"
	"github.com/rburris/roster-api/internal/auth"
	"github.com/rburris/roster-api/internal/redact"
)

// IdentityMiddleware resolves the caller identity for API routes.
type IdentityMiddleware struct {
	provider auth.ContextProvider
}

// NewIdentityMiddleware creates a new IdentityMiddleware backed by the given
// provider.
func NewIdentityMiddleware(provider auth.ContextProvider) *IdentityMiddleware {
	if provider == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("provider cannot be nil for IdentityMiddleware")
	}

	return &IdentityMiddleware{
		provider: provider,
	}
}

// Attach resolves the caller identity and stores it in the request context
// for downstream handlers. Requests the provider cannot authenticate are
// rejected with 401; the provider logs the failure detail itself.
func (m *IdentityMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.provider.Identify(r)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrNoToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization required")
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to resolve caller identity", "error", redact.Error(err))
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
				)
			}
			return
		}

		// Continue with the authenticated request
		ctx := auth.WithUserContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
