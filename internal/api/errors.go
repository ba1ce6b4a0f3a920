package api

import (
	"errors"
	"net/http"

	"github.com/rburris/roster-api/internal/auth"
	"github.com/rburris/roster-api/internal/domain"
	"github.com/rburris/roster-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Validation errors
	case errors.As(err, &validationErr):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrNoToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Referential integrity errors
	case errors.Is(err, store.ErrForeignKey):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	// Validation errors carry field-level reasons that are safe to return
	case errors.As(err, &validationErr):
		return validationErr.Error()

	// Authentication errors
	case errors.Is(err, auth.ErrNoToken):
		return "Authorization required"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Entity not found"

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"

	// Referential integrity errors
	case errors.Is(err, store.ErrForeignKey):
		return "Referenced entity does not exist"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}
