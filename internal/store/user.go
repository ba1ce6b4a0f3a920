package store

import (
	"context"

	"github.com/rburris/roster-api/internal/domain"
)

// UserStore defines the interface for user persistence. Every operation is
// a single statement against one pooled connection; the connection is scoped
// to the call and released on all exit paths.
type UserStore interface {
	// List returns every user in storage order.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Create persists a new user built from validated input, assigning the
	// id and timestamps, and returns the stored state.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)

	// Update applies a partial update and returns the resulting user. Fields
	// the update keeps are untouched; UpdatedAt is always refreshed.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrUsernameExists if the update would take an occupied username.
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)

	// Delete removes a user and returns the exact state that was removed.
	// The removal and the snapshot are one atomic operation.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id string) (*domain.User, error)
}
