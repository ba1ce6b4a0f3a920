package domain

import (
	"time"

	"github.com/rburris/roster-api/internal/ids"
)

// User is a member of the directory.
//
// ID is assigned at creation and never changes. Username is globally unique;
// uniqueness is enforced by the storage constraint, not checked here.
// FirstName and LastName are optional and omitted from JSON when unset.
// Timestamps carry millisecond precision and satisfy UpdatedAt >= CreatedAt.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserInput is the payload for creating a user. It doubles as the wire
// shape of the create request.
//
// Password is checked against the password policy and then discarded; this
// service stores no credentials. CreatedAt is accepted for wire compatibility
// with bulk-import clients but is not honored: creation always stamps the
// current instant.
type CreateUserInput struct {
	Username  string     `json:"username"   validate:"required,max=64"`
	FirstName *string    `json:"first_name" validate:"omitempty,max=128"`
	LastName  *string    `json:"last_name"  validate:"omitempty,max=128"`
	Password  *string    `json:"password"   validate:"-"`
	CreatedAt *time.Time `json:"created_at" validate:"-"`
}

// NewUser builds a User from validated input, assigning a fresh id and
// stamping both timestamps with the same instant.
func NewUser(input CreateUserInput) *User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &User{
		ID:        ids.New(),
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
