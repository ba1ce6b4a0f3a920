package store

import (
	"errors"
	"fmt"
)

// Common store errors. Callers classify failures with errors.Is against
// these; implementations wrap them with operation context via fmt.Errorf.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint. The constraint itself is the serialization point for
	// concurrent writers; stores never pre-check.
	ErrDuplicate = errors.New("entity already exists")

	// ErrForeignKey is returned when an operation references an entity that
	// does not exist.
	ErrForeignKey = errors.New("referenced entity does not exist")

	// ErrCorruptRecord is returned when a stored row violates a write-time
	// invariant, such as a malformed timestamp. It is unreachable through
	// normal operation and callers treat it as an internal fault.
	ErrCorruptRecord = errors.New("stored record is corrupt")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrUsernameExists indicates that a user with the given username
	// already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)
