package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("assigns id and stamps both timestamps with one instant", func(t *testing.T) {
		t.Parallel()

		before := time.Now().UTC().Truncate(time.Millisecond)
		user := NewUser(CreateUserInput{Username: "mlutz"})
		after := time.Now().UTC()

		require.NotNil(t, user)
		assert.Len(t, user.ID, 26, "ids are ULID strings")
		assert.Equal(t, "mlutz", user.Username)
		assert.True(t, user.CreatedAt.Equal(user.UpdatedAt), "fresh users have identical timestamps")
		assert.False(t, user.CreatedAt.Before(before))
		assert.False(t, user.CreatedAt.After(after))
	})

	t.Run("truncates timestamps to millisecond precision", func(t *testing.T) {
		t.Parallel()

		user := NewUser(CreateUserInput{Username: "mlutz"})
		assert.Zero(t, user.CreatedAt.Nanosecond()%int(time.Millisecond))
		assert.Zero(t, user.UpdatedAt.Nanosecond()%int(time.Millisecond))
	})

	t.Run("carries optional names through untouched", func(t *testing.T) {
		t.Parallel()

		first := "Marion"
		user := NewUser(CreateUserInput{Username: "mlutz", FirstName: &first})
		require.NotNil(t, user.FirstName)
		assert.Equal(t, "Marion", *user.FirstName)
		assert.Nil(t, user.LastName)
	})

	t.Run("generates distinct ids", func(t *testing.T) {
		t.Parallel()

		a := NewUser(CreateUserInput{Username: "a"})
		b := NewUser(CreateUserInput{Username: "b"})
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("message lists every violation", func(t *testing.T) {
		t.Parallel()

		err := NewValidationError(
			FieldViolation{Field: "username", Reason: "is required"},
			FieldViolation{Field: "password", Reason: "must be at least 8 characters"},
		)
		assert.Equal(
			t,
			"validation failed: username: is required; password: must be at least 8 characters",
			err.Error(),
		)
	})

	t.Run("empty violation set still reads as a validation failure", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "validation failed", NewValidationError().Error())
	})
}

func TestOptionalUpdate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, OptionalUpdate{State: FieldKeep}, KeepField())
	assert.Equal(t, OptionalUpdate{State: FieldKeep}, OptionalUpdate{}, "zero value keeps")
	assert.Equal(t, OptionalUpdate{State: FieldClear}, ClearField())
	assert.Equal(t, OptionalUpdate{State: FieldSet, Value: "Lutz"}, SetField("Lutz"))
}
