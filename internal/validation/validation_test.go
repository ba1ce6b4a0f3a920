package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rburris/roster-api/internal/domain"
	"github.com/rburris/roster-api/internal/validation"
)

func strPtr(s string) *string { return &s }

// violationFields extracts the violated field names from a gate error.
func violationFields(t *testing.T, err error) []string {
	t.Helper()

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)

	fields := make([]string, 0, len(validationErr.Violations))
	for _, v := range validationErr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestValidateCreate(t *testing.T) {
	t.Parallel()

	gate := validation.NewGate(validation.NewDefaultPasswordPolicy())

	t.Run("accepts minimal input", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, gate.ValidateCreate(domain.CreateUserInput{Username: "mlutz"}))
	})

	t.Run("accepts full input", func(t *testing.T) {
		t.Parallel()
		err := gate.ValidateCreate(domain.CreateUserInput{
			Username:  "mlutz",
			FirstName: strPtr("Marion"),
			LastName:  strPtr("Lutz"),
			Password:  strPtr("correct horse battery staple"),
		})
		assert.NoError(t, err)
	})

	tests := []struct {
		name       string
		input      domain.CreateUserInput
		wantFields []string
		wantReason string
	}{
		{
			name:       "missing username",
			input:      domain.CreateUserInput{},
			wantFields: []string{"username"},
			wantReason: "is required",
		},
		{
			name:       "username too long",
			input:      domain.CreateUserInput{Username: strings.Repeat("a", 65)},
			wantFields: []string{"username"},
			wantReason: "must be at most 64 characters",
		},
		{
			name: "first name too long",
			input: domain.CreateUserInput{
				Username:  "mlutz",
				FirstName: strPtr(strings.Repeat("x", 129)),
			},
			wantFields: []string{"first_name"},
			wantReason: "must be at most 128 characters",
		},
		{
			name: "password too short",
			input: domain.CreateUserInput{
				Username: "mlutz",
				Password: strPtr("short"),
			},
			wantFields: []string{"password"},
			wantReason: "must be at least 8 characters",
		},
		{
			name: "compromised password",
			input: domain.CreateUserInput{
				Username: "mlutz",
				Password: strPtr("password123"),
			},
			wantFields: []string{"password"},
			wantReason: "appears in a list of compromised passwords",
		},
		{
			name: "compromised password matching is case-insensitive",
			input: domain.CreateUserInput{
				Username: "mlutz",
				Password: strPtr("PASSWORD123"),
			},
			wantFields: []string{"password"},
			wantReason: "appears in a list of compromised passwords",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := gate.ValidateCreate(tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.wantFields, violationFields(t, err))
			assert.Contains(t, err.Error(), tc.wantReason)
		})
	}

	t.Run("aggregates every violation", func(t *testing.T) {
		t.Parallel()

		err := gate.ValidateCreate(domain.CreateUserInput{
			Username:  "",
			FirstName: strPtr(strings.Repeat("x", 129)),
			Password:  strPtr("short"),
		})
		require.Error(t, err)
		assert.ElementsMatch(t,
			[]string{"username", "first_name", "password"},
			violationFields(t, err))
	})
}

func TestValidateUpdate(t *testing.T) {
	t.Parallel()

	gate := validation.NewGate(validation.NewDefaultPasswordPolicy())

	t.Run("empty update passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, gate.ValidateUpdate(domain.UserUpdate{}))
	})

	t.Run("keep and clear directives carry nothing to check", func(t *testing.T) {
		t.Parallel()
		err := gate.ValidateUpdate(domain.UserUpdate{
			FirstName: domain.ClearField(),
			LastName:  domain.KeepField(),
		})
		assert.NoError(t, err)
	})

	t.Run("valid set values pass", func(t *testing.T) {
		t.Parallel()
		err := gate.ValidateUpdate(domain.UserUpdate{
			Username:  strPtr("newname"),
			FirstName: domain.SetField("Marion"),
		})
		assert.NoError(t, err)
	})

	t.Run("empty username is rejected", func(t *testing.T) {
		t.Parallel()

		err := gate.ValidateUpdate(domain.UserUpdate{Username: strPtr("")})
		require.Error(t, err)
		assert.Equal(t, []string{"username"}, violationFields(t, err))
		assert.Contains(t, err.Error(), "must not be empty")
	})

	t.Run("overlong set values are rejected together", func(t *testing.T) {
		t.Parallel()

		err := gate.ValidateUpdate(domain.UserUpdate{
			Username:  strPtr(strings.Repeat("a", 65)),
			FirstName: domain.SetField(strings.Repeat("x", 129)),
			LastName:  domain.SetField(strings.Repeat("y", 129)),
		})
		require.Error(t, err)
		assert.ElementsMatch(t,
			[]string{"username", "first_name", "last_name"},
			violationFields(t, err))
	})
}

func TestDefaultPasswordPolicy(t *testing.T) {
	t.Parallel()

	policy := validation.NewDefaultPasswordPolicy()

	t.Run("accepts a strong password", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, policy.Check("correct horse battery staple"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		t.Parallel()
		err := policy.Check("seven77")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("rejects compromised passwords", func(t *testing.T) {
		t.Parallel()
		err := policy.Check("trustno1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compromised")
	})
}

func TestNewGate(t *testing.T) {
	t.Parallel()

	t.Run("panics on nil policy", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { validation.NewGate(nil) })
	})
}

// rejectAllPolicy is a test double that fails every password.
type rejectAllPolicy struct{}

func (rejectAllPolicy) Check(string) error { return errors.New("rejected by policy") }

func TestGateUsesInjectedPolicy(t *testing.T) {
	t.Parallel()

	gate := validation.NewGate(rejectAllPolicy{})
	err := gate.ValidateCreate(domain.CreateUserInput{
		Username: "mlutz",
		Password: strPtr("any password at all"),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"password"}, violationFields(t, err))
	assert.Contains(t, err.Error(), "rejected by policy")
}
