// Package validation screens inputs before they reach storage. Every check a
// payload fails is collected into a single domain.ValidationError so clients
// see the complete set of problems at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rburris/roster-api/internal/domain"
)

// Gate validates create and update payloads for the user resource.
type Gate struct {
	validate *validator.Validate
	policy   PasswordPolicy
}

// NewGate builds a Gate with the given password policy.
// Panics if policy is nil.
func NewGate(policy PasswordPolicy) *Gate {
	if policy == nil {
		panic("validation: password policy cannot be nil")
	}

	v := validator.New()
	// Violations are reported under the wire name, not the Go field name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}
		return name
	})

	return &Gate{validate: v, policy: policy}
}

// updateBounds mirrors the create constraints for the fields an update can
// set. Nil fields were not set by the update and are skipped.
type updateBounds struct {
	Username  *string `json:"username"   validate:"omitempty,max=64"`
	FirstName *string `json:"first_name" validate:"omitempty,max=128"`
	LastName  *string `json:"last_name"  validate:"omitempty,max=128"`
}

// ValidateCreate checks a create payload: username presence and bounds, name
// bounds, and the password policy when a password is supplied.
func (g *Gate) ValidateCreate(input domain.CreateUserInput) error {
	violations, err := g.structViolations(input)
	if err != nil {
		return err
	}

	if input.Password != nil {
		if policyErr := g.policy.Check(*input.Password); policyErr != nil {
			violations = append(violations, domain.FieldViolation{
				Field:  "password",
				Reason: policyErr.Error(),
			})
		}
	}

	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

// ValidateUpdate checks the bounds of every field the update sets. Keep and
// clear directives carry no value and nothing to check.
func (g *Gate) ValidateUpdate(update domain.UserUpdate) error {
	bounds := updateBounds{Username: update.Username}
	if update.FirstName.State == domain.FieldSet {
		bounds.FirstName = &update.FirstName.Value
	}
	if update.LastName.State == domain.FieldSet {
		bounds.LastName = &update.LastName.Value
	}

	violations, err := g.structViolations(bounds)
	if err != nil {
		return err
	}

	// omitempty treats a set-but-empty string like an unset field, so the
	// non-empty rule for usernames needs an explicit check.
	if update.Username != nil && *update.Username == "" {
		violations = append(violations, domain.FieldViolation{
			Field:  "username",
			Reason: "must not be empty",
		})
	}

	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

// structViolations runs tag validation and converts the result into field
// violations. A non-ValidationErrors failure (a broken struct definition)
// is returned as-is.
func (g *Gate) structViolations(v interface{}) ([]domain.FieldViolation, error) {
	err := g.validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validating input: %w", err)
	}

	violations := make([]domain.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domain.FieldViolation{
			Field:  fe.Field(),
			Reason: constraintReason(fe),
		})
	}
	return violations, nil
}

// constraintReason maps a failed validation tag to a human-readable reason.
func constraintReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
