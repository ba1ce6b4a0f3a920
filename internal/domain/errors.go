package domain

import "strings"

// FieldViolation is a single failed constraint on a named input field.
type FieldViolation struct {
	Field  string
	Reason string
}

// ValidationError aggregates every violation found in one input, so callers
// surface the complete set in a single response instead of one at a time.
type ValidationError struct {
	Violations []FieldViolation
}

// NewValidationError builds a ValidationError from the given violations.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
