package models

import (
	"fmt"
	"strings"
)

// ValidationError reports a model field that failed validation on save.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// validateLength checks that the trimmed value has at least min characters.
func validateLength(field, value string, min int) error {
	if len([]rune(strings.TrimSpace(value))) < min {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at least %d characters", min)}
	}
	return nil
}

// validateRequired is validateLength with a distinct error for a blank value.
func validateRequired(field, value string, min int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "cannot be empty"}
	}
	return validateLength(field, value, min)
}

// validateOptional accepts nil; a set value must still be long enough.
func validateOptional(field string, value *string, min int) error {
	if value == nil {
		return nil
	}
	return validateLength(field, *value, min)
}
