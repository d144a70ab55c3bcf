package mkit

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/mkit/pkg/validator"
)

// ValidationError represents field validation errors.
// It's based on url.Values to leverage built-in string slice handling.
// Errors that belong to no field (a CSRF mismatch) are keyed by rule name.
type ValidationError url.Values

// Error implements the error interface.
// Returns a human-readable error message summarizing validation failures.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, field := range e.Fields() {
		if messages := e[field]; len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}

	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// Is makes errors.Is(err, validator.ErrValidationFailed) match.
func (e ValidationError) Is(target error) bool {
	return target == validator.ErrValidationFailed
}

// NewValidationError creates a new validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// ValidationErrorFrom converts the validator's error log.
// It returns nil for an empty log.
func ValidationErrorFrom(errs validator.ValidationErrors) ValidationError {
	if errs.IsEmpty() {
		return nil
	}
	return ValidationError(errs.ByField())
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the failing fields in sorted order.
func (e ValidationError) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
