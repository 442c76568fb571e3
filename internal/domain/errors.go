package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both a missing record and a record owned by someone
// else. The two cases are deliberately indistinguishable so that resource
// identifiers cannot be enumerated across users.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected input field. The message is safe to
// return to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-specific validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
