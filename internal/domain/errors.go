package domain

import (
	"errors"
	"fmt"
)

// ErrTerminalStatus is returned when a status change is attempted on an item
// that is already completed or skipped.
var ErrTerminalStatus = errors.New("plan item status is terminal")

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
