package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ValidationError reports a rejected input. It is raised before any
// network call and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateEmail rejects empty or syntactically implausible addresses.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewValidationError("email", "must not be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError("email", "must be a valid address")
	}
	return nil
}
