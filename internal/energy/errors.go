package energy

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCity   = errors.New("unknown city")
	ErrUnknownSeason = errors.New("unknown season")
)

// ValidationError reports a missing or out-of-range input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
