package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every field-level input error.
	ErrValidation = errors.New("validation error")

	ErrDuplicateName      = errors.New("an entry with this name already exists")
	ErrDuplicateIdentity  = errors.New("email or username already registered")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("incorrect credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrInvalidDateRange = fmt.Errorf("%w: start date cannot be after due date", ErrValidation)
	ErrInvalidProgress  = fmt.Errorf("%w: progress must be between 0 and 100", ErrValidation)
	ErrInvalidHours     = fmt.Errorf("%w: hours out of range", ErrValidation)
	ErrInvalidCategory  = fmt.Errorf("%w: category does not exist", ErrValidation)
	ErrInvalidProject   = fmt.Errorf("%w: project does not exist", ErrValidation)
)

// Invalid returns a validation error carrying a human-readable message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Detail wraps a field-level sentinel with extra context while keeping errors.Is working.
func Detail(sentinel error, msg string) error {
	return fmt.Errorf("%w (%s)", sentinel, msg)
}
