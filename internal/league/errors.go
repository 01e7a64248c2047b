package league

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned for rejected input before any mutation happens.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness rule would be broken.
	ErrConflict = errors.New("conflict")
	// ErrInconsistent is returned when a ledger reversal would drive a counter below zero.
	ErrInconsistent = errors.New("inconsistent ledger state")
)

// Invalid wraps ErrValidation with a descriptive message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the kind and id of the missing entity.
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}
