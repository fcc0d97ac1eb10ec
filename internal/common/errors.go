// Package common defines shared sentinel errors and small helpers used across
// gophauth layers. Callers should use errors.Is / errors.As to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrValidation marks user-correctable input problems. Concrete failures
	// are reported as *ValidationError, which matches ErrValidation.
	ErrValidation = errors.New("validation error")

	// ErrHashing is returned when the cryptographic primitives backing password
	// hashing are unavailable. It is a configuration-level failure.
	ErrHashing = errors.New("hashing error")
)

// ValidationError carries a client-facing message for rejected input.
type ValidationError struct {
	Msg string
}

// NewValidationError returns a *ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Is reports ErrValidation as the sentinel for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
