// Package common defines shared constants and sentinel errors used across
// the labsite server, its repositories and the operator tools. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrValidation      = errors.New("validation error")
	ErrUploadsDisabled = errors.New("uploads are not configured")

	// Auth errors.
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid token")
	ErrAccountNotFound        = errors.New("admin not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// ValidationError carries a short, user-facing message describing why a
// request was rejected. It matches ErrValidation via errors.Is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
