// Package apperrors holds the error values shared between the store,
// service and HTTP layers. Controllers classify failures with errors.Is
// and errors.As; anything not listed here is an internal error.
package apperrors

import "errors"

var (
	// store errors
	ErrNotFound = errors.New("not found")

	// auth errors
	ErrUserExists         = errors.New("user with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username/email or password")

	// the texts of these two are the client-facing response bodies
	ErrUnauthenticated = errors.New("Access Denied")
	ErrInvalidToken    = errors.New("Invalid Token")
)

// ValidationError carries the message of the first rule a request violated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a *ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
