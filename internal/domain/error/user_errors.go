// Package error defines domain-specific errors for the Financy application.
package error

import "errors"

// User and session domain errors.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingFirstName is returned when a user is created without a first name.
	ErrMissingFirstName = errors.New("first name is required")

	// ErrSessionNotFound is returned when the session id does not resolve.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotLoggedIn is returned when an operation needs an active user.
	ErrNotLoggedIn = errors.New("no user logged in")
)

// UserErrorCode defines error codes for user and session errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingFirstName UserErrorCode = "USR-010001"
	ErrCodeInvalidUserDate  UserErrorCode = "USR-010002"

	// Lookup errors (02XXXX)
	ErrCodeUserNotFound UserErrorCode = "USR-020001"

	// Session errors (04XXXX)
	ErrCodeSessionNotFound UserErrorCode = "USR-040001"
	ErrCodeNotLoggedIn     UserErrorCode = "USR-040002"
	ErrCodeRateLimited     UserErrorCode = "USR-040003"
)

// UserError represents a user error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
