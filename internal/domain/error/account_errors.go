// Package error defines domain-specific errors for the Financy application.
package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAccessDenied is returned when the user neither owns nor shares the account.
	ErrAccountAccessDenied = errors.New("account access denied")

	// ErrNotAccountOwner is returned when an owner-only operation is attempted by a sharer.
	ErrNotAccountOwner = errors.New("only the account owner can perform this operation")

	// ErrMissingAccountName is returned when an account is created without a name.
	ErrMissingAccountName = errors.New("account name is required")

	// ErrInvalidAccountLimit is returned when the limit is not a decimal number.
	ErrInvalidAccountLimit = errors.New("invalid account limit")

	// ErrAlreadySharing is returned when the account is already shared with the user.
	ErrAlreadySharing = errors.New("account is already shared with user")

	// ErrNotSharing is returned when the account is not shared with the user.
	ErrNotSharing = errors.New("account is not shared with user")

	// ErrCannotShareWithOwner is returned when sharing an account with its own owner.
	ErrCannotShareWithOwner = errors.New("cannot share an account with its owner")

	// ErrMergeSameAccount is returned when an account is merged into itself.
	ErrMergeSameAccount = errors.New("cannot merge an account into itself")

	// ErrNoAccountSelected is returned when an operation needs a selected account.
	ErrNoAccountSelected = errors.New("no account selected")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingAccountName   AccountErrorCode = "ACC-010001"
	ErrCodeInvalidAccountLimit  AccountErrorCode = "ACC-010002"
	ErrCodeInvalidAccountDate   AccountErrorCode = "ACC-010003"
	ErrCodeMergeSameAccount     AccountErrorCode = "ACC-010004"
	ErrCodeAlreadySharing       AccountErrorCode = "ACC-010005"
	ErrCodeNotSharing           AccountErrorCode = "ACC-010006"
	ErrCodeCannotShareWithOwner AccountErrorCode = "ACC-010007"

	// Lookup errors (02XXXX)
	ErrCodeAccountNotFound   AccountErrorCode = "ACC-020001"
	ErrCodeNoAccountSelected AccountErrorCode = "ACC-020002"
	ErrCodeShareUserNotFound AccountErrorCode = "ACC-020003"

	// Authorization errors (03XXXX)
	ErrCodeAccountAccessDenied AccountErrorCode = "ACC-030001"
	ErrCodeNotAccountOwner     AccountErrorCode = "ACC-030002"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
