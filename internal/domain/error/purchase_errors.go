// Package error defines domain-specific errors for the Financy application.
package error

import "errors"

// Purchase domain errors.
var (
	// ErrPurchaseNotFound is returned when a purchase is not found in its account.
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrNotAuthorizedToModifyPurchase is returned when the user neither contributed the
	// purchase nor owns its account.
	ErrNotAuthorizedToModifyPurchase = errors.New("not authorized to modify purchase")

	// ErrInvalidPurchaseDate is returned when the purchase date cannot be parsed.
	ErrInvalidPurchaseDate = errors.New("invalid purchase date")

	// ErrInvalidPurchaseValue is returned when the purchase value is not a decimal number.
	ErrInvalidPurchaseValue = errors.New("invalid purchase value")

	// ErrMissingPurchaseName is returned when a purchase is created without a name.
	ErrMissingPurchaseName = errors.New("purchase name is required")
)

// PurchaseErrorCode defines error codes for purchase errors.
// Format: PUR-XXYYYY where XX is category and YYYY is specific error.
type PurchaseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPurchaseDate  PurchaseErrorCode = "PUR-010001"
	ErrCodeInvalidPurchaseValue PurchaseErrorCode = "PUR-010002"
	ErrCodeMissingPurchaseName  PurchaseErrorCode = "PUR-010003"

	// Lookup errors (02XXXX)
	ErrCodePurchaseNotFound PurchaseErrorCode = "PUR-020001"

	// Authorization errors (03XXXX)
	ErrCodeNotAuthorizedPurchase PurchaseErrorCode = "PUR-030001"
)

// PurchaseError represents a purchase error with code and message.
type PurchaseError struct {
	Code    PurchaseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PurchaseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PurchaseError) Unwrap() error {
	return e.Err
}

// NewPurchaseError creates a new PurchaseError with the given code and message.
func NewPurchaseError(code PurchaseErrorCode, message string, err error) *PurchaseError {
	return &PurchaseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
