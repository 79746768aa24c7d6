// Package error defines domain-specific errors for the Financy application.
package error

import "errors"

// Storage errors. Malformed records never produce these; only a store that
// cannot be read or written at all does.
var (
	// ErrStorageUnreadable is returned when a backing store cannot be read.
	ErrStorageUnreadable = errors.New("storage cannot be read")

	// ErrStorageUnwritable is returned when a backing store cannot be written.
	ErrStorageUnwritable = errors.New("storage cannot be written")
)

// StorageErrorCode defines error codes for storage errors.
// Format: STO-XXYYYY where XX is category and YYYY is specific error.
type StorageErrorCode string

const (
	// I/O errors (01XXXX)
	ErrCodeStorageUnreadable StorageErrorCode = "STO-010001"
	ErrCodeStorageUnwritable StorageErrorCode = "STO-010002"
)

// StorageError represents a storage error with code and message.
type StorageError struct {
	Code     StorageErrorCode
	Message  string
	Resource string // File name or table the failure concerns
	Err      error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	msg := e.Message
	if e.Resource != "" {
		msg += " (" + e.Resource + ")"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageReadError wraps a failure to read resource.
func NewStorageReadError(resource string, err error) *StorageError {
	return &StorageError{
		Code:     ErrCodeStorageUnreadable,
		Message:  ErrStorageUnreadable.Error(),
		Resource: resource,
		Err:      err,
	}
}

// NewStorageWriteError wraps a failure to write resource.
func NewStorageWriteError(resource string, err error) *StorageError {
	return &StorageError{
		Code:     ErrCodeStorageUnwritable,
		Message:  ErrStorageUnwritable.Error(),
		Resource: resource,
		Err:      err,
	}
}
