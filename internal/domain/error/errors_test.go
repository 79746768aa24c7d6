package error

import (
	"errors"
	"io/fs"
	"testing"
)

func TestStorageError(t *testing.T) {
	err := NewStorageReadError("Purchases.json", fs.ErrPermission)

	if err.Code != ErrCodeStorageUnreadable {
		t.Errorf("expected code %s, got %s", ErrCodeStorageUnreadable, err.Code)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected error to unwrap to fs.ErrPermission")
	}

	expected := "storage cannot be read (Purchases.json): permission denied"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	var storageErr *StorageError
	if !errors.As(error(err), &storageErr) {
		t.Error("expected errors.As to find a StorageError")
	}
}

func TestCodedErrors_Unwrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "purchase",
			err:      NewPurchaseError(ErrCodePurchaseNotFound, "purchase not found", ErrPurchaseNotFound),
			sentinel: ErrPurchaseNotFound,
			message:  "purchase not found: purchase not found",
		},
		{
			name:     "account",
			err:      NewAccountError(ErrCodeNotAccountOwner, "cannot delete account", ErrNotAccountOwner),
			sentinel: ErrNotAccountOwner,
			message:  "cannot delete account: only the account owner can perform this operation",
		},
		{
			name:     "user",
			err:      NewUserError(ErrCodeNotLoggedIn, "no user logged in", nil),
			sentinel: nil,
			message:  "no user logged in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.message {
				t.Errorf("expected %q, got %q", tt.message, tt.err.Error())
			}
			if tt.sentinel != nil && !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected error to wrap %v", tt.sentinel)
			}
		})
	}
}
