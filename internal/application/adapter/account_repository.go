// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/financy/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
// Accounts are returned without purchases; those are stored separately.
type AccountRepository interface {
	// FindAll retrieves every stored account in storage order.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// NextID returns the id a new account is assigned.
	NextID(ctx context.Context) (uint32, error)

	// Save inserts or replaces an account.
	Save(ctx context.Context, account *entity.Account) error

	// Delete removes an account. Deleting a missing account is not an error.
	Delete(ctx context.Context, id uint32) error
}
