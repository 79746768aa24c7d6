// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/financy/backend/internal/domain/entity"
)

// PurchaseRepository defines the interface for purchase persistence operations.
// Purchase ids are unique across the whole store, not per account.
type PurchaseRepository interface {
	// FindAll retrieves every stored purchase in storage order.
	FindAll(ctx context.Context) ([]*entity.Purchase, error)

	// NextID returns the id a new purchase is assigned.
	NextID(ctx context.Context) (uint32, error)

	// Save inserts or replaces a purchase.
	Save(ctx context.Context, purchase *entity.Purchase) error

	// SaveAll inserts or replaces several purchases in one write.
	SaveAll(ctx context.Context, purchases []*entity.Purchase) error

	// Delete removes a purchase.
	Delete(ctx context.Context, id uint32) error

	// DeleteMany removes several purchases in one write.
	DeleteMany(ctx context.Context, ids []uint32) error
}
