// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/financy/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// FindAll retrieves every stored user in storage order.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// NextID returns the id a new user is assigned: the highest stored id plus one, or 0 when empty.
	NextID(ctx context.Context) (uint32, error)

	// Save inserts or replaces a user.
	Save(ctx context.Context, user *entity.User) error

	// Delete removes a user. Deleting a missing user is not an error.
	Delete(ctx context.Context, id uint32) error
}
