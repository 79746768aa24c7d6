// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/persistence/model"
)

const usersTable = "users"

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindAll retrieves every user ordered by id.
func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var models []model.UserModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, domainerror.NewStorageReadError(usersTable, result.Error)
	}

	users := make([]*entity.User, len(models))
	for i := range models {
		users[i] = models[i].ToEntity()
	}
	return users, nil
}

// NextID returns the id the next user is assigned.
func (r *userRepository) NextID(ctx context.Context) (uint32, error) {
	return nextID(ctx, r.db, &model.UserModel{}, usersTable)
}

// Save inserts or replaces a user.
func (r *userRepository) Save(ctx context.Context, user *entity.User) error {
	result := upsert(r.db.WithContext(ctx), model.UserFromEntity(user))
	if result.Error != nil {
		return domainerror.NewStorageWriteError(usersTable, result.Error)
	}
	return nil
}

// Delete removes a user from the database.
func (r *userRepository) Delete(ctx context.Context, id uint32) error {
	result := r.db.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerror.NewStorageWriteError(usersTable, result.Error)
	}
	return nil
}
