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

const accountsTable = "accounts"

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// FindAll retrieves every account ordered by id, without purchases.
func (r *accountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	var models []model.AccountModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, domainerror.NewStorageReadError(accountsTable, result.Error)
	}

	accounts := make([]*entity.Account, len(models))
	for i := range models {
		accounts[i] = models[i].ToEntity()
	}
	return accounts, nil
}

// NextID returns the id the next account is assigned.
func (r *accountRepository) NextID(ctx context.Context) (uint32, error) {
	return nextID(ctx, r.db, &model.AccountModel{}, accountsTable)
}

// Save inserts or replaces an account. Purchases are stored separately.
func (r *accountRepository) Save(ctx context.Context, account *entity.Account) error {
	result := upsert(r.db.WithContext(ctx), model.AccountFromEntity(account))
	if result.Error != nil {
		return domainerror.NewStorageWriteError(accountsTable, result.Error)
	}
	return nil
}

// Delete removes an account from the database.
func (r *accountRepository) Delete(ctx context.Context, id uint32) error {
	result := r.db.WithContext(ctx).Delete(&model.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerror.NewStorageWriteError(accountsTable, result.Error)
	}
	return nil
}
