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

const purchasesTable = "purchases"

// purchaseRepository implements the adapter.PurchaseRepository interface.
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository instance.
func NewPurchaseRepository(db *gorm.DB) adapter.PurchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

// FindAll retrieves every purchase ordered by id.
func (r *purchaseRepository) FindAll(ctx context.Context) ([]*entity.Purchase, error) {
	var models []model.PurchaseModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, domainerror.NewStorageReadError(purchasesTable, result.Error)
	}

	purchases := make([]*entity.Purchase, len(models))
	for i := range models {
		purchases[i] = models[i].ToEntity()
	}
	return purchases, nil
}

// NextID returns the id the next purchase is assigned.
func (r *purchaseRepository) NextID(ctx context.Context) (uint32, error) {
	return nextID(ctx, r.db, &model.PurchaseModel{}, purchasesTable)
}

// Save inserts or replaces a purchase.
func (r *purchaseRepository) Save(ctx context.Context, purchase *entity.Purchase) error {
	result := upsert(r.db.WithContext(ctx), model.PurchaseFromEntity(purchase))
	if result.Error != nil {
		return domainerror.NewStorageWriteError(purchasesTable, result.Error)
	}
	return nil
}

// SaveAll inserts or replaces several purchases in one transaction.
func (r *purchaseRepository) SaveAll(ctx context.Context, purchases []*entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}

	models := make([]*model.PurchaseModel, len(purchases))
	for i, purchase := range purchases {
		models[i] = model.PurchaseFromEntity(purchase)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsert(tx, models).Error
	})
	if err != nil {
		return domainerror.NewStorageWriteError(purchasesTable, err)
	}
	return nil
}

// Delete removes a purchase from the database.
func (r *purchaseRepository) Delete(ctx context.Context, id uint32) error {
	return r.DeleteMany(ctx, []uint32{id})
}

// DeleteMany removes several purchases in one statement.
func (r *purchaseRepository) DeleteMany(ctx context.Context, ids []uint32) error {
	if len(ids) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Delete(&model.PurchaseModel{}, "id IN ?", ids)
	if result.Error != nil {
		return domainerror.NewStorageWriteError(purchasesTable, result.Error)
	}
	return nil
}
