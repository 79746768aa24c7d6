// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/persistence/model"
)

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return domainerror.NewStorageWriteError("schema", err)
	}
	return nil
}

// nextID returns MAX(id)+1 of the table behind value, or 0 when it is empty.
func nextID(ctx context.Context, db *gorm.DB, value any, table string) (uint32, error) {
	var next uint32
	result := db.WithContext(ctx).Model(value).Select("COALESCE(MAX(id) + 1, 0)").Scan(&next)
	if result.Error != nil {
		return 0, domainerror.NewStorageReadError(table, result.Error)
	}
	return next, nil
}

// upsert inserts value or replaces every column of the row with its id.
func upsert(db *gorm.DB, value any) *gorm.DB {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(value)
}
