// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/persistence/model"
)

const settingsTable = "settings"

// settingsRepository implements the adapter.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository instance.
func NewSettingsRepository(db *gorm.DB) adapter.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// Load returns the stored settings, or the defaults when the row is missing.
func (r *settingsRepository) Load(ctx context.Context) (*entity.Settings, error) {
	var settingsModel model.SettingsModel
	result := r.db.WithContext(ctx).Where("id = ?", model.SettingsRowID).First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return entity.DefaultSettings(), nil
		}
		return nil, domainerror.NewStorageReadError(settingsTable, result.Error)
	}
	return settingsModel.ToEntity(), nil
}

// Save replaces the settings row.
func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	result := upsert(r.db.WithContext(ctx), model.SettingsFromEntity(settings))
	if result.Error != nil {
		return domainerror.NewStorageWriteError(settingsTable, result.Error)
	}
	return nil
}
