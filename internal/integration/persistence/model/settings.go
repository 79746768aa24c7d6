// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/financy/backend/internal/domain/entity"
)

// SettingsRowID is the id of the single settings row.
const SettingsRowID uint32 = 1

// SettingsModel represents the settings table in the database. It holds a
// single row.
type SettingsModel struct {
	ID         uint32    `gorm:"primaryKey;autoIncrement:false"`
	ColorTheme int       `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the SettingsModel.
func (SettingsModel) TableName() string {
	return "settings"
}

// ToEntity converts a SettingsModel to domain Settings.
func (m *SettingsModel) ToEntity() *entity.Settings {
	theme := entity.ColorTheme(m.ColorTheme)
	if !theme.IsValid() {
		theme = entity.ColorThemeLight
	}
	return &entity.Settings{ColorTheme: theme}
}

// SettingsFromEntity creates the SettingsModel row from domain Settings.
func SettingsFromEntity(settings *entity.Settings) *SettingsModel {
	return &SettingsModel{
		ID:         SettingsRowID,
		ColorTheme: int(settings.ColorTheme),
	}
}

// All returns every model for auto-migration.
func All() []any {
	return []any{
		&UserModel{},
		&AccountModel{},
		&PurchaseModel{},
		&SettingsModel{},
	}
}
