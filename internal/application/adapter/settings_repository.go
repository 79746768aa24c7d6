// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/financy/backend/internal/domain/entity"
)

// SettingsRepository persists the application settings.
type SettingsRepository interface {
	// Load returns the stored settings, or the defaults when none are stored.
	Load(ctx context.Context) (*entity.Settings, error)

	// Save replaces the stored settings.
	Save(ctx context.Context, settings *entity.Settings) error
}
