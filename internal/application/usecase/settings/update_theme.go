// Package settings contains application settings use cases.
package settings

import (
	"context"
	"fmt"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
)

// UpdateThemeInput represents the input for changing the color theme.
type UpdateThemeInput struct {
	ColorTheme entity.ColorTheme
}

// UpdateThemeOutput represents the updated settings.
type UpdateThemeOutput struct {
	Settings *entity.Settings
}

// UpdateThemeUseCase stores a new color theme. Unknown themes fall back to
// light.
type UpdateThemeUseCase struct {
	ledger       *ledger.Ledger
	settingsRepo adapter.SettingsRepository
	publisher    adapter.ChangePublisher
}

// NewUpdateThemeUseCase creates a new UpdateThemeUseCase instance.
func NewUpdateThemeUseCase(
	l *ledger.Ledger,
	settingsRepo adapter.SettingsRepository,
	publisher adapter.ChangePublisher,
) *UpdateThemeUseCase {
	return &UpdateThemeUseCase{
		ledger:       l,
		settingsRepo: settingsRepo,
		publisher:    publisher,
	}
}

// Execute performs the update.
func (uc *UpdateThemeUseCase) Execute(ctx context.Context, input UpdateThemeInput) (*UpdateThemeOutput, error) {
	settings, err := uc.settingsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	theme := input.ColorTheme
	if !theme.IsValid() {
		theme = entity.ColorThemeLight
	}
	settings.ColorTheme = theme

	if err := uc.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntitySettings,
		Action: adapter.ActionUpdated,
	})

	return &UpdateThemeOutput{
		Settings: settings,
	}, nil
}
