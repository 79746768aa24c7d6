// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/financy/backend/internal/domain/entity"

// ThemeRequest represents the request body for changing the color theme.
type ThemeRequest struct {
	ColorTheme *int `json:"colorTheme" binding:"required"`
}

// SettingsResponse represents the application settings in API responses.
type SettingsResponse struct {
	ColorTheme int    `json:"colorTheme"`
	ThemeName  string `json:"themeName"`
}

// ToSettingsResponse converts settings to a SettingsResponse DTO.
func ToSettingsResponse(s *entity.Settings) SettingsResponse {
	return SettingsResponse{
		ColorTheme: int(s.ColorTheme),
		ThemeName:  s.ColorTheme.Name(),
	}
}
