package record

import (
	"encoding/json"

	"github.com/financy/backend/internal/domain/entity"
)

type settingsRecord struct {
	ColorTheme int `json:"colorTheme"`
}

// DecodeSettings reads the settings object. Unknown themes fall back to light.
func DecodeSettings(data []byte) (*entity.Settings, error) {
	f, err := decodeFields(data)
	if err != nil {
		return nil, err
	}

	theme := entity.ColorTheme(f.unsigned("colorTheme", uint32(entity.ColorThemeLight)))
	if !theme.IsValid() {
		theme = entity.ColorThemeLight
	}
	return &entity.Settings{ColorTheme: theme}, nil
}

// EncodeSettings writes the settings object.
func EncodeSettings(s *entity.Settings) ([]byte, error) {
	return json.Marshal(settingsRecord{ColorTheme: int(s.ColorTheme)})
}
