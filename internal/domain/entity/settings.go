// Package entity defines the core business entities for the domain layer.
package entity

// ColorTheme is the application color theme. Persisted as an ordinal.
type ColorTheme int

const (
	ColorThemeLight ColorTheme = 0
	ColorThemeDark  ColorTheme = 1
)

// IsValid reports whether t is a known theme.
func (t ColorTheme) IsValid() bool {
	return t == ColorThemeLight || t == ColorThemeDark
}

// Name returns the display name of the theme.
func (t ColorTheme) Name() string {
	if t == ColorThemeDark {
		return "Dark"
	}
	return "Light"
}

// Settings holds application-wide preferences.
type Settings struct {
	ColorTheme ColorTheme
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() *Settings {
	return &Settings{ColorTheme: ColorThemeLight}
}
