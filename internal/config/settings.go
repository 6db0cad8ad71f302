package config

import "fmt"

// Theme selects the terminal color palette.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
)

// ParseTheme converts a string to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeSystem, ThemeDark, ThemeLight:
		return Theme(s), nil
	case "":
		return ThemeSystem, nil
	default:
		return "", fmt.Errorf("config: unknown theme %q (want system, dark or light)", s)
	}
}

// Settings holds per-installation host preferences. The engine never sees
// these; the host loads them from storage and owns the value.
type Settings struct {
	Theme             Theme
	TutorialCompleted bool
}

// DefaultSettings returns the settings used before anything is persisted.
func DefaultSettings() Settings {
	return Settings{
		Theme:             ThemeSystem,
		TutorialCompleted: false,
	}
}
