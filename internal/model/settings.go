package model

// Theme and language values mirror the desktop app's settings document.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	LanguageEN = "en"
	LanguageKO = "ko"
)

// Settings holds the user preferences persisted alongside the clip data.
// The clip core never depends on its content.
type Settings struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		Theme:    ThemeDark,
		Language: LanguageEN,
	}
}
