package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/existflow/easyclip/internal/logger"
	"github.com/existflow/easyclip/internal/model"
	"github.com/existflow/easyclip/internal/storage"
)

// Settings persists the user's theme and language preferences. The clip core
// never reads them; they exist for the UI surfaces.
type Settings struct {
	notifier

	kv storage.KV
	mu sync.Mutex
}

// NewSettings creates a settings store over the given document store.
func NewSettings(kv storage.KV) *Settings {
	return &Settings{kv: kv}
}

// Get returns the persisted settings, falling back to defaults when absent
// or malformed.
func (s *Settings) Get() (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// SetTheme persists the theme preference.
func (s *Settings) SetTheme(theme string) error {
	return s.mutate(func(st model.Settings) model.Settings {
		st.Theme = theme
		return st
	})
}

// ToggleTheme flips between light and dark, returning the new theme.
func (s *Settings) ToggleTheme() (string, error) {
	var next string
	err := s.mutate(func(st model.Settings) model.Settings {
		if st.Theme == model.ThemeDark {
			st.Theme = model.ThemeLight
		} else {
			st.Theme = model.ThemeDark
		}
		next = st.Theme
		return st
	})
	return next, err
}

// SetLanguage persists the language preference.
func (s *Settings) SetLanguage(language string) error {
	return s.mutate(func(st model.Settings) model.Settings {
		st.Language = language
		return st
	})
}

func (s *Settings) mutate(fn func(model.Settings) model.Settings) error {
	s.mu.Lock()
	settings, err := s.readLocked()
	if err == nil {
		err = s.writeLocked(fn(settings))
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Broadcast()
	return nil
}

func (s *Settings) readLocked() (model.Settings, error) {
	raw, ok, err := s.kv.Get(SettingsKey)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok || raw == "" {
		return model.DefaultSettings(), nil
	}
	var settings model.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logger.Warn("Malformed settings document, using defaults", logger.F("error", err))
		return model.DefaultSettings(), nil
	}
	if settings.Theme == "" {
		settings.Theme = model.DefaultSettings().Theme
	}
	if settings.Language == "" {
		settings.Language = model.DefaultSettings().Language
	}
	return settings, nil
}

func (s *Settings) writeLocked(settings model.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.kv.Set(SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}
