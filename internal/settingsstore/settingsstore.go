package settingsstore

import (
	"os"
	"strconv"

	"github.com/worldapptech/woosync/internal/database/settings"
)

// Priority: database > environment > default
type SettingsStore struct {
	db *settings.Repository
}

func New(db *settings.Repository) *SettingsStore {
	return &SettingsStore{db: db}
}

// getString resolves a string setting through the fallback chain.
func (s *SettingsStore) getString(key, envVar, fallback string) string {
	// Try database first
	if setting, err := s.db.GetSetting(key); err == nil && setting.Value != "" {
		return setting.Value
	}

	// Try environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}

	return fallback
}

// getBool resolves a boolean setting through the fallback chain. Stored
// values are truthy when "true" or "1".
func (s *SettingsStore) getBool(key, envVar string, fallback bool) bool {
	if setting, err := s.db.GetSetting(key); err == nil && setting.Value != "" {
		return setting.Value == "true" || setting.Value == "1"
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal == "true" || envVal == "1"
	}

	return fallback
}

// getInt resolves an integer setting through the fallback chain. Values
// that fail to parse are treated as unset.
func (s *SettingsStore) getInt(key, envVar string, fallback int) int {
	if setting, err := s.db.GetSetting(key); err == nil && setting.Value != "" {
		if n, err := strconv.Atoi(setting.Value); err == nil {
			return n
		}
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if n, err := strconv.Atoi(envVal); err == nil {
			return n
		}
	}

	return fallback
}

// source reports where a setting's effective value comes from:
// "database", "environment" or "default".
func (s *SettingsStore) source(key, envVar string) string {
	if setting, err := s.db.GetSetting(key); err == nil && setting.Value != "" {
		return "database"
	}
	if os.Getenv(envVar) != "" {
		return "environment"
	}
	return "default"
}

// maskToken returns a masked version of a credential for display
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
