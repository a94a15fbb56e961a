package driving

import "github.com/custodia-labs/commsdash/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, filling defaults.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Keys returns the settable keys.
	Keys() []string

	// ConfigPath returns where settings are persisted.
	ConfigPath() string
}
