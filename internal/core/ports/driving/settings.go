package driving

import "github.com/custodia-labs/codelens/internal/core/domain"

// SettingsService resolves and updates application settings.
type SettingsService interface {
	// Get returns the effective settings (environment, then config file,
	// then defaults). Invalid values fall back to their defaults.
	Get() domain.Settings

	// Set validates a raw text value for key and persists it.
	Set(key, raw string) error

	// Lookup returns the raw effective value of key and its origin:
	// "env", "file" or "default".
	Lookup(key string) (value, origin string, err error)
}
