package driving

import "github.com/custodia-labs/xyspec-cli/internal/core/domain"

// SettingsService manages conversion defaults.
type SettingsService interface {
	// Get returns the effective settings.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting.
	Set(key, value string) error
}
