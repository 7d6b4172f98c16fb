package driving

import "github.com/custodia-labs/brainspread/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves current settings: environment, then config file, then defaults.
	Get() (*domain.AppSettings, error)

	// Set stores a single configuration key.
	Set(key, value string) error

	// SetAPIKey stores the generation API key.
	SetAPIKey(apiKey string) error

	// Validate checks that settings are sufficient to run the pipeline.
	Validate() error

	// Overridden returns the keys whose value currently comes from the environment.
	Overridden() []string

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}
