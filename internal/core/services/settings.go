package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/brainspread/internal/core/domain"
	"github.com/custodia-labs/brainspread/internal/core/ports/driven"
	"github.com/custodia-labs/brainspread/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyOpenAIAPIKey         = "openai_api_key"
	KeyDatabaseURL          = "database_url"
	KeyLLMModel             = "llm.model"
	KeyLLMBaseURL           = "llm.base_url"
	KeyLLMTemperature       = "llm.temperature"
	KeyLLMTimeoutSeconds    = "llm.timeout_seconds"
	KeyLLMRequestsPerSecond = "llm.requests_per_second"
	KeyInboxDir             = "inbox.dir"
)

// EnvPrefix is prepended to upper-cased keys to form environment overrides.
const EnvPrefix = "APP_"

// settingKind is how a key's value is parsed before it is stored.
type settingKind int

const (
	kindString settingKind = iota
	kindFloat
	kindInt
)

// knownKeys lists every key Set accepts.
var knownKeys = map[string]settingKind{
	KeyOpenAIAPIKey:         kindString,
	KeyDatabaseURL:          kindString,
	KeyLLMModel:             kindString,
	KeyLLMBaseURL:           kindString,
	KeyLLMTemperature:       kindFloat,
	KeyLLMTimeoutSeconds:    kindInt,
	KeyLLMRequestsPerSecond: kindFloat,
	KeyInboxDir:             kindString,
}

// envOverridable lists keys that may be overridden from the environment.
var envOverridable = []string{KeyOpenAIAPIKey, KeyDatabaseURL, KeyLLMModel, KeyLLMBaseURL}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Get resolves current settings. Environment overrides win over the
// config file, which wins over defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		OpenAIAPIKey: s.getString(KeyOpenAIAPIKey, ""),
		DatabaseURL:  s.getString(KeyDatabaseURL, ""),
		LLM: domain.LLMSettings{
			Model:             s.getString(KeyLLMModel, defaults.LLM.Model),
			BaseURL:           s.getString(KeyLLMBaseURL, ""), // Empty means the provider default
			Temperature:       s.getFloat(KeyLLMTemperature, defaults.LLM.Temperature),
			TimeoutSeconds:    s.getInt(KeyLLMTimeoutSeconds, defaults.LLM.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(KeyLLMRequestsPerSecond, defaults.LLM.RequestsPerSecond),
		},
		Inbox: domain.InboxSettings{
			Dir: s.getString(KeyInboxDir, ""),
		},
	}

	return settings, nil
}

// Set validates and stores a single configuration key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	var stored any = value
	switch kind {
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		stored = f
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = int64(n)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetAPIKey stores the generation API key.
func (s *SettingsService) SetAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: api key is empty", domain.ErrInvalidInput)
	}
	return s.Set(KeyOpenAIAPIKey, apiKey)
}

// Validate checks that settings are sufficient to run the pipeline.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Overridden reports which keys currently take their value from the environment.
func (s *SettingsService) Overridden() []string {
	var keys []string
	for _, key := range envOverridable {
		if _, ok := s.env(key); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// Helper methods for reading config with overrides and defaults.

func (s *SettingsService) env(key string) (string, bool) {
	for _, k := range envOverridable {
		if k == key {
			val, ok := s.lookupEnv(EnvName(key))
			if ok && val != "" {
				return val, true
			}
			return "", false
		}
	}
	return "", false
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val, ok := s.env(key); ok {
		return val
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
