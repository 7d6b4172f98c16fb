package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainspread/internal/adapters/driven/config/file"
	"github.com/custodia-labs/brainspread/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/brainspread/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/brainspread/internal/core/domain"
	"github.com/custodia-labs/brainspread/internal/core/ports/driven"
	"github.com/custodia-labs/brainspread/internal/core/services"
	"github.com/custodia-labs/brainspread/internal/logger"
)

// bootstrap wires configuration, storage and generation for cmd.
// Failing to open the store is fatal for commands that need it.
func bootstrap(cmd *cobra.Command) error {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings := services.NewSettingsService(configStore)
	settingsService = settings
	logger.Debug("config file: %s", configStore.Path())

	if cmd.Annotations[annotationNeedsStore] == "" {
		return nil
	}

	appSettings, err := settings.Get()
	if err != nil {
		return fmt.Errorf("resolve settings: %w", err)
	}

	store, err := sqlite.NewStore(appSettings.DatabaseURL)
	if err != nil {
		logger.Error("open store: %v", err)
		return fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err)
	}
	closers = append(closers, store.Close)
	rawStore = store
	logger.Debug("database: %s", store.Path())

	generator, err := newGenerator(appSettings, filepath.Dir(configStore.Path()))
	if err != nil {
		return err
	}

	// A nil generator still serves the read commands.
	enrichmentService = services.NewEnrichmentService(store, generator)
	return nil
}

// newGenerator builds the generation client, or returns nil when no API key is set.
func newGenerator(settings *domain.AppSettings, dir string) (driven.Generator, error) {
	if settings.OpenAIAPIKey == "" {
		logger.Warn("no OpenAI API key configured; submit and resume are unavailable")
		return nil, nil
	}

	gen, err := openai.NewGenerator(openai.Config{
		APIKey:            settings.OpenAIAPIKey,
		BaseURL:           settings.LLM.BaseURL,
		Model:             settings.LLM.Model,
		Temperature:       settings.LLM.Temperature,
		Timeout:           time.Duration(settings.LLM.TimeoutSeconds) * time.Second,
		RequestsPerSecond: settings.LLM.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}

	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		return nil, fmt.Errorf("open prompts: %w", err)
	}
	gen.SetPromptStore(prompts)

	logger.Debug("generation model: %s", gen.ModelName())
	return gen, nil
}
