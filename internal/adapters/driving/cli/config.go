package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/brainspread/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change brainspread configuration.

Settings live in BrainSpreadConfig.toml in the config directory. The
environment variables APP_OPENAI_API_KEY, APP_DATABASE_URL, APP_LLM_MODEL
and APP_LLM_BASE_URL take precedence over the file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a single configuration value.

Keys:
  openai_api_key           OpenAI API key (prefer "config set-key")
  database_url             SQLite location, e.g. sqlite:///home/me/notes.db
  llm.model                chat model (default gpt-4o-mini)
  llm.base_url             API base URL for OpenAI-compatible services
  llm.temperature          sampling temperature (default 0.5)
  llm.timeout_seconds      per-request timeout (default 120)
  llm.requests_per_second  request pacing, 0 disables (default 2)
  inbox.dir                directory watched by "brainspread watch"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the OpenAI API key",
	Long:  `Prompts for the OpenAI API key without echoing it and stores it in the config file.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Printf("  File: %s\n", settingsService.ConfigPath())
	cmd.Println()

	cmd.Println("[OpenAI]")
	if settings.OpenAIAPIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.OpenAIAPIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	baseURL := settings.LLM.BaseURL
	if baseURL == "" {
		baseURL = "(default)"
	}
	cmd.Printf("  Base URL: %s\n", baseURL)
	cmd.Printf("  Temperature: %g\n", settings.LLM.Temperature)
	cmd.Printf("  Timeout: %ds\n", settings.LLM.TimeoutSeconds)
	cmd.Printf("  Requests/second: %g\n", settings.LLM.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Storage]")
	dbURL := settings.DatabaseURL
	if dbURL == "" {
		dbURL = "(default)"
	}
	cmd.Printf("  Database: %s\n", dbURL)
	cmd.Println()

	cmd.Println("[Inbox]")
	inbox := settings.Inbox.Dir
	if inbox == "" {
		inbox = "(not set)"
	}
	cmd.Printf("  Directory: %s\n", inbox)

	if keys := settingsService.Overridden(); len(keys) > 0 {
		cmd.Println()
		cmd.Println("Overridden by environment:")
		for _, key := range keys {
			cmd.Printf("  %s (%s)\n", key, services.EnvName(key))
		}
	}

	status := "ready"
	if err := settingsService.Validate(); err != nil {
		status = err.Error()
	}
	cmd.Println()
	cmd.Printf("Status: %s\n", status)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	if key == services.KeyOpenAIAPIKey {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("OpenAI API key: ")
	key := readPassword(cmd.InOrStdin())
	cmd.Println()

	if err := settingsService.SetAPIKey(key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}

	cmd.Printf("API key saved to %s\n", settingsService.ConfigPath())
	return nil
}

// readPassword reads a line without echo when in is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
