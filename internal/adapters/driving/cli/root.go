// Package cli provides the brainspread command line interface.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainspread/internal/core/ports/driven"
	"github.com/custodia-labs/brainspread/internal/core/ports/driving"
	"github.com/custodia-labs/brainspread/internal/logger"
)

// annotationNeedsStore marks commands that open the content store.
const annotationNeedsStore = "brainspread/needs-store"

var (
	version = "dev"

	verbose   bool
	configDir string

	enrichmentService driving.EnrichmentService
	settingsService   driving.SettingsService
	rawStore          driven.RawStatementStore

	// wire builds the services before a command runs. Execute installs it;
	// tests leave it nil and assign the services directly.
	wire func(cmd *cobra.Command) error

	// closers run after the command, in reverse order.
	closers []func() error
)

var rootCmd = &cobra.Command{
	Use:   "brainspread",
	Short: "Capture notes and enrich them with summaries and labels",
	Long: `brainspread stores the notes you submit, asks a language model for a
short summary and five topical labels, and keeps everything in a local
SQLite database.

Configure an OpenAI API key first:
  brainspread config set-key`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if wire == nil {
			return nil
		}
		return wire(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline steps to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.brainspread)")
}

// needsStore marks cmd as requiring the content store.
func needsStore(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationNeedsStore] = "true"
	return cmd
}

// Execute runs the root command with the given build version.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	wire = bootstrap
	defer closeAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// closeAll releases everything bootstrap opened.
func closeAll() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("close: %v", err)
		}
	}
	closers = nil
}
