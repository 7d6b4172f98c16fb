package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainspread/internal/adapters/driving/inbox"
)

var watchDir string

var watchCmd = needsStore(&cobra.Command{
	Use:   "watch",
	Short: "Submit notes dropped into an inbox directory",
	Long: `Watches a directory and submits every .txt or .md file written into it.

A first line of the form "# Title" becomes the note title; otherwise the file
name is used. Submitted files are moved to the .processed subdirectory.
Files already in the directory are submitted when the watcher starts.

The directory comes from --dir, or from the inbox.dir setting.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
})

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "inbox directory (default: inbox.dir setting)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	dir := watchDir
	if dir == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		dir = settings.Inbox.Dir
	}
	if dir == "" {
		return errors.New("no inbox directory: pass --dir or run 'brainspread config set inbox.dir <path>'")
	}

	w, err := inbox.New(dir, enrichmentService, inbox.WithResultHandler(func(r inbox.Result) {
		name := filepath.Base(r.Path)
		if r.Err != nil {
			cmd.Printf("%s: failed: %v\n", name, r.Err)
			return
		}
		if !r.Skipped {
			cmd.Printf("%s: stored as %d [%s]\n", name, r.ContentID, strings.Join(r.Labels, ", "))
		}
	}))
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", w.Dir())
	return w.Run(cmd.Context())
}
