package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

var showJSON bool

var showCmd = needsStore(&cobra.Command{
	Use:   "show [id]",
	Short: "Show a note with its summary and labels",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
})

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	record, err := enrichmentService.Get(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("content %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}

	if showJSON {
		if record.Labels == nil {
			record.Labels = []string{}
		}
		return printJSON(cmd, record)
	}

	cmd.Printf("ID:     %d\n", record.ID)
	cmd.Printf("Title:  %s\n", record.Title)
	cmd.Printf("State:  %s\n", record.State.Description())
	if len(record.Labels) > 0 {
		cmd.Printf("Labels: %s\n", strings.Join(record.Labels, ", "))
	}
	cmd.Println()
	if record.Summary != "" {
		cmd.Println("Summary:")
		cmd.Println(record.Summary)
		cmd.Println()
	}
	cmd.Println("Content:")
	cmd.Println(record.Content)
	return nil
}

// parseID parses a content identifier argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid content id %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}
