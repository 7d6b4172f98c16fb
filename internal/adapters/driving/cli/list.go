package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

var listJSON bool

var listCmd = needsStore(&cobra.Command{
	Use:   "list",
	Short: "List enriched notes",
	Long: `Lists every note that has a summary, with its labels.
Notes whose enrichment stopped before the summary was stored are not shown;
use "brainspread pending" to see them.`,
	Args: cobra.NoArgs,
	RunE: runList,
})

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	records, err := enrichmentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if listJSON {
		if records == nil {
			records = []domain.EnrichedRecord{}
		}
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No enriched notes yet.")
		return nil
	}

	for i := range records {
		cmd.Printf("[%d] %s\n", records[i].ID, records[i].Title)
		cmd.Printf("    %s\n", firstLine(records[i].Summary))
		if len(records[i].Labels) > 0 {
			cmd.Printf("    Labels: %s\n", strings.Join(records[i].Labels, ", "))
		}
		cmd.Println()
	}
	return nil
}

// firstLine returns the first line of s, shortened to 100 runes.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	r := []rune(s)
	if len(r) > 100 {
		return string(r[:97]) + "..."
	}
	return s
}
