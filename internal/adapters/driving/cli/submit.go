package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

var (
	submitTitle string
	submitFile  string
	submitJSON  bool
)

var submitCmd = needsStore(&cobra.Command{
	Use:   "submit [text]",
	Short: "Submit a note for enrichment",
	Long: `Stores a note, then generates and stores its summary and five labels.

The note body is taken from the argument, from --file, or from stdin when
neither is given.

Examples:
  brainspread submit --title "Rome" "The Roman Republic was..."
  brainspread submit --title "Meeting" --file notes.md
  pbpaste | brainspread submit --title "Clipboard"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubmit,
})

func init() {
	submitCmd.Flags().StringVarP(&submitTitle, "title", "t", "", "note title (required)")
	submitCmd.Flags().StringVarP(&submitFile, "file", "f", "", "read the note body from a file")
	submitCmd.Flags().BoolVar(&submitJSON, "json", false, "output result as JSON")
	_ = submitCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	body, err := readBody(cmd, args)
	if err != nil {
		return err
	}

	result, err := enrichmentService.Submit(cmd.Context(), submitTitle, body)
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	if submitJSON {
		return printJSON(cmd, result)
	}

	cmd.Printf("Stored content %d\n", result.ContentID)
	cmd.Println()
	cmd.Println("Summary:")
	cmd.Println(result.Summary)
	cmd.Println()
	cmd.Printf("Labels: %s\n", strings.Join(result.Labels, ", "))
	return nil
}

// readBody returns the note body from args, --file or stdin, in that order.
func readBody(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		if submitFile != "" {
			return "", fmt.Errorf("%w: give the body as an argument or with --file, not both", domain.ErrInvalidInput)
		}
		return args[0], nil
	}

	if submitFile != "" {
		data, err := os.ReadFile(submitFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", submitFile, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
