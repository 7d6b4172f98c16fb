package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var pendingCmd = needsStore(&cobra.Command{
	Use:   "pending",
	Short: "List notes whose enrichment did not complete",
	Args:  cobra.NoArgs,
	RunE:  runPending,
})

var resumeCmd = needsStore(&cobra.Command{
	Use:   "resume [id]",
	Short: "Continue an interrupted enrichment",
	Long: `Continues enrichment of a note from where it stopped. A note without a
summary is summarised and labelled; a note with a summary but without a full
set of labels has any partial labels replaced.

Use "brainspread pending" to find notes that need resuming, or --all to
resume every one of them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResume,
})

var resumeAll bool

func init() {
	resumeCmd.Flags().BoolVar(&resumeAll, "all", false, "resume every pending note")
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runPending(cmd *cobra.Command, _ []string) error {
	if enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	contents, err := enrichmentService.Pending(cmd.Context())
	if err != nil {
		return fmt.Errorf("pending failed: %w", err)
	}

	if len(contents) == 0 {
		cmd.Println("No pending notes.")
		return nil
	}

	for i := range contents {
		cmd.Printf("[%d] %s (%s)\n", contents[i].ID, contents[i].Title, contents[i].State.Description())
	}
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	if enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	if resumeAll == (len(args) == 1) {
		return errors.New("give either a content id or --all")
	}

	var ids []int64
	if resumeAll {
		contents, err := enrichmentService.Pending(cmd.Context())
		if err != nil {
			return fmt.Errorf("pending failed: %w", err)
		}
		for i := range contents {
			ids = append(ids, contents[i].ID)
		}
	} else {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	var failed int
	for _, id := range ids {
		result, err := enrichmentService.Resume(cmd.Context(), id)
		if err != nil {
			if !resumeAll {
				return fmt.Errorf("resume failed: %w", err)
			}
			cmd.Printf("[%d] failed: %v\n", id, err)
			failed++
			continue
		}
		cmd.Printf("[%d] complete: %d labels\n", id, len(result.Labels))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d notes could not be resumed", failed, len(ids))
	}
	return nil
}
