package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var dbQueryJSON bool

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Run statements against the note database",
	Long: `Runs ad hoc SQL statements against the note database.

Values are never spliced into the statement: write ? placeholders and pass
the values as extra arguments.

Examples:
  brainspread db query "SELECT id, title FROM contents WHERE title LIKE ?" "%rome%"
  brainspread db exec "DELETE FROM labels WHERE content_id = ?" 3`,
}

var dbExecCmd = needsStore(&cobra.Command{
	Use:   "exec [statement] [args...]",
	Short: "Run a write statement and print rows affected",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDBExec,
})

var dbQueryCmd = needsStore(&cobra.Command{
	Use:   "query [statement] [args...]",
	Short: "Run a read statement and print the rows",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDBQuery,
})

func init() {
	dbQueryCmd.Flags().BoolVar(&dbQueryJSON, "json", false, "output rows as JSON")
	dbCmd.AddCommand(dbExecCmd)
	dbCmd.AddCommand(dbQueryCmd)
	rootCmd.AddCommand(dbCmd)
}

// bindArgs converts the trailing command arguments into statement parameters.
func bindArgs(args []string) []any {
	params := make([]any, len(args))
	for i, a := range args {
		params[i] = a
	}
	return params
}

func runDBExec(cmd *cobra.Command, args []string) error {
	if rawStore == nil {
		return errors.New("database not configured")
	}

	n, err := rawStore.Execute(cmd.Context(), args[0], bindArgs(args[1:])...)
	if err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}

	cmd.Printf("%d rows affected\n", n)
	return nil
}

func runDBQuery(cmd *cobra.Command, args []string) error {
	if rawStore == nil {
		return errors.New("database not configured")
	}

	rows, err := rawStore.Query(cmd.Context(), args[0], bindArgs(args[1:])...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if dbQueryJSON {
		if rows == nil {
			rows = []map[string]any{}
		}
		return printJSON(cmd, rows)
	}

	if len(rows) == 0 {
		cmd.Println("No rows.")
		return nil
	}

	for _, row := range rows {
		cols := make([]string, 0, len(row))
		for col := range row {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		pairs := make([]string, len(cols))
		for i, col := range cols {
			pairs[i] = fmt.Sprintf("%s=%v", col, row[col])
		}
		cmd.Println(strings.Join(pairs, "  "))
	}
	cmd.Printf("(%d rows)\n", len(rows))
	return nil
}
