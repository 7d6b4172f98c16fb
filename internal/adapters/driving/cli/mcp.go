package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/brainspread/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = needsStore(&cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC and can be used with
Claude Desktop and other MCP-compatible AI assistants.

Tools:
  submit_content  store a note and return its summary and labels
  list_contents   list every summarised note with its labels
  resume_content  continue an interrupted enrichment

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "brainspread": {
        "command": "/path/to/brainspread",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
})

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if enrichmentService == nil {
		return errors.New("enrichment service not configured")
	}

	ports := &mcp.Ports{
		Enrichment: enrichmentService,
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	return server.Run(cmd.Context())
}
