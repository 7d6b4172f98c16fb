package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Equal(t, "serve", mcpServeCmd.Use)
}

func TestMCPCmd_HasServeSubcommand(t *testing.T) {
	var found bool
	for _, c := range mcpCmd.Commands() {
		if c.Name() == "serve" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMCPServeCmd_NoService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	enrichmentService = nil

	_, err := executeCommand(t, nil, "mcp", "serve")
	assert.EqualError(t, err, "enrichment service not configured")
}
