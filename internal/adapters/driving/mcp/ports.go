package mcp

import (
	"github.com/custodia-labs/brainspread/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Enrichment submits and reads enriched contents.
	Enrichment driving.EnrichmentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Enrichment == nil {
		return ErrMissingEnrichmentService
	}
	return nil
}
