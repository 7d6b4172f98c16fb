// Package mcp provides an MCP (Model Context Protocol) server adapter for brainspread.
// It lets AI assistants submit notes for enrichment and read enriched records
// over stdio.
package mcp

import "errors"

// ErrMissingEnrichmentService is returned when the enrichment service is not provided.
var ErrMissingEnrichmentService = errors.New("mcp: enrichment service is required")
