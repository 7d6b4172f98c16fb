package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for brainspread resources.
	uriScheme = "brainspread://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing enriched contents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "contents",
		Name:        "contents",
		Description: "Every summarised note with its labels",
		MIMEType:    "application/json",
	}, s.handleContentsResource)

	// Template for a single content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "contents/{id}",
		Name:        "content",
		Description: "A single note with its summary, labels and enrichment state",
		MIMEType:    "application/json",
	}, s.handleContentResource)
}

// handleContentsResource returns every enriched content.
func (s *Server) handleContentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Enrichment.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contents: %w", err)
	}

	infos := make([]ContentOutput, len(records))
	for i := range records {
		infos[i] = toContentOutput(&records[i])
	}

	return jsonResource(req.Params.URI, infos)
}

// handleContentResource returns one content, enriched or not.
func (s *Server) handleContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractContentID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Enrichment.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting content: %w", err)
	}

	if record.Labels == nil {
		record.Labels = []string{}
	}
	return jsonResource(req.Params.URI, record)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractContentID extracts the content ID from a URI like brainspread://contents/{id}.
func extractContentID(uri string) (int64, bool) {
	const prefix = uriScheme + "contents/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
