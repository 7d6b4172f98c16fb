package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

// SubmitInput is the input schema for the submit_content tool.
type SubmitInput struct {
	Title   string `json:"title" jsonschema:"the note title"`
	Content string `json:"content" jsonschema:"the note body to summarise and label"`
}

// SubmitOutput is the output schema for the submit_content tool.
type SubmitOutput struct {
	Summary string   `json:"summary"`
	Labels  []string `json:"labels"`
}

// ListInput is the input schema for the list_contents tool. It takes no arguments.
type ListInput struct{}

// ListOutput is the output schema for the list_contents tool.
type ListOutput struct {
	Contents []ContentOutput `json:"contents"`
}

// ContentOutput represents a single enriched content.
type ContentOutput struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Summary string   `json:"summary"`
	Labels  []string `json:"labels"`
}

// ResumeInput is the input schema for the resume_content tool.
type ResumeInput struct {
	ID int64 `json:"id" jsonschema:"identifier of the content whose enrichment should continue"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_content",
		Description: "Store a note, then generate and store its summary and five topical labels",
	}, s.handleSubmit)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_contents",
		Description: "List every summarised note with its labels",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resume_content",
		Description: "Continue the enrichment of a note that failed partway",
	}, s.handleResume)
}

// handleSubmit handles the submit_content tool invocation.
func (s *Server) handleSubmit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SubmitInput,
) (*mcp.CallToolResult, SubmitOutput, error) {
	result, err := s.ports.Enrichment.Submit(ctx, input.Title, input.Content)
	if err != nil {
		return nil, SubmitOutput{}, err
	}
	return nil, toSubmitOutput(result), nil
}

// handleList handles the list_contents tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	records, err := s.ports.Enrichment.List(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{Contents: make([]ContentOutput, len(records))}
	for i := range records {
		output.Contents[i] = toContentOutput(&records[i])
	}
	return nil, output, nil
}

// handleResume handles the resume_content tool invocation.
func (s *Server) handleResume(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResumeInput,
) (*mcp.CallToolResult, SubmitOutput, error) {
	result, err := s.ports.Enrichment.Resume(ctx, input.ID)
	if err != nil {
		return nil, SubmitOutput{}, err
	}
	return nil, toSubmitOutput(result), nil
}

func toSubmitOutput(result *domain.SubmitResult) SubmitOutput {
	labels := result.Labels
	if labels == nil {
		labels = []string{}
	}
	return SubmitOutput{Summary: result.Summary, Labels: labels}
}

func toContentOutput(record *domain.EnrichedRecord) ContentOutput {
	labels := record.Labels
	if labels == nil {
		labels = []string{}
	}
	return ContentOutput{
		ID:      record.ID,
		Title:   record.Title,
		Content: record.Content,
		Summary: record.Summary,
		Labels:  labels,
	}
}
