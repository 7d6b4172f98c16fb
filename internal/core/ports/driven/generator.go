package driven

import "context"

// Generator derives a summary and labels for a title and body by calling
// an external text-generation service. Each call is one request with no retry.
type Generator interface {
	// GenerateSummary returns summary text trimmed of surrounding whitespace.
	GenerateSummary(ctx context.Context, title, body string) (string, error)

	// GenerateLabels returns the comma-separated labels of the first completion, each trimmed.
	GenerateLabels(ctx context.Context, title, body string) ([]string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}
