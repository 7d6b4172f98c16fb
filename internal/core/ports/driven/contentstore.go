package driven

import (
	"context"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

// ContentStore persists contents, summaries and labels.
// Every method is atomic at the statement level only; no method
// spans a transaction across calls.
type ContentStore interface {
	// InsertContent appends one content row in state created and returns
	// the identifier the store assigned to it.
	InsertContent(ctx context.Context, title, body string) (int64, error)

	// MostRecentContent returns the content row with the highest identifier.
	// Returns domain.ErrNotFound if the table is empty.
	MostRecentContent(ctx context.Context) (*domain.Content, error)

	// GetContent retrieves a content row by identifier.
	// Returns domain.ErrNotFound if it does not exist.
	GetContent(ctx context.Context, id int64) (*domain.Content, error)

	// InsertSummary appends a summary bound to contentID and returns rows affected.
	// Fails if contentID does not exist.
	InsertSummary(ctx context.Context, contentID int64, text string) (int64, error)

	// SummaryFor returns the most recent summary of a content.
	// Returns domain.ErrNotFound if none exists.
	SummaryFor(ctx context.Context, contentID int64) (string, error)

	// InsertLabels appends one row per label, in order, one statement each.
	// Returns the total rows affected. A failure partway leaves the earlier rows in place.
	InsertLabels(ctx context.Context, contentID int64, labels []string) (int64, error)

	// DeleteLabels removes every label of a content and returns rows affected.
	DeleteLabels(ctx context.Context, contentID int64) (int64, error)

	// LabelsFor returns the labels of a content in insertion order.
	LabelsFor(ctx context.Context, contentID int64) ([]string, error)

	// SetState records the enrichment state of a content.
	SetState(ctx context.Context, contentID int64, state domain.EnrichmentState) error

	// ContentsWithSummaries returns every content that has a summary, joined with
	// its most recent summary, ordered by identifier. Labels are left empty.
	ContentsWithSummaries(ctx context.Context) ([]domain.EnrichedRecord, error)

	// UnfinishedContents returns contents whose state is not complete.
	UnfinishedContents(ctx context.Context) ([]domain.Content, error)

	// Close releases resources.
	Close() error
}

// RawStatementStore runs ad hoc statements not covered by ContentStore.
// Values must be passed as args and are always bound as parameters.
type RawStatementStore interface {
	// Execute runs a write statement and returns rows affected.
	Execute(ctx context.Context, statement string, args ...any) (int64, error)

	// Query runs a read statement and returns each row as column name to value.
	Query(ctx context.Context, statement string, args ...any) ([]map[string]any, error)
}
