package driving

import (
	"context"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

// EnrichmentService turns submitted notes into enriched records.
type EnrichmentService interface {
	// Submit stores a note, generates and stores its summary and labels,
	// and returns them. Any failure aborts the remaining steps; rows already
	// written are kept.
	Submit(ctx context.Context, title, body string) (*domain.SubmitResult, error)

	// List returns every content that has a summary, with its labels.
	List(ctx context.Context) ([]domain.EnrichedRecord, error)

	// Get returns one content with whatever enrichment it has so far.
	Get(ctx context.Context, id int64) (*domain.EnrichedRecord, error)

	// Pending returns contents whose enrichment did not complete.
	Pending(ctx context.Context) ([]domain.Content, error)

	// Resume continues an interrupted enrichment from its recorded state.
	Resume(ctx context.Context, id int64) (*domain.SubmitResult, error)
}
