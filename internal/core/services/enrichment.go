package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/custodia-labs/brainspread/internal/core/domain"
	"github.com/custodia-labs/brainspread/internal/core/ports/driven"
	"github.com/custodia-labs/brainspread/internal/core/ports/driving"
	"github.com/custodia-labs/brainspread/internal/logger"
)

// Ensure EnrichmentService implements the interface.
var _ driving.EnrichmentService = (*EnrichmentService)(nil)

// EnrichmentService runs the enrichment pipeline: content, then summary,
// then labels. Every operation holds exclusive access to the store for its
// whole duration, so two submissions never interleave their writes.
type EnrichmentService struct {
	store     driven.ContentStore
	generator driven.Generator

	// gate admits one operation at a time. Waiting honours the caller's context.
	gate *semaphore.Weighted
}

// NewEnrichmentService creates a new enrichment service.
// The generator may be nil for read-only use; Submit and Resume then fail.
func NewEnrichmentService(store driven.ContentStore, generator driven.Generator) *EnrichmentService {
	return &EnrichmentService{
		store:     store,
		generator: generator,
		gate:      semaphore.NewWeighted(1),
	}
}

// acquire takes exclusive access to the store.
func (s *EnrichmentService) acquire(ctx context.Context) (func(), error) {
	if err := s.gate.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire store access: %w", err)
	}
	return func() { s.gate.Release(1) }, nil
}

// Submit stores a note and enriches it. Rows written before a failure are kept
// and the content is left in the state it reached.
func (s *EnrichmentService) Submit(ctx context.Context, title, body string) (*domain.SubmitResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if s.generator == nil {
		return nil, fmt.Errorf("submit: %w", domain.ErrAPIKeyRequired)
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	trace := newTrace()
	trace.Debug("submit title=%q", title)

	id, err := s.store.InsertContent(ctx, title, body)
	if err != nil {
		trace.Error("insert content: %v", err)
		return nil, fmt.Errorf("insert content: %w", err)
	}

	// Read the row back so the store stays the source of truth for what was written.
	content, err := s.store.GetContent(ctx, id)
	if err != nil {
		trace.Error("read back content %d: %v", id, err)
		return nil, fmt.Errorf("read back content %d: %w", id, err)
	}
	trace.Debug("stored content id=%d", content.ID)

	return s.enrich(ctx, trace, content)
}

// Resume continues an interrupted enrichment from the content's recorded state.
// A complete content is returned as it is without calling the generator.
func (s *EnrichmentService) Resume(ctx context.Context, id int64) (*domain.SubmitResult, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	content, err := s.store.GetContent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get content %d: %w", id, err)
	}

	trace := newTrace()
	trace.Debug("resume content id=%d state=%s", id, content.State)

	if content.State != domain.StateComplete && s.generator == nil {
		return nil, fmt.Errorf("resume: %w", domain.ErrAPIKeyRequired)
	}
	return s.enrich(ctx, trace, content)
}

// enrich advances content through the remaining states. Each state is only
// recorded after the rows it stands for were written.
func (s *EnrichmentService) enrich(ctx context.Context, trace logger.Trace, content *domain.Content) (*domain.SubmitResult, error) {
	id := content.ID
	result := &domain.SubmitResult{ContentID: id}

	state := content.State
	if !state.IsValid() {
		return nil, fmt.Errorf("content %d has unknown state %q: %w", id, state, domain.ErrInvalidInput)
	}

	if state == domain.StateCreated {
		summary, err := s.generator.GenerateSummary(ctx, content.Title, content.Body)
		if err != nil {
			trace.Error("generate summary: %v", err)
			return nil, fmt.Errorf("generate summary: %w", err)
		}

		n, err := s.store.InsertSummary(ctx, id, summary)
		if err != nil {
			trace.Error("insert summary: %v", err)
			return nil, fmt.Errorf("insert summary: %w", err)
		}
		trace.Debug("inserted summary rows=%d", n)

		if err := s.advance(ctx, id, domain.StateSummarized); err != nil {
			return nil, err
		}
		state = domain.StateSummarized
		result.Summary = summary
	} else {
		summary, err := s.store.SummaryFor(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("summary for content %d: %w", id, err)
		}
		result.Summary = summary
	}

	if state == domain.StateSummarized {
		labels, err := s.generator.GenerateLabels(ctx, content.Title, content.Body)
		if err != nil {
			trace.Error("generate labels: %v", err)
			return nil, fmt.Errorf("generate labels: %w", err)
		}

		// A previous run may have stopped partway through the batch.
		removed, err := s.store.DeleteLabels(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("delete partial labels: %w", err)
		}
		if removed > 0 {
			trace.Warn("discarded %d partial labels", removed)
		}

		n, err := s.store.InsertLabels(ctx, id, labels)
		if err != nil {
			trace.Error("insert labels: %v", err)
			return nil, fmt.Errorf("insert labels: %w", err)
		}
		trace.Debug("inserted labels rows=%d", n)

		if err := s.advance(ctx, id, domain.StateLabeled); err != nil {
			return nil, err
		}
		state = domain.StateLabeled
		result.Labels = labels
	} else {
		labels, err := s.store.LabelsFor(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("labels for content %d: %w", id, err)
		}
		result.Labels = labels
	}

	if state == domain.StateLabeled {
		if err := s.advance(ctx, id, domain.StateComplete); err != nil {
			return nil, err
		}
	}

	trace.Info("content %d enriched with %d labels", id, len(result.Labels))
	return result, nil
}

// advance records the next enrichment state of a content.
func (s *EnrichmentService) advance(ctx context.Context, id int64, state domain.EnrichmentState) error {
	if err := s.store.SetState(ctx, id, state); err != nil {
		return fmt.Errorf("set state %s: %w", state, err)
	}
	return nil
}

// List returns every content that has a summary, each with its labels,
// in the order the store returns them.
func (s *EnrichmentService) List(ctx context.Context) ([]domain.EnrichedRecord, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	records, err := s.store.ContentsWithSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	for i := range records {
		labels, err := s.store.LabelsFor(ctx, records[i].ID)
		if err != nil {
			return nil, fmt.Errorf("labels for content %d: %w", records[i].ID, err)
		}
		records[i].Labels = labels
	}

	logger.Debug("listed %d enriched contents", len(records))
	return records, nil
}

// Get returns one content with whatever summary and labels it has so far.
func (s *EnrichmentService) Get(ctx context.Context, id int64) (*domain.EnrichedRecord, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	content, err := s.store.GetContent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get content %d: %w", id, err)
	}

	summary, err := s.store.SummaryFor(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("summary for content %d: %w", id, err)
	}

	labels, err := s.store.LabelsFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("labels for content %d: %w", id, err)
	}

	return &domain.EnrichedRecord{
		ID:      content.ID,
		Title:   content.Title,
		Content: content.Body,
		Summary: summary,
		Labels:  labels,
		State:   content.State,
	}, nil
}

// Pending returns contents whose enrichment did not complete.
func (s *EnrichmentService) Pending(ctx context.Context) ([]domain.Content, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	contents, err := s.store.UnfinishedContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("unfinished contents: %w", err)
	}
	return contents, nil
}

// newTrace returns a short identifier for one workflow's log lines.
func newTrace() logger.Trace {
	return logger.Trace(uuid.NewString()[:8])
}
