package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/brainspread/internal/core/domain"
	"github.com/custodia-labs/brainspread/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// errMissingContent mirrors the foreign key failure of the SQLite store.
var errMissingContent = errors.New("FOREIGN KEY constraint failed")

// ContentStore is an in-memory implementation of driven.ContentStore.
// Identifiers are assigned from a counter and never reused.
type ContentStore struct {
	mu        sync.RWMutex
	nextID    int64
	contents  map[int64]domain.Content
	summaries []domain.Summary
	labels    []domain.Label
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		contents: make(map[int64]domain.Content),
	}
}

// InsertContent appends a content row and returns its identifier.
func (s *ContentStore) InsertContent(_ context.Context, title, body string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.contents[s.nextID] = domain.Content{
		ID:        s.nextID,
		Title:     title,
		Body:      body,
		State:     domain.StateCreated,
		CreatedAt: time.Now().UTC(),
	}
	return s.nextID, nil
}

// MostRecentContent returns the content row with the highest identifier.
func (s *ContentStore) MostRecentContent(_ context.Context) (*domain.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *domain.Content
	for id := range s.contents {
		if latest == nil || id > latest.ID {
			c := s.contents[id]
			latest = &c
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

// GetContent retrieves a content row by identifier.
func (s *ContentStore) GetContent(_ context.Context, id int64) (*domain.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// InsertSummary appends a summary bound to contentID.
func (s *ContentStore) InsertSummary(_ context.Context, contentID int64, text string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contents[contentID]; !ok {
		return 0, &domain.StorageError{Op: "insert summary", Err: errMissingContent}
	}
	s.summaries = append(s.summaries, domain.Summary{
		ID:        int64(len(s.summaries) + 1),
		ContentID: contentID,
		Text:      text,
	})
	return 1, nil
}

// SummaryFor returns the most recent summary of a content.
func (s *ContentStore) SummaryFor(_ context.Context, contentID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.latestSummary(contentID)
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

// latestSummary finds the newest summary (caller must hold lock).
func (s *ContentStore) latestSummary(contentID int64) (string, bool) {
	for i := len(s.summaries) - 1; i >= 0; i-- {
		if s.summaries[i].ContentID == contentID {
			return s.summaries[i].Text, true
		}
	}
	return "", false
}

// InsertLabels appends one label per entry, in order.
func (s *ContentStore) InsertLabels(_ context.Context, contentID int64, labels []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contents[contentID]; !ok && len(labels) > 0 {
		return 0, &domain.StorageError{Op: "insert labels", Err: errMissingContent}
	}
	for _, name := range labels {
		s.labels = append(s.labels, domain.Label{
			ID:        int64(len(s.labels) + 1),
			ContentID: contentID,
			Name:      name,
		})
	}
	return int64(len(labels)), nil
}

// DeleteLabels removes every label of a content.
func (s *ContentStore) DeleteLabels(_ context.Context, contentID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.labels[:0]
	var removed int64
	for _, l := range s.labels {
		if l.ContentID == contentID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	s.labels = kept
	return removed, nil
}

// LabelsFor returns the labels of a content in insertion order.
func (s *ContentStore) LabelsFor(_ context.Context, contentID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	labels := []string{}
	for _, l := range s.labels {
		if l.ContentID == contentID {
			labels = append(labels, l.Name)
		}
	}
	return labels, nil
}

// SetState records the enrichment state of a content.
func (s *ContentStore) SetState(_ context.Context, contentID int64, state domain.EnrichmentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contents[contentID]
	if !ok {
		return domain.ErrNotFound
	}
	c.State = state
	s.contents[contentID] = c
	return nil
}

// ContentsWithSummaries returns every content that has a summary, ordered by identifier.
func (s *ContentStore) ContentsWithSummaries(_ context.Context) ([]domain.EnrichedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []domain.EnrichedRecord
	for _, id := range s.sortedIDs() {
		summary, ok := s.latestSummary(id)
		if !ok {
			continue
		}
		c := s.contents[id]
		records = append(records, domain.EnrichedRecord{
			ID:      c.ID,
			Title:   c.Title,
			Content: c.Body,
			Summary: summary,
		})
	}
	return records, nil
}

// UnfinishedContents returns contents whose state is not complete.
func (s *ContentStore) UnfinishedContents(_ context.Context) ([]domain.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var contents []domain.Content
	for _, id := range s.sortedIDs() {
		if c := s.contents[id]; c.State != domain.StateComplete {
			contents = append(contents, c)
		}
	}
	return contents, nil
}

// sortedIDs returns content identifiers in ascending order (caller must hold lock).
func (s *ContentStore) sortedIDs() []int64 {
	ids := make([]int64, 0, len(s.contents))
	for id := range s.contents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Close is a no-op for the memory store.
func (s *ContentStore) Close() error {
	return nil
}
