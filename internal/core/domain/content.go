package domain

import "time"

// Content is a user-submitted note. Its ID is assigned by the store
// and never changes for the lifetime of the row.
type Content struct {
	// ID is the store-assigned identifier.
	ID int64

	// Title is the note title.
	Title string

	// Body is the note text.
	Body string

	// State is how far enrichment has progressed for this content.
	State EnrichmentState

	// CreatedAt is when the content was first stored.
	CreatedAt time.Time
}

// Summary is generated summary text bound to a Content.
type Summary struct {
	ID        int64
	ContentID int64
	Text      string
}

// Label is a single topical label bound to a Content.
type Label struct {
	ID        int64
	ContentID int64
	Name      string
}

// EnrichedRecord is a Content assembled with its most recent summary
// and full label set. It is built at read time and never stored as a unit.
type EnrichedRecord struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Summary string   `json:"summary"`
	Labels  []string `json:"labels"`

	// State is only populated by single-record lookups.
	State EnrichmentState `json:"state,omitempty"`
}

// SubmitResult is returned to the caller once a submission is enriched.
type SubmitResult struct {
	// ContentID identifies the stored content.
	ContentID int64 `json:"-"`

	Summary string   `json:"summary"`
	Labels  []string `json:"labels"`
}
