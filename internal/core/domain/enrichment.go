package domain

// EnrichmentState records how far the enrichment workflow got for a content row.
// States only move forward: created, summarized, labeled, complete.
type EnrichmentState string

// Enrichment states.
const (
	// StateCreated means the content row exists but has no summary.
	StateCreated EnrichmentState = "created"

	// StateSummarized means a summary was persisted; labels may be absent or partial.
	StateSummarized EnrichmentState = "summarized"

	// StateLabeled means the full label batch was persisted.
	StateLabeled EnrichmentState = "labeled"

	// StateComplete means the workflow finished and the result was returned.
	StateComplete EnrichmentState = "complete"
)

// IsValid returns true if the state is recognised.
func (s EnrichmentState) IsValid() bool {
	switch s {
	case StateCreated, StateSummarized, StateLabeled, StateComplete:
		return true
	default:
		return false
	}
}

// rank orders states so transitions can be checked.
func (s EnrichmentState) rank() int {
	switch s {
	case StateCreated:
		return 0
	case StateSummarized:
		return 1
	case StateLabeled:
		return 2
	case StateComplete:
		return 3
	default:
		return -1
	}
}

// CanAdvanceTo reports whether moving from s to next is a forward transition.
func (s EnrichmentState) CanAdvanceTo(next EnrichmentState) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	return next.rank() > s.rank()
}

// String returns the string representation.
func (s EnrichmentState) String() string {
	return string(s)
}

// Description returns a human-readable description of the state.
func (s EnrichmentState) Description() string {
	switch s {
	case StateCreated:
		return "Stored, awaiting summary"
	case StateSummarized:
		return "Summarised, awaiting labels"
	case StateLabeled:
		return "Labelled, awaiting completion"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}
