package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrichmentState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    EnrichmentState
		expected bool
	}{
		{"created", StateCreated, true},
		{"summarized", StateSummarized, true},
		{"labeled", StateLabeled, true},
		{"complete", StateComplete, true},
		{"empty", EnrichmentState(""), false},
		{"unknown", EnrichmentState("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.IsValid())
		})
	}
}

func TestEnrichmentState_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		name     string
		from     EnrichmentState
		to       EnrichmentState
		expected bool
	}{
		{"created to summarized", StateCreated, StateSummarized, true},
		{"summarized to labeled", StateSummarized, StateLabeled, true},
		{"labeled to complete", StateLabeled, StateComplete, true},
		{"created to complete", StateCreated, StateComplete, true},
		{"same state", StateSummarized, StateSummarized, false},
		{"backwards", StateComplete, StateCreated, false},
		{"invalid target", StateCreated, EnrichmentState("bogus"), false},
		{"invalid source", EnrichmentState("bogus"), StateComplete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanAdvanceTo(tt.to))
		})
	}
}

func TestEnrichmentState_Description(t *testing.T) {
	assert.Equal(t, "Complete", StateComplete.Description())
	assert.Equal(t, "Stored, awaiting summary", StateCreated.Description())
	assert.Equal(t, "Unknown", EnrichmentState("x").Description())
	assert.Equal(t, "labeled", StateLabeled.String())
}
