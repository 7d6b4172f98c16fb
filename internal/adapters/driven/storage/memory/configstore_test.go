package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_GetString(t *testing.T) {
	s := NewConfigStore()
	require.NoError(t, s.Set("openai_api_key", "sk-test"))
	require.NoError(t, s.Set("llm.timeout_seconds", 30))

	assert.Equal(t, "sk-test", s.GetString("openai_api_key"))
	assert.Empty(t, s.GetString("llm.timeout_seconds"))
	assert.Empty(t, s.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
	}{
		{"int", 5, 5},
		{"int64", int64(7), 7},
		{"float64", 2.9, 2},
		{"string", "3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewConfigStore()
			require.NoError(t, s.Set("k", tt.value))
			assert.Equal(t, tt.expected, s.GetInt("k"))
		})
	}
}

func TestConfigStore_GetFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected float64
	}{
		{"float64", 0.25, 0.25},
		{"int", 2, 2},
		{"int64", int64(4), 4},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewConfigStore()
			require.NoError(t, s.Set("k", tt.value))
			assert.InDelta(t, tt.expected, s.GetFloat("k"), 1e-9)
		})
	}
}

func TestConfigStore_NoOps(t *testing.T) {
	s := NewConfigStore()
	assert.NoError(t, s.Save())
	assert.NoError(t, s.Load())
	assert.Equal(t, ":memory:", s.Path())

	_, ok := s.Get("missing")
	assert.False(t, ok)
}
