package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

func TestContentStore_InsertAndMostRecent(t *testing.T) {
	s := NewContentStore()
	ctx := context.Background()

	_, err := s.MostRecentContent(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	first, err := s.InsertContent(ctx, "one", "1")
	require.NoError(t, err)
	second, err := s.InsertContent(ctx, "two", "2")
	require.NoError(t, err)
	assert.Equal(t, first+1, second)

	c, err := s.MostRecentContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, c.ID)
	assert.Equal(t, domain.StateCreated, c.State)
}

func TestContentStore_ForeignKeys(t *testing.T) {
	s := NewContentStore()
	ctx := context.Background()

	_, err := s.InsertSummary(ctx, 99, "orphan")
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = s.InsertLabels(ctx, 99, []string{"orphan"})
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestContentStore_ContentsWithSummaries(t *testing.T) {
	s := NewContentStore()
	ctx := context.Background()

	a, _ := s.InsertContent(ctx, "a", "body a")
	_, _ = s.InsertContent(ctx, "b", "body b")
	_, err := s.InsertSummary(ctx, a, "first")
	require.NoError(t, err)
	_, err = s.InsertSummary(ctx, a, "second")
	require.NoError(t, err)

	records, err := s.ContentsWithSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Summary)
	assert.Equal(t, "body a", records[0].Content)
}

func TestContentStore_Labels(t *testing.T) {
	s := NewContentStore()
	ctx := context.Background()

	id, _ := s.InsertContent(ctx, "t", "b")
	other, _ := s.InsertContent(ctx, "o", "b")

	n, err := s.InsertLabels(ctx, id, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	_, _ = s.InsertLabels(ctx, other, []string{"z"})

	labels, err := s.LabelsFor(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, labels)

	removed, err := s.DeleteLabels(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	labels, _ = s.LabelsFor(ctx, id)
	assert.Empty(t, labels)
	labels, _ = s.LabelsFor(ctx, other)
	assert.Equal(t, []string{"z"}, labels)
}

func TestContentStore_States(t *testing.T) {
	s := NewContentStore()
	ctx := context.Background()

	a, _ := s.InsertContent(ctx, "a", "")
	b, _ := s.InsertContent(ctx, "b", "")
	require.NoError(t, s.SetState(ctx, a, domain.StateComplete))
	assert.ErrorIs(t, s.SetState(ctx, 42, domain.StateComplete), domain.ErrNotFound)

	pending, err := s.UnfinishedContents(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b, pending[0].ID)
}
