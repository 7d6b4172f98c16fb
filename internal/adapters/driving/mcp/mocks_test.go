package mcp

import (
	"context"

	"github.com/custodia-labs/brainspread/internal/core/domain"
)

// mockEnrichmentService is a mock implementation of driving.EnrichmentService.
type mockEnrichmentService struct {
	result  *domain.SubmitResult
	records []domain.EnrichedRecord
	record  *domain.EnrichedRecord
	pending []domain.Content
	err     error

	submittedTitle string
	submittedBody  string
	resumedID      int64
	gotID          int64
}

func (m *mockEnrichmentService) Submit(_ context.Context, title, body string) (*domain.SubmitResult, error) {
	m.submittedTitle = title
	m.submittedBody = body
	return m.result, m.err
}

func (m *mockEnrichmentService) List(_ context.Context) ([]domain.EnrichedRecord, error) {
	return m.records, m.err
}

func (m *mockEnrichmentService) Get(_ context.Context, id int64) (*domain.EnrichedRecord, error) {
	m.gotID = id
	return m.record, m.err
}

func (m *mockEnrichmentService) Pending(_ context.Context) ([]domain.Content, error) {
	return m.pending, m.err
}

func (m *mockEnrichmentService) Resume(_ context.Context, id int64) (*domain.SubmitResult, error) {
	m.resumedID = id
	return m.result, m.err
}
