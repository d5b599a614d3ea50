package mcp

import (
	"context"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// mockExplainService is a mock implementation of driving.ExplainService.
type mockExplainService struct {
	explanation *domain.Explanation
	stats       domain.CacheStats
	err         error
	last        domain.ExplanationRequest
}

func (m *mockExplainService) Explain(_ context.Context, req domain.ExplanationRequest) (*domain.Explanation, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return m.explanation, nil
}

func (m *mockExplainService) ExplainUsage(_ context.Context, _ domain.UsageRequest) (*domain.UsageExplanation, error) {
	return nil, m.err
}

func (m *mockExplainService) CacheStats() domain.CacheStats {
	return m.stats
}
