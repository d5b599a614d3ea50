package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

type mockExplainService struct {
	explanation *domain.Explanation
	err         error
}

func (m *mockExplainService) Explain(_ context.Context, _ domain.ExplanationRequest) (*domain.Explanation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.explanation, nil
}

func (m *mockExplainService) ExplainUsage(_ context.Context, _ domain.UsageRequest) (*domain.UsageExplanation, error) {
	return nil, m.err
}

func (m *mockExplainService) CacheStats() domain.CacheStats {
	return domain.CacheStats{}
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrMissingExplainService)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingExplainService)
	assert.NoError(t, (&Ports{Explain: &mockExplainService{}}).Validate())
}
