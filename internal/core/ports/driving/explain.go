package driving

import (
	"context"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// ExplainService generates and caches natural-language explanations.
type ExplainService interface {
	// Explain describes what a function does.
	// Returns domain.ErrInvalidInput for missing fields, domain.ErrConfig when
	// no provider is configured and domain.ErrUpstream when every provider failed.
	Explain(ctx context.Context, req domain.ExplanationRequest) (*domain.Explanation, error)

	// ExplainUsage describes where and why a function is used.
	ExplainUsage(ctx context.Context, req domain.UsageRequest) (*domain.UsageExplanation, error)

	// CacheStats reports the explanation cache contents.
	CacheStats() domain.CacheStats
}
