package api

import (
	"context"
	"sync"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// mockExplainService records requests and returns canned results.
type mockExplainService struct {
	mu       sync.Mutex
	explain  *domain.Explanation
	usage    *domain.UsageExplanation
	err      error
	stats    domain.CacheStats
	requests []domain.ExplanationRequest
}

func (m *mockExplainService) Explain(_ context.Context, req domain.ExplanationRequest) (*domain.Explanation, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return m.explain, nil
}

func (m *mockExplainService) ExplainUsage(_ context.Context, req domain.UsageRequest) (*domain.UsageExplanation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return m.usage, nil
}

func (m *mockExplainService) CacheStats() domain.CacheStats {
	return m.stats
}

// mockRepositoryService captures the token it was called with.
type mockRepositoryService struct {
	mu        sync.Mutex
	repos     []domain.Repository
	tree      *domain.RepositoryTree
	content   string
	functions []domain.CodeFunction
	analysis  *domain.RepositoryAnalysis
	err       error
	tokens    []string
	paths     []string
}

func (m *mockRepositoryService) record(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = append(m.tokens, token)
	if token == "" {
		return domain.ErrAuthRequired
	}
	return m.err
}

func (m *mockRepositoryService) ListRepositories(_ context.Context, token string) ([]domain.Repository, error) {
	if err := m.record(token); err != nil {
		return nil, err
	}
	return m.repos, nil
}

func (m *mockRepositoryService) ListFiles(_ context.Context, token, _, _ string) (*domain.RepositoryTree, error) {
	if err := m.record(token); err != nil {
		return nil, err
	}
	return m.tree, nil
}

func (m *mockRepositoryService) GetFile(_ context.Context, token, _, _, path string) (string, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()
	if err := m.record(token); err != nil {
		return "", err
	}
	return m.content, nil
}

func (m *mockRepositoryService) DiscoverFunctions(_ context.Context, token, _, _ string) ([]domain.CodeFunction, error) {
	if err := m.record(token); err != nil {
		return nil, err
	}
	return m.functions, nil
}

func (m *mockRepositoryService) Analyze(_ context.Context, token, _, _ string) (*domain.RepositoryAnalysis, error) {
	if err := m.record(token); err != nil {
		return nil, err
	}
	return m.analysis, nil
}
