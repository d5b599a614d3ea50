package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
)

// mockLLMService returns a canned reply and counts calls.
type mockLLMService struct {
	name    string
	reply   string
	err     error
	calls   atomic.Int32
	gate    chan struct{} // when set, Chat blocks until it is closed
	mu      sync.Mutex
	lastMsg []driven.ChatMessage
	lastOpt driven.ChatOptions
}

func (m *mockLLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastMsg = messages
	m.lastOpt = opts
	m.mu.Unlock()

	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLMService) Name() string {
	return m.name
}

func (m *mockLLMService) ModelName() string {
	return "mock-model"
}

func (m *mockLLMService) Close() error {
	return nil
}

func (m *mockLLMService) Calls() int {
	return int(m.calls.Load())
}

func (m *mockLLMService) LastMessages() []driven.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMsg
}

// mockCodeHost serves a fixed tree and file set.
type mockCodeHost struct {
	repos    []domain.Repository
	tree     *domain.RepositoryTree
	files    map[string]string
	fileErrs map[string]error
	treeErr  error

	mu      sync.Mutex
	fetched []string
}

func (m *mockCodeHost) ListRepositories(_ context.Context) ([]domain.Repository, error) {
	return m.repos, nil
}

func (m *mockCodeHost) GetTree(_ context.Context, _, _ string) (*domain.RepositoryTree, error) {
	if m.treeErr != nil {
		return nil, m.treeErr
	}
	return m.tree, nil
}

func (m *mockCodeHost) GetFileContent(_ context.Context, _, _, path string) (string, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, path)
	m.mu.Unlock()

	if err, ok := m.fileErrs[path]; ok {
		return "", err
	}
	text, ok := m.files[path]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

// mockHostFactory hands out one host and records tokens.
type mockHostFactory struct {
	host   driven.CodeHost
	tokens []string
}

func (f *mockHostFactory) ForToken(_ context.Context, token string) (driven.CodeHost, error) {
	f.tokens = append(f.tokens, token)
	return f.host, nil
}
