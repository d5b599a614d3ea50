package driving

import (
	"context"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// RepositoryService browses and analyses a user's hosted repositories.
// Every method takes the caller's access token; an empty token returns
// domain.ErrAuthRequired.
type RepositoryService interface {
	// ListRepositories returns the repositories the token can access.
	ListRepositories(ctx context.Context, token string) ([]domain.Repository, error)

	// ListFiles returns the recursive tree of a repository.
	ListFiles(ctx context.Context, token, owner, repo string) (*domain.RepositoryTree, error)

	// GetFile returns the raw content of one file.
	GetFile(ctx context.Context, token, owner, repo, path string) (string, error)

	// DiscoverFunctions parses the repository's code files and returns their functions.
	DiscoverFunctions(ctx context.Context, token, owner, repo string) ([]domain.CodeFunction, error)

	// Analyze parses the repository's code files into functions, a
	// dependency graph and a feature map.
	Analyze(ctx context.Context, token, owner, repo string) (*domain.RepositoryAnalysis, error)
}

// FileAnalyzer analyses source files already held in memory.
type FileAnalyzer interface {
	// AnalyzeFiles parses files keyed by path into functions, a dependency
	// graph and a feature map, with the same per-file limits as Analyze.
	AnalyzeFiles(files map[string]string) *domain.RepositoryAnalysis
}
