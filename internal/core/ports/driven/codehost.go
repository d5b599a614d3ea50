package driven

import (
	"context"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// CodeHost is a read-only view of the repositories one user can access.
type CodeHost interface {
	// ListRepositories returns repositories the user can access, most
	// recently updated first.
	ListRepositories(ctx context.Context) ([]domain.Repository, error)

	// GetTree returns the recursive tree of the default branch.
	GetTree(ctx context.Context, owner, repo string) (*domain.RepositoryTree, error)

	// GetFileContent returns the raw text of a file.
	GetFileContent(ctx context.Context, owner, repo, path string) (string, error)
}

// CodeHostFactory opens a CodeHost authenticated with an access token.
type CodeHostFactory interface {
	ForToken(ctx context.Context, token string) (CodeHost, error)
}
