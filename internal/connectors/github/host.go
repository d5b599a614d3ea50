package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/logger"
)

// Ensure Host and HostFactory implement the interfaces.
var (
	_ driven.CodeHost        = (*Host)(nil)
	_ driven.CodeHostFactory = (*HostFactory)(nil)
)

// treeBranches are tried in order when resolving a repository tree.
var treeBranches = []string{"main", "master"}

// Host is a CodeHost bound to one access token.
type Host struct {
	client *Client
}

// NewHost wraps a client.
func NewHost(client *Client) *Host {
	return &Host{client: client}
}

// ListRepositories returns repositories the user can access, most recently
// updated first.
func (h *Host) ListRepositories(ctx context.Context) ([]domain.Repository, error) {
	repos, err := h.client.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, toRepository(r))
	}
	return out, nil
}

// GetTree returns the recursive tree of main, or of master when main
// does not exist.
func (h *Host) GetTree(ctx context.Context, owner, repo string) (*domain.RepositoryTree, error) {
	for _, branch := range treeBranches {
		tree, err := h.client.GetTree(ctx, owner, repo, branch)
		if IsNotFound(err) {
			logger.Debug("branch not found", "owner", owner, "repo", repo, "branch", branch)
			continue
		}
		if err != nil {
			return nil, err
		}
		if tree.GetTruncated() {
			logger.Warn("repository tree truncated by GitHub", "owner", owner, "repo", repo)
		}
		return toTree(branch, tree), nil
	}
	return nil, ErrBranchNotFound
}

// GetFileContent returns the raw text of a file on the default branch.
func (h *Host) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	return h.client.GetFileContent(ctx, owner, repo, path, "")
}

func toRepository(r *gh.Repository) domain.Repository {
	return domain.Repository{
		ID:            r.GetID(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		URL:           r.GetHTMLURL(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		Private:       r.GetPrivate(),
		DefaultBranch: r.GetDefaultBranch(),
	}
}

func toTree(branch string, tree *gh.Tree) *domain.RepositoryTree {
	out := &domain.RepositoryTree{
		Branch:  branch,
		Entries: make([]domain.TreeEntry, 0, len(tree.Entries)),
	}
	for _, e := range tree.Entries {
		out.Entries = append(out.Entries, domain.TreeEntry{
			Path: e.GetPath(),
			Type: e.GetType(),
			SHA:  e.GetSHA(),
			Size: e.GetSize(),
		})
	}
	return out
}

// HostFactory creates Hosts per token. When a cache is supplied, clients
// are reused so their rate-limit state survives across requests.
type HostFactory struct {
	opts    Options
	clients driven.Cache
	ttl     time.Duration
}

// NewHostFactory creates a factory. clients may be nil.
func NewHostFactory(opts Options, clients driven.Cache, ttl time.Duration) *HostFactory {
	return &HostFactory{opts: opts, clients: clients, ttl: ttl}
}

// ForToken returns a Host authenticated with token.
func (f *HostFactory) ForToken(ctx context.Context, token string) (driven.CodeHost, error) {
	if token == "" {
		return nil, domain.ErrAuthRequired
	}

	// Raw tokens never become cache keys.
	key := domain.MakeHashedKey("github_client", token)
	if f.clients != nil {
		if v, ok := f.clients.Get(key); ok {
			if host, ok := v.(*Host); ok {
				return host, nil
			}
		}
	}

	// The client outlives the request that created it.
	client, err := NewClientWithToken(context.WithoutCancel(ctx), token, f.opts)
	if err != nil {
		return nil, err
	}
	host := NewHost(client)
	if f.clients != nil {
		f.clients.Set(key, host, f.ttl)
	}
	return host, nil
}
