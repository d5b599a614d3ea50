package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codelens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/codelens/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
}

func newTestHost(t *testing.T, mux *http.ServeMux) *Host {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClientWithToken(context.Background(), "test-token", Options{
		BaseURL:           srv.URL,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return NewHost(client)
}

func TestHost_GetTree_FallsBackToMaster(t *testing.T) {
	var mainCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/demo/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		mainCalls.Add(1)
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		notFound(w)
	})
	mux.HandleFunc("GET /repos/octo/demo/git/trees/master", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"sha": "abc",
			"tree": []map[string]any{
				{"path": "src", "type": "tree", "sha": "1"},
				{"path": "src/a.ts", "type": "blob", "sha": "2", "size": 42},
			},
		})
	})
	host := newTestHost(t, mux)

	tree, err := host.GetTree(context.Background(), "octo", "demo")

	require.NoError(t, err)
	assert.Equal(t, int32(1), mainCalls.Load())
	assert.Equal(t, "master", tree.Branch)
	assert.Equal(t, []domain.TreeEntry{
		{Path: "src", Type: domain.EntryTree, SHA: "1"},
		{Path: "src/a.ts", Type: domain.EntryBlob, SHA: "2", Size: 42},
	}, tree.Entries)
}

func TestHost_GetTree_PrefersMain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/demo/git/trees/main", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"sha": "abc", "tree": []any{}})
	})
	mux.HandleFunc("GET /repos/octo/demo/git/trees/master", func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("master must not be requested")
	})
	host := newTestHost(t, mux)

	tree, err := host.GetTree(context.Background(), "octo", "demo")

	require.NoError(t, err)
	assert.Equal(t, "main", tree.Branch)
	assert.Empty(t, tree.Entries)
}

func TestHost_GetTree_NoBranch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/demo/git/trees/{ref}", func(w http.ResponseWriter, _ *http.Request) {
		notFound(w)
	})
	host := newTestHost(t, mux)

	_, err := host.GetTree(context.Background(), "octo", "demo")

	assert.ErrorIs(t, err, ErrBranchNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHost_GetTree_ServerErrorDoesNotFallBack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/demo/git/trees/main", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})
	host := newTestHost(t, mux)

	_, err := host.GetTree(context.Background(), "octo", "demo")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestHost_GetFileContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/demo/contents/src/a.ts", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"type":     "file",
			"name":     "a.ts",
			"path":     "src/a.ts",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte("export function foo() {}")),
		})
	})
	mux.HandleFunc("GET /repos/octo/demo/contents/missing.ts", func(w http.ResponseWriter, _ *http.Request) {
		notFound(w)
	})
	host := newTestHost(t, mux)

	text, err := host.GetFileContent(context.Background(), "octo", "demo", "src/a.ts")
	require.NoError(t, err)
	assert.Equal(t, "export function foo() {}", text)

	_, err = host.GetFileContent(context.Background(), "octo", "demo", "missing.ts")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestHost_ListRepositories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		writeJSON(w, http.StatusOK, []map[string]any{{
			"id":               7,
			"name":             "demo",
			"full_name":        "octo/demo",
			"description":      "A demo",
			"html_url":         "https://github.com/octo/demo",
			"language":         "TypeScript",
			"stargazers_count": 3,
			"private":          true,
			"default_branch":   "main",
		}})
	})
	host := newTestHost(t, mux)

	repos, err := host.ListRepositories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{{
		ID:            7,
		Name:          "demo",
		FullName:      "octo/demo",
		Description:   "A demo",
		URL:           "https://github.com/octo/demo",
		Language:      "TypeScript",
		Stars:         3,
		Private:       true,
		DefaultBranch: "main",
	}}, repos)
}

func TestHost_Unauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/repos", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
	})
	host := newTestHost(t, mux)

	_, err := host.ListRepositories(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestHost_RateLimited(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/repos", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRateLimit, "5000")
		w.Header().Set(HeaderRateRemaining, "0")
		w.Header().Set(HeaderRateReset, strconv.FormatInt(reset, 10))
		writeJSON(w, http.StatusForbidden, map[string]string{
			"message": "API rate limit exceeded for user ID 1.",
		})
	})
	host := newTestHost(t, mux)

	_, err := host.ListRepositories(context.Background())

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestHostFactory_ReusesClients(t *testing.T) {
	cache := memory.NewCache(memory.CacheConfig{})
	factory := NewHostFactory(Options{}, cache, time.Hour)
	ctx := context.Background()

	a, err := factory.ForToken(ctx, "tok-a")
	require.NoError(t, err)
	again, err := factory.ForToken(ctx, "tok-a")
	require.NoError(t, err)
	b, err := factory.ForToken(ctx, "tok-b")
	require.NoError(t, err)

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	for _, key := range cache.Stats().Keys {
		assert.NotContains(t, key, "tok-")
	}

	_, err = factory.ForToken(ctx, "")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestHostFactory_WithoutCache(t *testing.T) {
	factory := NewHostFactory(Options{}, nil, 0)

	a, err := factory.ForToken(context.Background(), "tok")
	require.NoError(t, err)
	b, err := factory.ForToken(context.Background(), "tok")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}
