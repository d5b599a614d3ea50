package services

import (
	"context"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/core/ports/driving"
	"github.com/custodia-labs/codelens/internal/logger"
	"github.com/custodia-labs/codelens/internal/metrics"
)

// Ensure RepositoryService implements the interface.
var (
	_ driving.RepositoryService = (*RepositoryService)(nil)
	_ driving.FileAnalyzer      = (*RepositoryService)(nil)
)

// Discovery defaults.
const (
	DefaultMaxFiles            = 50
	DefaultMaxFunctionsPerFile = 10
	DefaultFetchConcurrency    = 4
)

// DefaultCodeExtensions are the file extensions parsed by default.
var DefaultCodeExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// SkippedDirs are never parsed: they hold dependencies or build output.
var SkippedDirs = []string{"node_modules", "dist", "build", ".next"}

// RepositoryConfig holds the collaborators and limits of a RepositoryService.
type RepositoryConfig struct {
	Hosts  driven.CodeHostFactory
	Parser driven.CodeParser

	// Extensions selects code files (default: .ts .tsx .js .jsx).
	Extensions []string

	// MaxFiles caps how many code files are fetched (default: 50).
	MaxFiles int

	// MaxFunctionsPerFile caps functions kept per file (default: 10).
	MaxFunctionsPerFile int

	// Concurrency bounds parallel content fetches (default: 4).
	Concurrency int

	Metrics *metrics.Metrics
}

// RepositoryService browses repositories and parses their code files.
type RepositoryService struct {
	hosts        driven.CodeHostFactory
	parser       driven.CodeParser
	extensions   []string
	maxFiles     int
	maxFunctions int
	concurrency  int
	metrics      *metrics.Metrics
}

// NewRepositoryService creates a repository service.
func NewRepositoryService(cfg RepositoryConfig) *RepositoryService {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultCodeExtensions
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = DefaultMaxFiles
	}
	if cfg.MaxFunctionsPerFile <= 0 {
		cfg.MaxFunctionsPerFile = DefaultMaxFunctionsPerFile
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultFetchConcurrency
	}
	exts := make([]string, 0, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return &RepositoryService{
		hosts:        cfg.Hosts,
		parser:       cfg.Parser,
		extensions:   exts,
		maxFiles:     cfg.MaxFiles,
		maxFunctions: cfg.MaxFunctionsPerFile,
		concurrency:  cfg.Concurrency,
		metrics:      cfg.Metrics,
	}
}

// ListRepositories returns the repositories the token can access.
func (s *RepositoryService) ListRepositories(ctx context.Context, token string) ([]domain.Repository, error) {
	host, err := s.host(ctx, token)
	if err != nil {
		return nil, err
	}
	return host.ListRepositories(ctx)
}

// ListFiles returns the recursive tree of a repository.
func (s *RepositoryService) ListFiles(ctx context.Context, token, owner, repo string) (*domain.RepositoryTree, error) {
	if err := validateRepo(owner, repo); err != nil {
		return nil, err
	}
	host, err := s.host(ctx, token)
	if err != nil {
		return nil, err
	}
	return host.GetTree(ctx, owner, repo)
}

// GetFile returns the raw content of one file.
func (s *RepositoryService) GetFile(ctx context.Context, token, owner, repo, filePath string) (string, error) {
	if err := validateRepo(owner, repo); err != nil {
		return "", err
	}
	if filePath == "" {
		return "", domain.ErrMissingFields("path")
	}
	host, err := s.host(ctx, token)
	if err != nil {
		return "", err
	}
	return host.GetFileContent(ctx, owner, repo, filePath)
}

// DiscoverFunctions parses the repository's code files and returns their functions.
func (s *RepositoryService) DiscoverFunctions(ctx context.Context, token, owner, repo string) ([]domain.CodeFunction, error) {
	src, err := s.fetchSources(ctx, token, owner, repo)
	if err != nil {
		return nil, err
	}
	return s.extract(src), nil
}

// Analyze parses the repository's code files into functions, a dependency
// graph and a feature map.
func (s *RepositoryService) Analyze(ctx context.Context, token, owner, repo string) (*domain.RepositoryAnalysis, error) {
	src, err := s.fetchSources(ctx, token, owner, repo)
	if err != nil {
		return nil, err
	}

	analysis := s.analyze(src)
	analysis.Owner = owner
	analysis.Repo = repo
	return analysis, nil
}

// AnalyzeFiles runs the repository analysis over files already in memory,
// keyed by path. Files are visited in path order.
func (s *RepositoryService) AnalyzeFiles(files map[string]string) *domain.RepositoryAnalysis {
	return s.analyze(&sources{
		paths:    slices.Sorted(maps.Keys(files)),
		contents: files,
	})
}

func (s *RepositoryService) analyze(src *sources) *domain.RepositoryAnalysis {
	functions := s.extract(src)
	return &domain.RepositoryAnalysis{
		Branch:    src.branch,
		Files:     src.paths,
		Functions: functions,
		Graph:     s.parser.BuildDependencyGraph(src.contents, functions),
		Features:  s.parser.MapFeatures(src.contents, functions),
	}
}

// sources holds fetched file contents; paths keeps tree order and lists
// only files that were fetched successfully.
type sources struct {
	branch   string
	paths    []string
	contents map[string]string
}

func (s *RepositoryService) extract(src *sources) []domain.CodeFunction {
	functions := make([]domain.CodeFunction, 0)
	for _, fp := range src.paths {
		found := s.parser.ExtractFunctions(src.contents[fp], fp)
		if len(found) > s.maxFunctions {
			found = found[:s.maxFunctions]
		}
		functions = append(functions, found...)
	}
	return functions
}

func (s *RepositoryService) fetchSources(ctx context.Context, token, owner, repo string) (*sources, error) {
	if err := validateRepo(owner, repo); err != nil {
		return nil, err
	}
	host, err := s.host(ctx, token)
	if err != nil {
		return nil, err
	}
	tree, err := host.GetTree(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	files := s.CodeFiles(tree.Entries)
	logger.Debug("fetching code files", "owner", owner, "repo", repo, "branch", tree.Branch, "files", len(files))

	contents := make([]string, len(files))
	fetched := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, fp := range files {
		g.Go(func() error {
			text, err := host.GetFileContent(gctx, owner, repo, fp)
			s.metrics.FileFetched(err)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("skipping file", "path", fp, "error", err)
				return nil
			}
			contents[i] = text
			fetched[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", owner, repo, err)
	}

	src := &sources{
		branch:   tree.Branch,
		paths:    make([]string, 0, len(files)),
		contents: make(map[string]string, len(files)),
	}
	for i, fp := range files {
		if fetched[i] {
			src.paths = append(src.paths, fp)
			src.contents[fp] = contents[i]
		}
	}
	return src, nil
}

// CodeFiles returns the paths of code blobs in tree order, skipping
// dependency and build directories, capped at the configured maximum.
func (s *RepositoryService) CodeFiles(entries []domain.TreeEntry) []string {
	files := make([]string, 0)
	for _, e := range entries {
		if len(files) >= s.maxFiles {
			break
		}
		if !e.IsBlob() || !s.isCodeFile(e.Path) {
			continue
		}
		files = append(files, e.Path)
	}
	return files
}

func (s *RepositoryService) isCodeFile(filePath string) bool {
	if !slices.Contains(s.extensions, strings.ToLower(path.Ext(filePath))) {
		return false
	}
	for _, segment := range strings.Split(path.Dir(filePath), "/") {
		if slices.Contains(SkippedDirs, segment) {
			return false
		}
	}
	return true
}

func (s *RepositoryService) host(ctx context.Context, token string) (driven.CodeHost, error) {
	if token == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.hosts.ForToken(ctx, token)
}

func validateRepo(owner, repo string) error {
	if owner == "" || repo == "" {
		return domain.ErrMissingFields("owner", "repo")
	}
	return nil
}
