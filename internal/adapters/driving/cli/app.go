package cli

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/custodia-labs/codelens/internal/adapters/driven/ai"
	"github.com/custodia-labs/codelens/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/codelens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/codelens/internal/connectors/github"
	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/services"
	"github.com/custodia-labs/codelens/internal/metrics"
	"github.com/custodia-labs/codelens/internal/parsers/lexical"
)

// GitHub clients are cached per token so their throttle state is shared.
const (
	githubClientTTL      = time.Hour
	githubClientCapacity = 1000
)

// app is the set of components a command runs against.
type app struct {
	settings domain.Settings
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	limiter  *ratelimit.FixedWindow
	chain    *ai.Chain
	parser   *lexical.Parser
	explain  *services.ExplainService
	repos    *services.RepositoryService
}

func newApp(settings domain.Settings) *app {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	explanations := memory.NewCache(memory.CacheConfig{
		TTL:      settings.Cache.TTL,
		Capacity: settings.Cache.Capacity,
		OnEvict:  func(string) { m.CacheEviction() },
	})
	clients := memory.NewCache(memory.CacheConfig{
		TTL:      githubClientTTL,
		Capacity: githubClientCapacity,
	})

	chain := ai.NewChain(settings.LLM)
	parser := lexical.New(lexical.Config{ContainerDirs: settings.Parser.ContainerDirs})
	hosts := github.NewHostFactory(github.Options{
		RequestsPerSecond: settings.GitHub.RequestsPerSecond,
	}, clients, githubClientTTL)

	return &app{
		settings: settings,
		registry: registry,
		metrics:  m,
		limiter: ratelimit.NewFixedWindow(ratelimit.Config{
			MaxRequests: settings.RateLimit.Requests,
			Window:      settings.RateLimit.Window,
			Capacity:    settings.RateLimit.Capacity,
		}),
		chain:  chain,
		parser: parser,
		explain: services.NewExplainService(services.ExplainConfig{
			Providers: chain.Providers,
			Cache:     explanations,
			TTL:       settings.Cache.TTL,
			Timeout:   settings.LLM.Timeout,
			HashKeys:  settings.Cache.HashKeys,
			Metrics:   m,
		}),
		repos: services.NewRepositoryService(services.RepositoryConfig{
			Hosts:               hosts,
			Parser:              parser,
			Extensions:          settings.Parser.Extensions,
			MaxFiles:            settings.GitHub.MaxFiles,
			MaxFunctionsPerFile: settings.GitHub.MaxFunctionsPerFile,
			Concurrency:         settings.GitHub.Concurrency,
			Metrics:             m,
		}),
	}
}

// loginURL builds the GitHub authorize URL for the configured OAuth app.
func (a *app) loginURL(state string) (string, error) {
	return github.LoginURL(a.settings.GitHub.ClientID, "", state)
}

// applyRateLimit re-applies rate-limit defaults after a settings reload.
func (a *app) applyRateLimit(settings domain.Settings) {
	a.limiter.SetDefaults(settings.RateLimit.Requests, settings.RateLimit.Window)
}

func (a *app) Close() {
	a.chain.Close()
}
