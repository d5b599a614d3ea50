package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/core/ports/driving"
	"github.com/custodia-labs/codelens/internal/logger"
	"github.com/custodia-labs/codelens/internal/metrics"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Errors returned by NewServer for missing collaborators.
var (
	ErrMissingExplainService    = errors.New("api: explain service is required")
	ErrMissingRepositoryService = errors.New("api: repository service is required")
	ErrMissingRateLimiter       = errors.New("api: rate limiter is required")
)

// Config wires the server to its services.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	Explain    driving.ExplainService
	Repository driving.RepositoryService
	Limiter    driven.RateLimiter

	// Metrics records request counters. Nil disables recording.
	Metrics *metrics.Metrics

	// Gatherer backs GET /metrics (default: prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer

	// LoginURL builds the GitHub authorize URL for a state value.
	// Nil makes /api/auth/login answer 500.
	LoginURL func(state string) (string, error)
}

// Server is the HTTP API.
type Server struct {
	addr       string
	engine     *gin.Engine
	explain    driving.ExplainService
	repository driving.RepositoryService
	loginURL   func(string) (string, error)
}

// NewServer builds the gin engine and registers every route.
func NewServer(cfg Config) (*Server, error) {
	switch {
	case cfg.Explain == nil:
		return nil, ErrMissingExplainService
	case cfg.Repository == nil:
		return nil, ErrMissingRepositoryService
	case cfg.Limiter == nil:
		return nil, ErrMissingRateLimiter
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	engine := gin.New()
	// Forwarded headers are read explicitly by clientIdentifier.
	_ = engine.SetTrustedProxies(nil)
	engine.Use(gin.Recovery(), requestID(), observe(cfg.Metrics))

	s := &Server{
		addr:       cfg.Addr,
		engine:     engine,
		explain:    cfg.Explain,
		repository: cfg.Repository,
		loginURL:   cfg.LoginURL,
	}
	s.routes(cfg.Limiter, cfg.Metrics, cfg.Gatherer)
	return s, nil
}

func (s *Server) routes(limiter driven.RateLimiter, m *metrics.Metrics, g prometheus.Gatherer) {
	s.engine.GET("/health", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	{
		api.GET("/auth/login", s.login)
		api.GET("/cache/stats", s.cacheStats)

		repos := api.Group("/repos")
		{
			repos.GET("", s.listRepositories)
			repos.GET("/:owner/:repo/files", s.listFiles)
			repos.GET("/:owner/:repo/file", s.getFile)
			repos.GET("/:owner/:repo/functions", s.discoverFunctions)
			repos.GET("/:owner/:repo/analysis", s.analyze)
		}

		explain := api.Group("/explain", rateLimit(limiter, m))
		{
			explain.POST("/function", s.explainFunction)
			explain.POST("/usage", s.explainUsage)
		}
	}
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	logger.Info("http server shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
