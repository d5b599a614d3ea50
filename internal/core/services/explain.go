package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/core/ports/driving"
	"github.com/custodia-labs/codelens/internal/logger"
	"github.com/custodia-labs/codelens/internal/metrics"
)

// Ensure ExplainService implements the interface.
var _ driving.ExplainService = (*ExplainService)(nil)

const (
	explainSystemPrompt = "You are a helpful code explanation expert. Explain code clearly and concisely in 2-3 sentences."
	usageSystemPrompt   = "You are a code analysis expert. Explain where and why functions are used."

	explainMaxTokens = 300
	usageMaxTokens   = 500
	temperature      = 0.7

	// DefaultProviderTimeout bounds a single provider call.
	DefaultProviderTimeout = 30 * time.Second

	cacheKindExplanation = "explanation"
	cacheKindUsage       = "usage"
)

// ExplainConfig holds the collaborators of an ExplainService.
type ExplainConfig struct {
	// Providers are tried in order until one returns a non-empty completion.
	Providers []driven.LLMService

	// Cache stores generated explanations.
	Cache driven.Cache

	// TTL is the lifetime of cached explanations (0 = the cache default).
	TTL time.Duration

	// Timeout bounds each provider call (default: 30s).
	Timeout time.Duration

	// HashKeys derives cache keys from a SHA-256 of the snippet instead of
	// the snippet itself.
	HashKeys bool

	// Metrics is optional.
	Metrics *metrics.Metrics

	// Now returns the current time (default: time.Now).
	Now func() time.Time
}

// ExplainService produces cached natural-language explanations from an
// ordered chain of LLM providers.
type ExplainService struct {
	providers []driven.LLMService
	cache     driven.Cache
	ttl       time.Duration
	timeout   time.Duration
	hashKeys  bool
	metrics   *metrics.Metrics
	now       func() time.Time
	flights   singleflight.Group
}

// NewExplainService creates an explanation service.
func NewExplainService(cfg ExplainConfig) *ExplainService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultProviderTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ExplainService{
		providers: cfg.Providers,
		cache:     cfg.Cache,
		ttl:       cfg.TTL,
		timeout:   cfg.Timeout,
		hashKeys:  cfg.HashKeys,
		metrics:   cfg.Metrics,
		now:       cfg.Now,
	}
}

// Providers returns the names of the configured providers in call order.
func (s *ExplainService) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Explain describes what a function does.
func (s *ExplainService) Explain(ctx context.Context, req domain.ExplanationRequest) (*domain.Explanation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := s.key(domain.CachePrefixExplanation, req.FunctionName, req.Code)
	if hit, ok := lookup[domain.Explanation](s, cacheKindExplanation, key); ok {
		logger.Debug("returning cached explanation", "function", req.FunctionName)
		hit.Cached = true
		return &hit, nil
	}

	p := prompt{
		system:    explainSystemPrompt,
		user:      explainPrompt(req),
		maxTokens: explainMaxTokens,
	}
	result, err := generate(ctx, s, key, p, func(text, provider string, ts int64) domain.Explanation {
		return domain.Explanation{
			FunctionName: req.FunctionName,
			How:          text,
			Provider:     provider,
			Timestamp:    ts,
		}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ExplainUsage describes where and why a function is used.
func (s *ExplainService) ExplainUsage(ctx context.Context, req domain.UsageRequest) (*domain.UsageExplanation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := s.key(domain.CachePrefixUsage, req.FunctionName, req.UsageContext, req.CodeSnippets)
	if hit, ok := lookup[domain.UsageExplanation](s, cacheKindUsage, key); ok {
		logger.Debug("returning cached usage explanation", "function", req.FunctionName)
		hit.Cached = true
		return &hit, nil
	}

	p := prompt{
		system:    usageSystemPrompt,
		user:      usagePrompt(req),
		maxTokens: usageMaxTokens,
	}
	result, err := generate(ctx, s, key, p, func(text, provider string, ts int64) domain.UsageExplanation {
		return domain.UsageExplanation{
			FunctionName: req.FunctionName,
			Where:        text,
			Provider:     provider,
			Timestamp:    ts,
		}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CacheStats reports the explanation cache contents.
func (s *ExplainService) CacheStats() domain.CacheStats {
	return s.cache.Stats()
}

func (s *ExplainService) key(prefix string, parts ...string) string {
	if s.hashKeys {
		return domain.MakeHashedKey(prefix, parts...)
	}
	return domain.MakeKey(prefix, parts...)
}

type prompt struct {
	system    string
	user      string
	maxTokens int
}

func explainPrompt(req domain.ExplanationRequest) string {
	extra := req.Context
	if extra == "" {
		extra = "N/A"
	}
	return fmt.Sprintf("Explain what this function does:\n\n%s\n\nFunction name: %s\nContext: %s",
		req.Code, req.FunctionName, extra)
}

func usagePrompt(req domain.UsageRequest) string {
	snippets := req.CodeSnippets
	if snippets == "" {
		snippets = "No snippets provided"
	}
	return fmt.Sprintf("Analyze WHERE and WHY this function is used:\n\nFunction: %s\n\nUsage Context:\n%s\n\nCode Snippets:\n%s\n\nExplain the purpose and context of usage.",
		req.FunctionName, req.UsageContext, snippets)
}

// lookup returns the cached value of type T under key.
func lookup[T any](s *ExplainService, kind, key string) (T, bool) {
	v, ok := s.cache.Get(key)
	t, isT := v.(T)
	hit := ok && isT
	s.metrics.CacheLookup(kind, hit)
	return t, hit
}

// generate runs the provider chain once per key at a time, caches the
// result and returns it. Concurrent callers with the same key share one
// provider call. The shared call is detached from any single caller's
// cancellation and bounded by the provider timeouts instead; each caller
// stops waiting when its own context is done.
func generate[T any](
	ctx context.Context, s *ExplainService, key string, p prompt,
	build func(text, provider string, ts int64) T,
) (T, error) {
	var zero T
	if len(s.providers) == 0 {
		return zero, fmt.Errorf("%w: no LLM provider configured", domain.ErrConfig)
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	flight := s.flights.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout*time.Duration(len(s.providers)))
		defer cancel()

		text, provider, err := s.complete(callCtx, p)
		if err != nil {
			return nil, err
		}
		result := build(text, provider, s.now().UnixMilli())
		s.cache.Set(key, result, s.ttl)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			logger.Debug("coalesced identical explanation request")
		}
		return res.Val.(T), nil
	}
}

// complete tries each provider in order and returns the first non-empty
// completion together with the provider's name.
func (s *ExplainService) complete(ctx context.Context, p prompt) (string, string, error) {
	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: p.system},
		{Role: driven.RoleUser, Content: p.user},
	}
	opts := driven.ChatOptions{MaxTokens: p.maxTokens, Temperature: temperature}

	var errs []error
	for _, provider := range s.providers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		text, err := s.call(ctx, provider, messages, opts)
		if err == nil {
			return text, provider.Name(), nil
		}
		logProviderError(provider.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
	}

	return "", "", fmt.Errorf("%w: all LLM providers failed: %w", domain.ErrUpstream, errors.Join(errs...))
}

func (s *ExplainService) call(
	ctx context.Context, provider driven.LLMService, messages []driven.ChatMessage, opts driven.ChatOptions,
) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := provider.Chat(callCtx, messages, opts)
	if err == nil && strings.TrimSpace(text) == "" {
		err = domain.NewUpstreamError(provider.Name(), 0, "empty completion", nil)
	}
	s.metrics.ProviderCall(provider.Name(), err, time.Since(start))
	if err != nil {
		return "", err
	}
	return text, nil
}

func logProviderError(provider string, err error) {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		logger.Warn("LLM provider failed",
			"provider", provider,
			"status", upstream.StatusCode,
			"body", upstream.Message)
		return
	}
	logger.Warn("LLM provider failed", "provider", provider, "error", err)
}
