// Package metrics defines the Prometheus collectors exported by codelens.
//
// A nil *Metrics is valid and records nothing, so services can be built
// without a registry in tests and one-shot CLI commands.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "codelens"

// Label values.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"

	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds every collector.
type Metrics struct {
	cacheLookups      *prometheus.CounterVec
	cacheEvictions    prometheus.Counter
	rateLimitDecision *prometheus.CounterVec
	providerCalls     *prometheus.CounterVec
	providerLatency   *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	filesFetched      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Explanation cache lookups by kind and result",
		}, []string{"kind", "result"}),
		cacheEvictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Entries dropped by the cache capacity bound",
		}),
		rateLimitDecision: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Rate limiter decisions",
		}, []string{"decision"}),
		providerCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "LLM provider calls by provider and outcome",
		}, []string{"provider", "outcome"}),
		providerLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "latency_seconds",
			Help:      "LLM provider call latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"provider"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		filesFetched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "github",
			Name:      "files_fetched_total",
			Help:      "Repository files fetched for parsing by outcome",
		}, []string{"outcome"}),
	}
}

// CacheLookup records a cache hit or miss for kind ("explanation" or "usage").
func (m *Metrics) CacheLookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

// CacheEviction records one capacity eviction.
func (m *Metrics) CacheEviction() {
	if m == nil {
		return
	}
	m.cacheEvictions.Inc()
}

// RateLimit records a limiter decision.
func (m *Metrics) RateLimit(allowed bool) {
	if m == nil {
		return
	}
	decision := DecisionDenied
	if allowed {
		decision = DecisionAllowed
	}
	m.rateLimitDecision.WithLabelValues(decision).Inc()
}

// ProviderCall records one provider call and its latency.
func (m *Metrics) ProviderCall(provider string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.providerCalls.WithLabelValues(provider, outcome).Inc()
	m.providerLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// HTTPRequest records a served request.
func (m *Metrics) HTTPRequest(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// FileFetched records a repository file fetch.
func (m *Metrics) FileFetched(err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.filesFetched.WithLabelValues(outcome).Inc()
}
