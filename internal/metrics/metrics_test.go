package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	m.CacheLookup("explanation", true)
	m.RateLimit(true)
	m.ProviderCall("routeway", nil, time.Second)
	m.HTTPRequest("/health", "GET", "200", time.Millisecond)
	m.FileFetched(nil)
	m.CacheEviction()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 8)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CacheLookup("explanation", true)
	m.CacheLookup("explanation", false)
	m.CacheLookup("explanation", false)
	m.RateLimit(false)
	m.ProviderCall("openai", errors.New("boom"), 10*time.Millisecond)
	m.ProviderCall("openai", nil, 10*time.Millisecond)
	m.FileFetched(errors.New("404"))

	assert.InDelta(t, 1, testutil.ToFloat64(m.cacheLookups.WithLabelValues("explanation", ResultHit)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.cacheLookups.WithLabelValues("explanation", ResultMiss)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.rateLimitDecision.WithLabelValues(DecisionDenied)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.providerCalls.WithLabelValues("openai", OutcomeError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.providerCalls.WithLabelValues("openai", OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.filesFetched.WithLabelValues(OutcomeError)), 0)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheLookup("usage", true)
		m.CacheEviction()
		m.RateLimit(true)
		m.ProviderCall("x", nil, 0)
		m.HTTPRequest("/", "GET", "200", 0)
		m.FileFetched(nil)
	})
}
