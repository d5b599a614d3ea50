package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(capacity int) (*Cache, *testClock) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	return NewCache(CacheConfig{Capacity: capacity, Now: clock.Now}), clock
}

func TestNewCache_Defaults(t *testing.T) {
	c := NewCache(CacheConfig{})
	assert.Equal(t, DefaultTTL, c.ttl)
	assert.Equal(t, 0, c.Stats().Size)
}

func TestCache_TTLBoundary(t *testing.T) {
	ttls := []time.Duration{time.Second, time.Minute, 24 * time.Hour}

	for _, ttl := range ttls {
		t.Run(ttl.String(), func(t *testing.T) {
			c, clock := newTestCache(0)
			c.Set("k", "value", ttl)

			clock.Advance(ttl - time.Millisecond)
			got, ok := c.Get("k")
			require.True(t, ok)
			assert.Equal(t, "value", got)

			clock.Advance(2 * time.Millisecond)
			got, ok = c.Get("k")
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestCache_ExpiredEntryIsRemovedOnRead(t *testing.T) {
	c, clock := newTestCache(0)
	c.Set("k", 1, time.Second)
	clock.Advance(2 * time.Second)

	assert.Equal(t, 1, c.Stats().Size, "expiry is lazy")
	assert.False(t, c.Has("k"))
	assert.Equal(t, 0, c.Stats().Size)
}

func TestCache_DefaultTTLUsedForNonPositive(t *testing.T) {
	c, clock := newTestCache(0)
	c.Set("k", 1, 0)

	clock.Advance(DefaultTTL)
	assert.True(t, c.Has("k"))
	clock.Advance(time.Millisecond)
	assert.False(t, c.Has("k"))
}

func TestCache_SetReplacesAndRestartsTTL(t *testing.T) {
	c, clock := newTestCache(0)
	c.Set("k", "old", time.Second)
	clock.Advance(900 * time.Millisecond)
	c.Set("k", "new", time.Second)
	clock.Advance(900 * time.Millisecond)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, c.Stats().Size)
}

func TestCache_DeleteAndClear(t *testing.T) {
	c, _ := newTestCache(0)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	c.Delete("missing")
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))

	c.Clear()
	assert.Equal(t, domain.CacheStats{Size: 0, Keys: []string{}}, c.Stats())
}

func TestCache_Stats(t *testing.T) {
	c, _ := newTestCache(0)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Get("a")

	stats := c.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, []string{"a", "b"}, stats.Keys)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := NewCache(CacheConfig{Capacity: 2, OnEvict: func(k string) { evicted = append(evicted, k) }})

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Get("a")
	c.Set("c", 3, 0)

	assert.True(t, c.Has("a"))
	assert.False(t, c.Has("b"))
	assert.True(t, c.Has("c"))
	assert.Equal(t, []string{"b"}, evicted)
}

func TestCache_ValueReturnedUnchanged(t *testing.T) {
	c, _ := newTestCache(0)
	want := domain.Explanation{FunctionName: "foo", How: "adds", Timestamp: 42}
	c.Set("k", want, 0)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache(CacheConfig{Capacity: 50})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i*100+j)%80)
				c.Set(key, j, 0)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Stats().Size, 50)
}
