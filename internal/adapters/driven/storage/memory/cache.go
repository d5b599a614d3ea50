package memory

import (
	"container/list"
	"sync"
	"time"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.Cache = (*Cache)(nil)

// DefaultTTL is the entry lifetime used when Set is given ttl <= 0.
const DefaultTTL = 24 * time.Hour

// CacheConfig holds configuration for the in-memory cache.
type CacheConfig struct {
	// TTL is the default entry lifetime (default: 24h).
	TTL time.Duration

	// Capacity bounds the number of entries; the least recently used entry
	// is evicted when it is exceeded (0 = unbounded).
	Capacity int

	// Now returns the current time (default: time.Now).
	Now func() time.Time

	// OnEvict is called with the key of each entry dropped for capacity.
	OnEvict func(key string)
}

// Cache is an in-memory implementation of driven.Cache.
// Expiry is lazy: an expired entry stays in memory until it is read,
// deleted, or pushed out by the capacity bound.
type Cache struct {
	mu       sync.Mutex
	items    map[string]*list.Element
	order    *list.List // front = most recently used
	ttl      time.Duration
	capacity int
	now      func() time.Time
	onEvict  func(string)
}

// NewCache creates a new in-memory cache.
func NewCache(cfg CacheConfig) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Cache{
		items:    make(map[string]*list.Element),
		order:    list.New(),
		ttl:      cfg.TTL,
		capacity: cfg.Capacity,
		now:      cfg.Now,
		onEvict:  cfg.OnEvict,
	}
}

// Set stores value under key, replacing any previous entry.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	entry := &domain.CacheEntry{
		Key:       key,
		Value:     value,
		CreatedAt: c.now(),
		TTL:       ttl,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value = entry
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(entry)
	c.evictOverCapacity()
}

// Get returns the value stored under key. An expired entry is removed
// and reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}

	entry := el.Value.(*domain.CacheEntry)
	if entry.Expired(c.now()) {
		c.removeElement(el)
		return nil, false
	}

	c.order.MoveToFront(el)
	return entry.Value, true
}

// Has reports whether key holds a live entry.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Stats returns the number of stored entries and their keys, most recently
// used first. Expired entries that have not been read yet are included.
func (c *Cache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*domain.CacheEntry).Key)
	}
	return domain.CacheStats{Size: len(c.items), Keys: keys}
}

// evictOverCapacity drops least recently used entries (caller must hold lock).
func (c *Cache) evictOverCapacity() {
	if c.capacity <= 0 {
		return
	}
	for len(c.items) > c.capacity {
		back := c.order.Back()
		if back == nil {
			return
		}
		key := back.Value.(*domain.CacheEntry).Key
		c.removeElement(back)
		if c.onEvict != nil {
			c.onEvict(key)
		}
	}
}

// removeElement unlinks el (caller must hold lock).
func (c *Cache) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*domain.CacheEntry).Key)
}
