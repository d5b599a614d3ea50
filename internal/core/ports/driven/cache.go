package driven

import (
	"time"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// Cache is a process-local key/value store with per-entry TTL.
// Expired entries are dropped when read.
type Cache interface {
	// Set stores value under key. A ttl <= 0 uses the store's default.
	Set(key string, value any, ttl time.Duration)

	// Get returns the value and true, or nil and false when absent or expired.
	Get(key string) (any, bool)

	// Has reports whether Get would succeed.
	Has(key string) bool

	// Delete removes key.
	Delete(key string)

	// Clear removes every entry.
	Clear()

	// Stats returns the current size and keys.
	Stats() domain.CacheStats
}
