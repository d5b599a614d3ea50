package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache key prefixes used by the explanation service.
const (
	CachePrefixExplanation = "function_explanation"
	CachePrefixUsage       = "function_usage"
)

// CacheEntry is a stored value with its creation time and lifetime.
type CacheEntry struct {
	Key       string
	Value     any
	CreatedAt time.Time
	TTL       time.Duration
}

// Expired reports whether the entry is logically absent at now.
// An entry is still live at exactly CreatedAt+TTL.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) > e.TTL
}

// CacheStats is a snapshot of cache occupancy.
type CacheStats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// MakeKey joins prefix and parts with ":".
// Parts are used verbatim: inputs that differ by a single whitespace
// character produce different keys.
func MakeKey(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

// MakeHashedKey is MakeKey with the parts replaced by the hex SHA-256 of
// their ":"-joined form. It bounds key length for large code snippets.
func MakeHashedKey(prefix string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
