// Package ratelimit provides the fixed-window limiter that guards
// explanation requests before they reach paid LLM providers.
package ratelimit

import (
	"sync"
	"time"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
)

// Ensure FixedWindow implements the interface.
var _ driven.RateLimiter = (*FixedWindow)(nil)

// Default limits, matching the RATE_LIMIT_* defaults.
const (
	DefaultMaxRequests = 100
	DefaultWindow      = time.Hour
)

// Config holds configuration for a FixedWindow limiter.
type Config struct {
	// MaxRequests is the default number of requests per window.
	MaxRequests int

	// Window is the default window length.
	Window time.Duration

	// Capacity bounds the number of tracked identifiers (0 = unbounded).
	Capacity int

	// Now returns the current time (default: time.Now).
	Now func() time.Time
}

// FixedWindow counts requests per identifier in discrete windows.
// A window opens on an identifier's first request and closes Window later;
// the next request after that opens a fresh window with a count of one.
type FixedWindow struct {
	mu          sync.Mutex
	entries     map[string]*domain.RateLimitEntry
	maxRequests int
	window      time.Duration
	capacity    int
	now         func() time.Time
}

// NewFixedWindow creates a limiter with the given defaults.
func NewFixedWindow(cfg Config) *FixedWindow {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = DefaultMaxRequests
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &FixedWindow{
		entries:     make(map[string]*domain.RateLimitEntry),
		maxRequests: cfg.MaxRequests,
		window:      cfg.Window,
		capacity:    cfg.Capacity,
		now:         cfg.Now,
	}
}

// IsAllowed consumes one request for identifier using the default limits.
func (l *FixedWindow) IsAllowed(identifier string) bool {
	l.mu.Lock()
	maxRequests, window := l.maxRequests, l.window
	l.mu.Unlock()
	return l.IsAllowedWith(identifier, maxRequests, window)
}

// IsAllowedWith consumes one request for identifier.
// A denied request leaves the entry unchanged.
func (l *FixedWindow) IsAllowedWith(identifier string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[identifier]
	if !ok || now.After(entry.WindowResetAt) {
		if !ok {
			l.makeRoom(now)
		}
		l.entries[identifier] = &domain.RateLimitEntry{
			Identifier:    identifier,
			Count:         1,
			WindowResetAt: now.Add(window),
		}
		return true
	}

	if entry.Count < maxRequests {
		entry.Count++
		return true
	}
	return false
}

// RemainingRequests reports how many requests identifier has left in its
// current window under the default limit. It does not consume a request.
func (l *FixedWindow) RemainingRequests(identifier string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[identifier]
	if !ok || l.now().After(entry.WindowResetAt) {
		return l.maxRequests
	}
	return max(0, l.maxRequests-entry.Count)
}

// ResetTime reports when identifier's window ends, or now if it has none.
func (l *FixedWindow) ResetTime(identifier string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.entries[identifier]; ok {
		return entry.WindowResetAt
	}
	return l.now()
}

// Reset forgets identifier.
func (l *FixedWindow) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, identifier)
}

// Clear forgets every identifier.
func (l *FixedWindow) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*domain.RateLimitEntry)
}

// SetDefaults replaces the default limits. Open windows keep their reset time.
func (l *FixedWindow) SetDefaults(maxRequests int, window time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if maxRequests > 0 {
		l.maxRequests = maxRequests
	}
	if window > 0 {
		l.window = window
	}
}

// Len returns the number of tracked identifiers.
func (l *FixedWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// makeRoom keeps the table under capacity before a new identifier is added.
// Expired windows go first; if none have expired, the window closest to
// its reset is dropped. Caller must hold the lock.
func (l *FixedWindow) makeRoom(now time.Time) {
	if l.capacity <= 0 || len(l.entries) < l.capacity {
		return
	}

	for id, entry := range l.entries {
		if now.After(entry.WindowResetAt) {
			delete(l.entries, id)
		}
	}
	if len(l.entries) < l.capacity {
		return
	}

	var oldestID string
	var oldest time.Time
	for id, entry := range l.entries {
		if oldestID == "" || entry.WindowResetAt.Before(oldest) {
			oldestID, oldest = id, entry.WindowResetAt
		}
	}
	delete(l.entries, oldestID)
}
