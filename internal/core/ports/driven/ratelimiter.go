package driven

import "time"

// RateLimiter decides whether an identifier may make another request.
type RateLimiter interface {
	// IsAllowed consumes one request using the configured defaults.
	IsAllowed(identifier string) bool

	// IsAllowedWith consumes one request using explicit limits.
	IsAllowedWith(identifier string, maxRequests int, window time.Duration) bool

	// RemainingRequests reports how many requests are left without consuming one.
	RemainingRequests(identifier string) int

	// ResetTime reports when the identifier's window ends.
	ResetTime(identifier string) time.Time

	// Reset forgets the identifier.
	Reset(identifier string)

	// Clear forgets every identifier.
	Clear()
}
