package domain

import "time"

// RateLimitEntry tracks one identifier's fixed window.
type RateLimitEntry struct {
	// Identifier is usually the client IP address.
	Identifier string

	// Count is the number of requests accepted in the current window.
	Count int

	// WindowResetAt is the instant after which the window starts over.
	WindowResetAt time.Time
}
