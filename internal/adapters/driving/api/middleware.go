package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/logger"
	"github.com/custodia-labs/codelens/internal/metrics"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"

	// unknownClient identifies callers with no usable address.
	unknownClient = "unknown"
)

// requestID reuses the caller's X-Request-ID or assigns a new UUID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// observe logs every request and records it in m.
func observe(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.HTTPRequest(route, c.Request.Method, strconv.Itoa(status), elapsed)

		logger.Debug("http request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// rateLimit consumes one request per client identifier and rejects the
// request with 429 once the window's quota is spent.
func rateLimit(limiter driven.RateLimiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := clientIdentifier(c)
		allowed := limiter.IsAllowed(id)
		m.RateLimit(allowed)

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.RemainingRequests(id)))
		if reset := limiter.ResetTime(id); !reset.IsZero() {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
		}

		if !allowed {
			logger.Debug("rate limit exceeded", "client", id)
			fail(c, domain.ErrRateLimited)
			return
		}
		c.Next()
	}
}

// clientIdentifier returns the first X-Forwarded-For address, else the
// connection's address, else "unknown".
func clientIdentifier(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return unknownClient
}

// TokenCookie is the cookie holding the caller's GitHub access token.
const TokenCookie = "github_token"

// githubToken reads the token from the cookie, falling back to a bearer
// Authorization header. An empty result is left for the service to reject.
func githubToken(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
