// Package github implements driven.CodeHost on the GitHub REST API.
//
// Each Host is bound to one user's access token. Requests are authenticated
// with an oauth2.StaticTokenSource and throttled twice: proactively by a
// token bucket, and reactively by the X-RateLimit-* headers GitHub returns.
//
// # Trees
//
// GetTree resolves the recursive tree of the "main" branch and falls back to
// "master" when main does not exist.
//
// # Errors
//
// API failures surface as *APIError or *RateLimitError. Both unwrap to the
// matching domain sentinel (ErrNotFound, ErrAuthRequired, ErrUpstream or
// ErrRateLimited), so callers can classify them with errors.Is.
package github
