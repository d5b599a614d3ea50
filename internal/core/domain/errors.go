package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// Driving adapters translate them into transport-specific responses.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthRequired indicates the caller has no session or access token.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRateLimited indicates the request quota was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrConfig indicates a required API key, secret or setting is absent.
	ErrConfig = errors.New("configuration error")

	// ErrUpstream indicates a third-party API returned a non-success status,
	// a malformed payload, or could not be reached.
	ErrUpstream = errors.New("upstream error")
)

// maxErrorBody bounds how much of an upstream response body is kept for diagnostics.
const maxErrorBody = 200

// UpstreamError describes a failed call to an external service.
// It matches ErrUpstream with errors.Is.
type UpstreamError struct {
	// Service names the collaborator, e.g. "github" or a provider name.
	Service string

	// StatusCode is the HTTP status returned, or 0 for transport failures.
	StatusCode int

	// Message is the (truncated) error detail reported by the service.
	Message string

	// Err is the underlying transport or decode error, if any.
	Err error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

// Is reports whether target is ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Unwrap returns the underlying error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError builds an UpstreamError, truncating message to a
// loggable length.
func NewUpstreamError(service string, statusCode int, message string, err error) *UpstreamError {
	return &UpstreamError{
		Service:    service,
		StatusCode: statusCode,
		Message:    Truncate(message, maxErrorBody),
		Err:        err,
	}
}

// Truncate shortens s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// ErrMissingFields returns an ErrInvalidInput naming the required fields.
func ErrMissingFields(fields ...string) error {
	return fmt.Errorf("%w: missing required fields: %s", ErrInvalidInput, strings.Join(fields, " and "))
}
