// Package mcp provides an MCP (Model Context Protocol) server adapter for codelens.
// It lets AI assistants extract functions from source text, analyse a set of
// files and request cached explanations.
package mcp

import "errors"

var (
	// ErrMissingExplainService is returned when the explain service is not provided.
	ErrMissingExplainService = errors.New("mcp: explain service is required")

	// ErrMissingAnalyzer is returned when the file analyzer is not provided.
	ErrMissingAnalyzer = errors.New("mcp: file analyzer is required")

	// ErrMissingParser is returned when the code parser is not provided.
	ErrMissingParser = errors.New("mcp: code parser is required")

	// ErrMissingRateLimiter is returned when the rate limiter is not provided.
	ErrMissingRateLimiter = errors.New("mcp: rate limiter is required")
)
