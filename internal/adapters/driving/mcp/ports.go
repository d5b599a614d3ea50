package mcp

import (
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/core/ports/driving"
	"github.com/custodia-labs/codelens/internal/metrics"
)

// Ports aggregates the collaborators required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Explain generates and caches function explanations.
	Explain driving.ExplainService

	// Analyzer builds the call graph and feature map for analyze_files.
	Analyzer driving.FileAnalyzer

	// Parser extracts functions and dependencies from a single file.
	Parser driven.CodeParser

	// Limiter guards explain_function before it reaches the LLM providers.
	Limiter driven.RateLimiter

	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Explain == nil:
		return ErrMissingExplainService
	case p.Analyzer == nil:
		return ErrMissingAnalyzer
	case p.Parser == nil:
		return ErrMissingParser
	case p.Limiter == nil:
		return ErrMissingRateLimiter
	}
	return nil
}
