package tui

import "errors"

// ErrMissingExplainService is returned when the explain service is not provided.
var ErrMissingExplainService = errors.New("tui: explain service is required")

// ErrMissingAnalysis is returned when no analysis is provided.
var ErrMissingAnalysis = errors.New("tui: analysis is required")
