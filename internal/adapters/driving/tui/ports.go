// Package tui provides an interactive terminal browser for an analysed
// codebase. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI calls.
type Ports struct {
	// Explain generates function and usage explanations.
	Explain driving.ExplainService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Explain == nil {
		return ErrMissingExplainService
	}
	return nil
}

// Workspace is the analysed code the TUI browses.
type Workspace struct {
	// Root names the analysed directory or repository in the title.
	Root string

	// Analysis holds the functions, graph and features.
	Analysis *domain.RepositoryAnalysis

	// Files maps each analysed path to its content.
	Files map[string]string
}
