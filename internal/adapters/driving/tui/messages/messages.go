// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/codelens/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewFunctions lists extracted functions.
	ViewFunctions ViewType = iota
	// ViewFeatures lists features for filtering the function list.
	ViewFeatures
	// ViewDetail shows one function with its explanation.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewFunctions:
		return "functions"
	case ViewFeatures:
		return "features"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// FunctionSelected opens the detail view for a function.
type FunctionSelected struct {
	Function domain.CodeFunction
}

// FeatureSelected narrows the function list to one feature.
// An empty Feature shows every function.
type FeatureSelected struct {
	Feature string
}

// ExplanationLoaded carries an explanation back to the detail view.
type ExplanationLoaded struct {
	FunctionID  string
	Explanation *domain.Explanation
	Err         error
}

// UsageLoaded carries a usage explanation back to the detail view.
type UsageLoaded struct {
	FunctionID string
	Usage      *domain.UsageExplanation
	Err        error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
