// Package features provides the feature picker view for the TUI.
package features

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/codelens/internal/core/domain"
)

// View lists features; the first entry clears the feature filter.
type View struct {
	styles   *styles.Styles
	features []domain.FeatureMapping
	selected int
	width    int
	height   int
}

// NewView creates a feature picker.
func NewView(s *styles.Styles, features []domain.FeatureMapping) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		features: features,
		width:    80,
		height:   24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the feature picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.features) {
			v.selected++
		}
	case "enter":
		name := ""
		if v.selected > 0 {
			name = v.features[v.selected-1].Feature
		}
		return v, func() tea.Msg { return messages.FeatureSelected{Feature: name} }
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewFunctions} }
	}
	return v, nil
}

// View renders the feature list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Features"))
	b.WriteString("\n\n")

	b.WriteString(v.renderItem(0, "All functions", ""))
	for i, f := range v.features {
		detail := fmt.Sprintf("%d files, %d functions", len(f.Files), len(f.Functions))
		b.WriteString(v.renderItem(i+1, f.Feature, detail))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] filter  [esc] back"))
	return b.String()
}

func (v *View) renderItem(index int, label, detail string) string {
	cursor := "  "
	style := v.styles.Normal
	if index == v.selected {
		cursor = "> "
		style = v.styles.Selected
	}
	line := cursor + style.Render(label)
	if detail != "" {
		line += "  " + v.styles.Muted.Render(detail)
	}
	return line + "\n"
}

// Files returns the files of a feature, or nil if it is unknown.
func (v *View) Files(name string) []string {
	for _, f := range v.features {
		if f.Feature == name {
			return f.Files
		}
	}
	return nil
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the currently selected index; 0 is "All functions".
func (v *View) Selected() int {
	return v.selected
}
