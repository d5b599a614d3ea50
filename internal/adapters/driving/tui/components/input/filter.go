// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/styles"
)

// Filter wraps a bubbles textinput used to narrow the function list by name.
type Filter struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewFilter creates a new, unfocused filter input.
func NewFilter(s *styles.Styles) *Filter {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "function name..."
	ti.CharLimit = 128
	ti.Width = 40

	return &Filter{
		textinput: ti,
		styles:    s,
		width:     40,
	}
}

// Update handles input messages.
func (f *Filter) Update(msg tea.Msg) (*Filter, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the filter input.
func (f *Filter) View() string {
	label := f.styles.Subtitle.Render("Filter: ")
	field := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (f *Filter) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Filter) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Filter) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Filter) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Filter) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Filter) SetWidth(width int) {
	f.width = width
	f.textinput.Width = max(width-14, 20)
}

// Reset clears the input.
func (f *Filter) Reset() {
	f.textinput.Reset()
}
