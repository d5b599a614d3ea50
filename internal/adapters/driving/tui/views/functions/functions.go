// Package functions provides the function list view for the TUI.
package functions

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/codelens/internal/core/domain"
)

// View lists the analysed functions with a name filter.
type View struct {
	styles  *styles.Styles
	list    *list.FunctionList
	filter  *input.Filter
	title   string
	feature string
	width   int
	height  int
}

// NewView creates a function list view titled with the analysed root.
func NewView(s *styles.Styles, title string, functions []domain.CodeFunction) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	l := list.NewFunctionList(s)
	l.SetFunctions(functions)

	return &View{
		styles: s,
		list:   l,
		filter: input.NewFilter(s),
		title:  title,
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the function list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.filter.Focused() {
		return v.updateFilter(key)
	}

	switch key.String() {
	case "/":
		return v, v.filter.Focus()
	case "enter":
		fn := v.list.SelectedFunction()
		if fn == nil {
			return v, nil
		}
		selected := *fn
		return v, func() tea.Msg { return messages.FunctionSelected{Function: selected} }
	case "f":
		return v, changeView(messages.ViewFeatures)
	case "?":
		return v, changeView(messages.ViewHelp)
	case "esc":
		if v.feature != "" || v.filter.Value() != "" {
			v.SetFeature("", nil)
			v.filter.Reset()
			v.list.SetQuery("")
		}
		return v, nil
	case "q":
		return v, tea.Quit
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(key)
	return v, cmd
}

func (v *View) updateFilter(key tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only keys that leave the filter are handled
	switch key.Type {
	case tea.KeyEnter:
		v.filter.Blur()
		return v, nil
	case tea.KeyEsc:
		v.filter.Blur()
		v.filter.Reset()
		v.list.SetQuery("")
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(key)
	v.list.SetQuery(v.filter.Value())
	return v, cmd
}

// View renders the function list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("codelens"))
	b.WriteString(v.styles.Muted.Render("  " + v.title))
	b.WriteString("\n")
	if v.feature != "" {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Feature: %s", v.feature)))
		b.WriteString("\n")
	}
	if v.filter.Focused() || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.list.View())
	return b.String()
}

// SetFeature restricts the list to a feature's files. An empty name
// shows every function.
func (v *View) SetFeature(name string, files []string) {
	v.feature = name
	if name == "" {
		v.list.SetFiles(nil)
		return
	}
	v.list.SetFiles(files)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width)
	// Title, feature, filter and spacing.
	v.list.SetDimensions(width, max(height-6, 2))
}

// Feature returns the active feature filter.
func (v *View) Feature() string {
	return v.feature
}

// FilterFocused reports whether keystrokes go to the filter input.
func (v *View) FilterFocused() bool {
	return v.filter.Focused()
}

// Counts returns the number of visible and total functions.
func (v *View) Counts() (shown, total int) {
	return v.list.Count(), v.list.Total()
}

// List exposes the underlying list component.
func (v *View) List() *list.FunctionList {
	return v.list
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}
