// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/codelens/internal/core/domain"
)

// FunctionList displays functions in a navigable list. Filtering keeps the
// full set and narrows what is shown.
type FunctionList struct {
	all      []domain.CodeFunction
	visible  []domain.CodeFunction
	query    string
	files    map[string]struct{} // nil = no file filter
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewFunctionList creates a new function list component.
func NewFunctionList(s *styles.Styles) *FunctionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &FunctionList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the function list.
func (l *FunctionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *FunctionList) Update(msg tea.Msg) (*FunctionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			l.selected = max(len(l.visible)-1, 0)
		}
	}
	return l, nil
}

// View renders the function list.
func (l *FunctionList) View() string {
	if len(l.visible) == 0 {
		if len(l.all) == 0 {
			return l.styles.Muted.Render("No functions found")
		}
		return l.styles.Muted.Render("No functions match the filter")
	}

	// Each function takes two lines.
	visibleCount := max((l.height-2)/2, 1)

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(l.visible))

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderFunction(i, &l.visible[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *FunctionList) renderFunction(index int, fn *domain.CodeFunction) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	badge := l.styles.Kind(fn.Kind).Render(fmt.Sprintf("%-9s", fn.Kind))
	name := fn.Name
	if index == l.selected {
		name = l.styles.Selected.Render(name)
	} else {
		name = l.styles.Normal.Render(name)
	}
	location := l.styles.Muted.Render(fmt.Sprintf("    %s:%d", fn.File, fn.Line))

	signature := fn.Signature
	maxLen := max(l.width-6, 20)
	if len(signature) > maxLen {
		signature = signature[:maxLen-3] + "..."
	}

	return indicator + badge + " " + name + "\n" + location + "  " + l.styles.Muted.Render(signature)
}

// SetFunctions replaces the full set and clears the selection.
func (l *FunctionList) SetFunctions(functions []domain.CodeFunction) {
	l.all = functions
	l.apply()
}

// SetQuery narrows the list to functions whose name contains query,
// ignoring case.
func (l *FunctionList) SetQuery(query string) {
	l.query = strings.ToLower(strings.TrimSpace(query))
	l.apply()
}

// SetFiles narrows the list to functions declared in files. Nil clears
// the restriction.
func (l *FunctionList) SetFiles(files []string) {
	if files == nil {
		l.files = nil
	} else {
		l.files = make(map[string]struct{}, len(files))
		for _, f := range files {
			l.files[f] = struct{}{}
		}
	}
	l.apply()
}

func (l *FunctionList) apply() {
	l.visible = make([]domain.CodeFunction, 0, len(l.all))
	for _, fn := range l.all {
		if l.query != "" && !strings.Contains(strings.ToLower(fn.Name), l.query) {
			continue
		}
		if l.files != nil {
			if _, ok := l.files[fn.File]; !ok {
				continue
			}
		}
		l.visible = append(l.visible, fn)
	}
	l.selected = 0
}

// Visible returns the functions currently shown.
func (l *FunctionList) Visible() []domain.CodeFunction {
	return l.visible
}

// Selected returns the index of the selected function.
func (l *FunctionList) Selected() int {
	return l.selected
}

// SelectedFunction returns the selected function, or nil if none.
func (l *FunctionList) SelectedFunction() *domain.CodeFunction {
	if l.selected < 0 || l.selected >= len(l.visible) {
		return nil
	}
	return &l.visible[l.selected]
}

// MoveUp moves selection up.
func (l *FunctionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *FunctionList) MoveDown() {
	if l.selected < len(l.visible)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *FunctionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of visible functions.
func (l *FunctionList) Count() int {
	return len(l.visible)
}

// Total returns the number of functions before filtering.
func (l *FunctionList) Total() int {
	return len(l.all)
}
