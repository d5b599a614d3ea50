// Package detail provides the function detail view for the TUI: the
// source snippet plus LLM explanations fetched on demand.
package detail

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/ports/driving"
	"github.com/custodia-labs/codelens/internal/parsers/lexical"
)

// Limits for the code sent to the LLM and shown on screen.
const (
	SnippetLines      = 40
	maxCallers        = 5
	maxCallsPerCaller = 3
	reservedLines     = 4
	minContentWidth   = 20
)

// View shows one function.
type View struct {
	styles  *styles.Styles
	explain driving.ExplainService
	ctx     context.Context
	files   map[string]string
	graph   domain.DependencyGraph

	fn          *domain.CodeFunction
	code        string
	explanation *domain.Explanation
	usage       *domain.UsageExplanation
	loading     bool
	err         error

	lines        []string
	scrollOffset int
	width        int
	height       int
}

// NewView creates a detail view over the analysed files.
func NewView(
	s *styles.Styles, explain driving.ExplainService,
	files map[string]string, graph domain.DependencyGraph,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		explain: explain,
		ctx:     context.Background(),
		files:   files,
		graph:   graph,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for LLM calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetFunction shows fn and clears any previous explanation.
func (v *View) SetFunction(fn domain.CodeFunction) {
	v.fn = &fn
	v.code = lexical.Snippet(v.files[fn.File], fn.Line, SnippetLines)
	v.explanation = nil
	v.usage = nil
	v.loading = false
	v.err = nil
	v.scrollOffset = 0
	v.layout()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.ExplanationLoaded:
		if v.fn == nil || msg.FunctionID != v.fn.ID {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.explanation = msg.Explanation
		}
		v.layout()

	case messages.UsageLoaded:
		if v.fn == nil || msg.FunctionID != v.fn.ID {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.usage = msg.Usage
		}
		v.layout()
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "e":
		return v, v.requestExplanation()
	case "u":
		return v, v.requestUsage()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewFunctions}
		}
	}
	return v, nil
}

func (v *View) requestExplanation() tea.Cmd {
	if v.fn == nil || v.loading {
		return nil
	}
	v.loading = true
	v.err = nil
	v.layout()

	ctx, svc, id := v.ctx, v.explain, v.fn.ID
	req := domain.ExplanationRequest{
		FunctionName: v.fn.Name,
		Code:         v.code,
		Context:      "File: " + v.fn.File,
	}
	return func() tea.Msg {
		exp, err := svc.Explain(ctx, req)
		return messages.ExplanationLoaded{FunctionID: id, Explanation: exp, Err: err}
	}
}

func (v *View) requestUsage() tea.Cmd {
	if v.fn == nil || v.loading {
		return nil
	}
	v.loading = true
	v.err = nil
	v.layout()

	ctx, svc, id := v.ctx, v.explain, v.fn.ID
	req := UsageRequest(*v.fn, v.files, v.graph)
	return func() tea.Msg {
		usage, err := svc.ExplainUsage(ctx, req)
		return messages.UsageLoaded{FunctionID: id, Usage: usage, Err: err}
	}
}

// UsageRequest describes where fn is called from, using the call edges of
// graph and the matching lines of each calling file.
func UsageRequest(fn domain.CodeFunction, files map[string]string, graph domain.DependencyGraph) domain.UsageRequest {
	var callers []string
	for _, e := range graph.Edges {
		if e.Target == fn.ID && e.Source != fn.File {
			callers = append(callers, e.Source)
		}
	}
	sort.Strings(callers)

	usage := fmt.Sprintf("%s is declared in %s.", fn.Name, fn.File)
	if len(callers) == 0 {
		usage += " No other analysed file calls it."
	} else {
		usage += " It is called from: " + strings.Join(callers, ", ")
	}

	var snippets []string
	for _, caller := range callers[:min(len(callers), maxCallers)] {
		found := 0
		for i, line := range strings.Split(files[caller], "\n") {
			if !strings.Contains(line, fn.Name+"(") {
				continue
			}
			snippets = append(snippets, fmt.Sprintf("%s:%d: %s", caller, i+1, strings.TrimSpace(line)))
			found++
			if found == maxCallsPerCaller {
				break
			}
		}
	}

	return domain.UsageRequest{
		FunctionName: fn.Name,
		UsageContext: usage,
		CodeSnippets: strings.Join(snippets, "\n"),
	}
}

// layout rebuilds the wrapped content lines.
func (v *View) layout() {
	v.lines = nil
	if v.fn == nil {
		return
	}

	var raw []string
	raw = append(raw, v.styles.Muted.Render(fmt.Sprintf("%s:%d  %s", v.fn.File, v.fn.Line, v.fn.Kind)), "")
	for _, line := range strings.Split(v.code, "\n") {
		raw = append(raw, v.styles.Code.Render(line))
	}

	if v.explanation != nil {
		raw = append(raw, "", v.styles.Subtitle.Render("What it does")+v.source(v.explanation.Provider, v.explanation.Cached))
		raw = append(raw, v.wrap(v.explanation.How)...)
	}
	if v.usage != nil {
		raw = append(raw, "", v.styles.Subtitle.Render("Where it is used")+v.source(v.usage.Provider, v.usage.Cached))
		raw = append(raw, v.wrap(v.usage.Where)...)
	}
	v.lines = raw
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

func (v *View) source(provider string, cached bool) string {
	parts := make([]string, 0, 2)
	if provider != "" {
		parts = append(parts, provider)
	}
	if cached {
		parts = append(parts, "cached")
	}
	if len(parts) == 0 {
		return ""
	}
	return v.styles.Muted.Render("  (" + strings.Join(parts, ", ") + ")")
}

// wrap splits text into lines no wider than the view.
func (v *View) wrap(text string) []string {
	width := max(v.width-4, minContentWidth)
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for len(line) > width {
			cut := strings.LastIndex(line[:width], " ")
			if cut <= 0 {
				cut = width
			}
			out = append(out, line[:cut])
			line = strings.TrimLeft(line[cut:], " ")
		}
		out = append(out, line)
	}
	return out
}

func (v *View) visibleLines() int {
	return max(v.height-reservedLines, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the detail view.
func (v *View) View() string {
	if v.fn == nil {
		return v.styles.Muted.Render("No function selected")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.fn.Name))
	b.WriteString("  ")
	b.WriteString(v.styles.Kind(v.fn.Kind).Render(v.fn.Signature))
	b.WriteString("\n")

	end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
	for _, line := range v.lines[v.scrollOffset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.styles.Warning.Render("Asking the LLM..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	default:
		b.WriteString(v.styles.Help.Render("[e] explain  [u] usage  [↑/↓/PgUp/PgDn] scroll  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.layout()
}

// Function returns the function being shown.
func (v *View) Function() *domain.CodeFunction {
	return v.fn
}

// Loading reports whether an LLM call is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Explanation returns the loaded explanation, if any.
func (v *View) Explanation() *domain.Explanation {
	return v.explanation
}

// Usage returns the loaded usage explanation, if any.
func (v *View) Usage() *domain.UsageExplanation {
	return v.usage
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Code returns the snippet shown and sent for explanation.
func (v *View) Code() string {
	return v.code
}
