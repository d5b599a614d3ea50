package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/views/features"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/views/functions"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	functionsView *functions.View
	featuresView  *features.View
	detailView    *detail.View
	statusBar     *status.Bar

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application over an analysed workspace.
func NewApp(ports *Ports, ws Workspace) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if ws.Analysis == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingAnalysis)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		functionsView: functions.NewView(s, ws.Root, ws.Analysis.Functions),
		featuresView:  features.NewView(s, ws.Analysis.Features),
		detailView:    detail.NewView(s, ports.Explain, ws.Files, ws.Analysis.Graph),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewFunctions,
	}
	a.syncStatus()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.detailView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("codelens")
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewFunctions:
			a.functionsView, cmd = a.functionsView.Update(msg)
		case messages.ViewFeatures:
			a.featuresView, cmd = a.featuresView.Update(msg)
		case messages.ViewDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" || msg.String() == "?" {
				a.currentView = messages.ViewFunctions
			}
		}
		a.syncStatus()
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		a.syncStatus()
		return a, nil

	case messages.FunctionSelected:
		a.detailView.SetFunction(msg.Function)
		a.currentView = messages.ViewDetail
		a.err = nil
		a.syncStatus()
		return a, nil

	case messages.FeatureSelected:
		a.functionsView.SetFeature(msg.Feature, a.featuresView.Files(msg.Feature))
		a.currentView = messages.ViewFunctions
		a.syncStatus()
		return a, nil

	case messages.ExplanationLoaded, messages.UsageLoaded:
		a.detailView, cmd = a.detailView.Update(msg)
		a.err = a.detailView.Err()
		a.syncStatus()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.syncStatus()
		return a, nil
	}

	return a, nil
}

// syncStatus derives the status bar from the active view.
func (a *App) syncStatus() {
	a.statusBar.Clear()
	a.statusBar.SetCounts(a.functionsView.Counts())

	switch {
	case a.currentView == messages.ViewDetail && a.detailView.Loading():
		a.statusBar.SetState(status.StateExplaining)
	case a.err != nil:
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(a.err.Error())
	case a.currentView == messages.ViewDetail:
		a.statusBar.SetState(status.StateDetail)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewFeatures:
		body = a.featuresView.View()
	case messages.ViewDetail:
		body = a.detailView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.functionsView.View()
	}

	gap := max(a.height-strings.Count(body, "\n")-2, 0)
	return body + strings.Repeat("\n", gap+1) + a.statusBar.View()
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and resizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	body := max(height-1, 1)
	a.functionsView.SetDimensions(width, body)
	a.featuresView.SetDimensions(width, body)
	a.detailView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}
