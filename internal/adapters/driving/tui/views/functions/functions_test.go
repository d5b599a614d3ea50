package functions

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/codelens/internal/core/domain"
)

func sampleFunctions() []domain.CodeFunction {
	return []domain.CodeFunction{
		{ID: "src/math.ts:add", Name: "add", File: "src/math.ts", Line: 1, Kind: domain.KindFunction, Signature: "function add(a, b)"},
		{ID: "src/pages/Home.tsx:Home", Name: "Home", File: "src/pages/Home.tsx", Line: 3, Kind: domain.KindComponent, Signature: "function Home()"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, "acme/shop", sampleFunctions())

	shown, total := v.Counts()
	assert.Equal(t, 2, shown)
	assert.Equal(t, 2, total)
	assert.Contains(t, v.View(), "acme/shop")
	assert.False(t, v.FilterFocused())
}

func TestView_EnterSelectsFunction(t *testing.T) {
	v := NewView(nil, "root", sampleFunctions())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.FunctionSelected)
	require.True(t, ok)
	assert.Equal(t, "Home", msg.Function.Name)
}

func TestView_EnterOnEmptyList(t *testing.T) {
	v := NewView(nil, "root", nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView_ViewChanges(t *testing.T) {
	tests := []struct {
		key  string
		want messages.ViewType
	}{
		{"f", messages.ViewFeatures},
		{"?", messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := NewView(nil, "root", sampleFunctions())
			_, cmd := v.Update(runes(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_Filter(t *testing.T) {
	v := NewView(nil, "root", sampleFunctions())

	v, _ = v.Update(runes("/"))
	require.True(t, v.FilterFocused())

	v, _ = v.Update(runes("h"))
	shown, total := v.Counts()
	assert.Equal(t, 1, shown)
	assert.Equal(t, 2, total)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.FilterFocused())
	shown, _ = v.Counts()
	assert.Equal(t, 1, shown, "enter keeps the query")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	shown, _ = v.Counts()
	assert.Equal(t, 2, shown, "esc clears the query")
}

func TestView_FilterEscResets(t *testing.T) {
	v := NewView(nil, "root", sampleFunctions())

	v, _ = v.Update(runes("/"))
	v, _ = v.Update(runes("f"))
	v, _ = v.Update(runes("z"))
	shown, _ := v.Counts()
	assert.Equal(t, 0, shown)

	assert.True(t, v.FilterFocused(), "f is typed into the filter")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.FilterFocused())
	shown, _ = v.Counts()
	assert.Equal(t, 2, shown)
}

func TestView_SetFeature(t *testing.T) {
	v := NewView(nil, "root", sampleFunctions())

	v.SetFeature("pages", []string{"src/pages/Home.tsx"})
	assert.Equal(t, "pages", v.Feature())
	shown, _ := v.Counts()
	assert.Equal(t, 1, shown)
	assert.Contains(t, v.View(), "Feature: pages")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, v.Feature())
	shown, _ = v.Counts()
	assert.Equal(t, 2, shown)
}

func TestView_Quit(t *testing.T) {
	v := NewView(nil, "root", sampleFunctions())

	_, cmd := v.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_IgnoresNonKeyMessages(t *testing.T) {
	v := NewView(nil, "root", sampleFunctions())

	_, cmd := v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Nil(t, cmd)
}
