package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui"
	"github.com/custodia-labs/codelens/internal/adapters/driving/tui/messages"
)

// captureTUI replaces the terminal runner with one that records the app.
func captureTUI(t *testing.T, err error) **tui.App {
	t.Helper()
	var got *tui.App
	original := runTUI
	runTUI = func(app *tui.App) error {
		got = app
		return err
	}
	t.Cleanup(func() { runTUI = original })
	return &got
}

func TestBrowseCmd_RequiresExactlyOneArg(t *testing.T) {
	captureTUI(t, nil)

	_, err := execute(t, nil, "--no-config", "browse")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestBrowseCmd_Flags(t *testing.T) {
	assert.NotNil(t, browseCmd.Flags().Lookup("max-files"))
}

func TestBrowseCmd_OpensAnalysedWorkspace(t *testing.T) {
	got := captureTUI(t, nil)
	root := sampleProject(t)

	_, err := execute(t, nil, "--no-config", "browse", root)

	require.NoError(t, err)
	require.NotNil(t, *got)
	assert.Equal(t, messages.ViewFunctions, (*got).CurrentView())
}

func TestBrowseCmd_RunError(t *testing.T) {
	captureTUI(t, errors.New("no tty"))
	root := sampleProject(t)

	_, err := execute(t, nil, "--no-config", "browse", root)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tty")
}

func TestBrowseCmd_NotADirectory(t *testing.T) {
	got := captureTUI(t, nil)
	root := writeTree(t, map[string]string{"a.ts": "function a() {}\n"})

	_, err := execute(t, nil, "--no-config", "browse", root+"/a.ts")

	require.Error(t, err)
	assert.Nil(t, *got, "the browser is not started")
}
