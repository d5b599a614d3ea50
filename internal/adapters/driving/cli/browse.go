package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/codelens/internal/adapters/driving/tui"
)

var browseMaxFiles int

// runTUI starts the terminal UI. Tests replace it to avoid taking over
// the terminal.
var runTUI = func(app *tui.App) error {
	return app.Run()
}

var browseCmd = &cobra.Command{
	Use:   "browse <dir>",
	Short: "Browse the functions of a local directory interactively",
	Long: `Analyse a local directory and open an interactive browser over its
functions. Filter by name with /, pick a feature with f, and open a
function to ask the configured LLM providers what it does (e) or where it
is used (u).`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVar(&browseMaxFiles, "max-files", 0, "maximum files to parse (0 = github.max_files)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	root := args[0]
	settings := settingsService.Get()

	files, analysis, err := analyzeDir(root, settings, browseMaxFiles)
	if err != nil {
		return err
	}

	a := newApp(settings)
	defer a.Close()

	app, err := tui.NewApp(&tui.Ports{Explain: a.explain}, tui.Workspace{
		Root:     filepath.Base(filepath.Clean(root)),
		Analysis: analysis,
		Files:    files,
	})
	if err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}

	return runTUI(app.WithContext(cmd.Context()))
}
