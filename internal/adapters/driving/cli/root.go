// Package cli implements the codelens command line. Commands share the
// settings service configured by the root command's persistent flags.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/codelens/internal/adapters/driven/config/file"
	"github.com/custodia-labs/codelens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/codelens/internal/core/ports/driven"
	"github.com/custodia-labs/codelens/internal/core/ports/driving"
	"github.com/custodia-labs/codelens/internal/core/services"
	"github.com/custodia-labs/codelens/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	logJSON   bool
	configDir string
	noConfig  bool
)

// Services shared by commands, configured in PersistentPreRunE.
var (
	configStore     driven.ConfigStore
	fileStore       *file.ConfigStore
	settingsService driving.SettingsService

	// lookupEnv resolves environment overrides; tests replace it.
	lookupEnv = os.LookupEnv
)

var rootCmd = &cobra.Command{
	Use:   "codelens",
	Short: "Browse GitHub repositories and explain their code",
	Long: `codelens lists a GitHub user's repositories, extracts JavaScript and
TypeScript functions from their files and explains them with an LLM.

Run "codelens serve" to start the HTTP API, or "codelens mcp serve" to
expose the same tools to MCP clients.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&logJSON, "log-json", false, "write logs as JSON")
	flags.StringVar(&configDir, "config", "", "config directory (default ~/.codelens)")
	flags.BoolVar(&noConfig, "no-config", false, "ignore the config file and use environment and defaults only")
}

// Execute runs the CLI. v is the build version; empty keeps "dev".
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetJSON(logJSON)
	logger.SetVerbose(verbose)

	if noConfig {
		fileStore = nil
		configStore = memory.NewConfigStore(nil)
	} else {
		store, err := file.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		fileStore = store
		configStore = store
	}

	settingsService = services.NewSettingsService(configStore, lookupEnv)
	return nil
}
