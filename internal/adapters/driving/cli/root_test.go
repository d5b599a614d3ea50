package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codelens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/codelens/internal/logger"
)

type result struct {
	out    string
	errOut string
}

// execute runs the root command with fresh flag state and the given
// environment in place of the process environment.
func execute(t *testing.T, env map[string]string, args ...string) (result, error) {
	t.Helper()
	return executeContext(t, context.Background(), env, args...)
}

func executeContext(t *testing.T, ctx context.Context, env map[string]string, args ...string) (result, error) {
	t.Helper()

	verbose, logJSON, configDir, noConfig = false, false, "", false
	serveAddr, serveWatchConfig = "", false
	parseJSON, parseMaxFiles = false, 0
	explainJSON = false
	browseMaxFiles = 0
	versionShort = false

	originalEnv := lookupEnv
	lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		lookupEnv = originalEnv
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
		logger.SetJSON(false)
	})

	err := rootCmd.ExecuteContext(ctx)
	return result{out: out.String(), errOut: errOut.String()}, err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "codelens", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "log-json", "config", "no-config"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "mcp", "parse", "explain", "browse", "settings", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestSetup_UsesConfigDir(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, nil, "--config", dir, "version")

	require.NoError(t, err)
	require.NotNil(t, fileStore)
	assert.Equal(t, filepath.Join(dir, "config.toml"), fileStore.Path())
	assert.Same(t, fileStore, configStore)
	assert.NotNil(t, settingsService)
}

func TestSetup_NoConfig(t *testing.T) {
	_, err := execute(t, nil, "--no-config", "version")

	require.NoError(t, err)
	assert.Nil(t, fileStore)
	assert.IsType(t, &memory.ConfigStore{}, configStore)
}

func TestSetup_InvalidConfigDir(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	_, err := execute(t, nil, "--config", filepath.Join(parent, "sub"), "version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening config")
}

func TestSetup_Verbose(t *testing.T) {
	res, err := execute(t, nil, "--no-config", "--verbose", "--log-json", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
	assert.Contains(t, res.out, "codelens version")
}
