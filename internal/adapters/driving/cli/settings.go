package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change codelens settings.

Each value is resolved from its environment variable first, then the
config file, then the built-in default. "settings set" writes to the config
file, so an environment variable for the same key still takes precedence.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Store a setting in the config file",
	Long: `Store a setting in the config file.

Durations are given in milliseconds (e.g. rate_limit.window_ms) and lists
are comma separated (e.g. parser.extensions ".ts,.tsx").

When the value of an API key or client secret is omitted it is read from
standard input without echo, keeping it out of the shell history.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
	for _, key := range services.SettingKeys() {
		value, origin, err := settingsService.Lookup(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, displayValue(key, value, origin), origin)
	}
	return w.Flush()
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	value, origin, err := settingsService.Lookup(args[0])
	if err != nil {
		return err
	}
	if origin == "default" {
		cmd.Println("(default)")
		return nil
	}
	cmd.Printf("%s (%s)\n", displayValue(args[0], value, origin), origin)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		if !services.IsSecretKey(key) {
			return fmt.Errorf("%w: a value is required for %s", domain.ErrInvalidInput, key)
		}
		cmd.Printf("Enter %s: ", key)
		value = readSecret(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	if services.IsSecretKey(key) {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s set to %s\n", key, value)

	if _, origin, err := settingsService.Lookup(key); err == nil && origin == "env" {
		cmd.Printf("Note: an environment variable overrides %s\n", key)
	}
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if fileStore == nil {
		cmd.Println("(no config file: --no-config is set)")
		return nil
	}
	cmd.Println(fileStore.Path())
	return nil
}

func displayValue(key, value, origin string) string {
	switch {
	case origin == "default":
		return "(default)"
	case services.IsSecretKey(key):
		return maskAPIKey(value)
	default:
		return value
	}
}

// readSecret reads one line without echo when in is the terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line)
}

// maskAPIKey masks an API key for display, showing only first/last 4 chars.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
