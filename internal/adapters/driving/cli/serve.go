package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/codelens/internal/adapters/driven/config/file"
	"github.com/custodia-labs/codelens/internal/adapters/driving/api"
	"github.com/custodia-labs/codelens/internal/logger"
)

var (
	serveAddr        string
	serveWatchConfig bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API used by the codelens web client.

The listen address comes from --addr, then server.addr (CODELENS_ADDR),
then ":8080". With --watch-config the config file is watched and
rate-limit settings are re-applied when it changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveWatchConfig, "watch-config", false, "reload rate-limit settings when the config file changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveWatchConfig && fileStore == nil {
		return errors.New("--watch-config requires a config file (remove --no-config)")
	}

	settings := settingsService.Get()
	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	a := newApp(settings)
	defer a.Close()

	server, err := api.NewServer(api.Config{
		Addr:       addr,
		Explain:    a.explain,
		Repository: a.repos,
		Limiter:    a.limiter,
		Metrics:    a.metrics,
		Gatherer:   a.registry,
		LoginURL:   a.loginURL,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	if serveWatchConfig {
		watcher, err := file.NewWatcher(fileStore, func() {
			a.applyRateLimit(settingsService.Get())
		}, file.DefaultDebounce)
		if err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		defer watcher.Close()
		g.Go(func() error { return watcher.Run(ctx) })
		logger.Info("watching config file", "path", fileStore.Path())
	}
	g.Go(func() error { return server.Run(ctx) })

	logger.Info("explanation providers", "chain", a.chain.Names())
	return g.Wait()
}
