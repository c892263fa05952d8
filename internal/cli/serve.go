package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deciviz/deciviz/internal/api"
	"github.com/deciviz/deciviz/pkg/config"
	"github.com/deciviz/deciviz/pkg/pipeline"
)

// shutdownGrace is how long in-flight requests get to finish on shutdown.
const shutdownGrace = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	configPath string // TOML config file path (defaults apply if empty)
	addr       string // listen address override
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the deciviz HTTP API server",
		Long: `Run the deciviz HTTP API server.

The server exposes validate, repair, layout, and export operations under
/v1, plus graph CRUD when a document store is configured. Cache and
store backends are selected via a TOML config file.

Examples:
  deciviz serve
  deciviz serve --config deciviz.toml
  deciviz serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file (defaults apply if empty)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe builds the cache, store, and runner from config and serves
// HTTP until the process receives SIGINT or SIGTERM.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	cch, err := cfg.BuildCache(ctx)
	if err != nil {
		return fmt.Errorf("build cache: %w", err)
	}
	st, err := cfg.BuildStore(ctx)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}
	defer func() {
		if st != nil {
			if cerr := st.Close(ctx); cerr != nil {
				logger.Warnf("Close store: %v", cerr)
			}
		}
	}()

	runner := pipeline.NewRunner(cch, nil, logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewServer(runner, st, logger).Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", cfg.Server.Addr, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
