package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/timedash/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the web dashboard server.

The dataset loads in the background; until it arrives the cards show
placeholders and the timeframe buttons still respond.

Examples:
  timedash serve              # Start on TIMEDASH_PORT (default 8080)
  timedash serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides TIMEDASH_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewAppContext(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}
	return serveDashboard(ctx, app, port)
}

// serveDashboard runs the HTTP server and the initial load side by side
// until ctx is cancelled or the server fails. A failed load is not fatal.
func serveDashboard(ctx context.Context, app *AppContext, port int) error {
	server := web.NewServer(app.Dashboard, port, logger, app.MetricsHandler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		if err := app.Dashboard.Load(gctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("dataset unavailable, dashboard shows placeholders", "source", app.Source.Name(), "err", err)
		}
		return nil
	})

	return g.Wait()
}
