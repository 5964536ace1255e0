package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"streamd/internal/probe"
	"streamd/pkg/logging"
)

// Run executes the daemon until the context is cancelled or a shutdown
// signal arrives. Every stream worker is stopped before it returns.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := a.config.Streamd

	// The streaming tool publishes to the co-located media server, so
	// nothing starts until that server accepts connections.
	logging.Info("App", "Waiting for media server on %s", cfg.ProbeAddr())
	if err := probe.WaitTCP(ctx, cfg.ProbeAddr()); err != nil {
		return fmt.Errorf("interrupted while waiting for media server: %w", err)
	}
	logging.Info("App", "Media server is up, streaming from %s as %s", cfg.MediaDir, cfg.Hostname)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.reconciler.Run(gctx)
	})
	g.Go(func() error {
		return a.server.Run(gctx)
	})
	if a.watcher != nil {
		g.Go(func() error {
			// The watcher only accelerates reconciliation. If it cannot
			// run, polling still picks up every change, so its failure
			// must not take the daemon down.
			if err := a.watcher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Warn("App", "Filesystem watcher stopped: %v, relying on polling alone", err)
			}
			return nil
		})
	}

	err := g.Wait()

	logging.Info("App", "Shutting down")
	stopped := a.supervisor.StopAll()
	logging.Info("App", "Stopped %d streams", stopped)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
