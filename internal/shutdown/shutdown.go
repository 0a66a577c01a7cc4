// Package shutdown turns process signals into context cancellation so the
// dispatch and seeder loops stop cleanly mid-run.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

// Context derives a context cancelled on SIGINT, SIGTERM or SIGQUIT. The
// first signal requests a graceful stop; a second signal exits immediately
// for the case where a long backend call refuses to return.
func Context(parent context.Context, logger zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case sig := <-quit:
			logger.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
			signal.Stop(quit)
			return
		}

		sig := <-quit
		logger.Warn().
			Str("signal", sig.String()).
			Msg("Second signal received, exiting immediately")
		os.Exit(1)
	}()

	return ctx, cancel
}
