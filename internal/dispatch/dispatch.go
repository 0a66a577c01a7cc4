// Package dispatch runs the main load loop: draw an operation from the
// catalog, execute it against the backend, record the outcome, pace, repeat.
// Backend failures are counted and logged but never stop the loop; only
// context cancellation or the operation cap ends a run.
package dispatch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/meridian-data/ecomload/internal/backend"
	"github.com/meridian-data/ecomload/internal/catalog"
	"github.com/meridian-data/ecomload/internal/governor"
	"github.com/meridian-data/ecomload/internal/stats"
)

// Config bounds a run. MaxOps of zero means run until cancelled.
// SnapshotEvery is the progress-summary interval in operations; zero
// disables periodic summaries.
type Config struct {
	MaxOps        int64
	SnapshotEvery int64
}

// Loop wires the catalog, backend, pacer and aggregator together.
type Loop struct {
	catalog *catalog.Catalog
	client  backend.Client
	pacer   governor.Pacer
	stats   *stats.Aggregator
	cfg     Config
	log     zerolog.Logger
	now     func() time.Time
}

func New(cat *catalog.Catalog, client backend.Client, pacer governor.Pacer, agg *stats.Aggregator, cfg Config, log zerolog.Logger) *Loop {
	return &Loop{
		catalog: cat,
		client:  client,
		pacer:   pacer,
		stats:   agg,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// Run executes until the context is cancelled or MaxOps operations have
// completed. Cancellation is a clean stop and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	var done int64
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		op := l.catalog.Next()
		start := l.now()
		err := l.execute(ctx, op)
		latency := l.now().Sub(start)

		l.stats.Record(string(op.Kind), op.Name, err == nil, latency)
		l.logOutcome(op, latency, err)

		// A failure caused by shutdown is not a real backend error.
		if err != nil && ctx.Err() != nil {
			return nil
		}

		done++
		if l.cfg.SnapshotEvery > 0 && done%l.cfg.SnapshotEvery == 0 {
			l.stats.LogSummary()
		}
		if l.cfg.MaxOps > 0 && done >= l.cfg.MaxOps {
			l.log.Info().Int64("operations", done).Msg("operation cap reached")
			return nil
		}

		if err := l.pacer.Pause(ctx, latency); err != nil {
			return nil
		}
	}
}

func (l *Loop) execute(ctx context.Context, op *catalog.Operation) error {
	switch op.Kind {
	case catalog.KindSelect:
		_, err := l.client.Query(ctx, op.Query)
		return err
	case catalog.KindInsert:
		return l.client.BulkInsert(ctx, op.Insert.Table, op.Insert.Columns, op.Insert.Rows)
	default:
		return l.client.Mutate(ctx, op.Mutation)
	}
}

func (l *Loop) logOutcome(op *catalog.Operation, latency time.Duration, err error) {
	if err != nil {
		l.log.Warn().
			Err(err).
			Str("kind", string(op.Kind)).
			Str("operation", op.Name).
			Dur("duration", latency).
			Msg("operation failed")
		return
	}
	l.log.Debug().
		Str("kind", string(op.Kind)).
		Str("operation", op.Name).
		Dur("duration", latency).
		Msg("operation complete")
}
