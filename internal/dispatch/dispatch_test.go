package dispatch

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-data/ecomload/internal/catalog"
	"github.com/meridian-data/ecomload/internal/factory"
	"github.com/meridian-data/ecomload/internal/pool"
	"github.com/meridian-data/ecomload/internal/stats"
)

// fakeClient counts calls and optionally fails everything.
type fakeClient struct {
	queries   int
	inserts   int
	mutations int
	err       error
}

func (f *fakeClient) Query(_ context.Context, _ *goqu.SelectDataset) (int, error) {
	f.queries++
	return 0, f.err
}

func (f *fakeClient) Mutate(_ context.Context, _ *catalog.Mutation) error {
	f.mutations++
	return f.err
}

func (f *fakeClient) BulkInsert(_ context.Context, _ string, _ []string, _ [][]any) error {
	f.inserts++
	return f.err
}

func (f *fakeClient) Ping(_ context.Context) error { return nil }
func (f *fakeClient) Close() error                 { return nil }

// immediatePacer never sleeps.
type immediatePacer struct{}

func (immediatePacer) Pause(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func newTestLoop(t *testing.T, client *fakeClient, cfg Config) (*Loop, *stats.Aggregator) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	p := pool.New(1000, rng)
	f, err := factory.New(p, rng, 42)
	require.NoError(t, err)
	cat, err := catalog.New(f, rng, catalog.DefaultConfig())
	require.NoError(t, err)

	agg := stats.New(zerolog.Nop())
	return New(cat, client, immediatePacer{}, agg, cfg, zerolog.Nop()), agg
}

func TestRunStopsAtMaxOps(t *testing.T) {
	client := &fakeClient{}
	loop, agg := newTestLoop(t, client, Config{MaxOps: 1000})

	require.NoError(t, loop.Run(context.Background()))

	s := agg.Snapshot()
	assert.Equal(t, int64(1000), s.Total.Count)
	assert.Zero(t, s.Total.Errors)
	assert.Equal(t, 1000, client.queries+client.inserts+client.mutations)

	// The configured 40/40/10/10 mix shows up in what actually ran.
	assert.InDelta(t, 0.4, float64(s.ByKind["SELECT"].Count)/1000, 0.05)
	assert.InDelta(t, 0.4, float64(s.ByKind["INSERT"].Count)/1000, 0.05)
	assert.InDelta(t, 0.1, float64(s.ByKind["UPDATE"].Count)/1000, 0.05)
	assert.InDelta(t, 0.1, float64(s.ByKind["DELETE"].Count)/1000, 0.05)
}

func TestRunSurvivesBackendErrors(t *testing.T) {
	client := &fakeClient{err: errors.New("connection reset")}
	loop, agg := newTestLoop(t, client, Config{MaxOps: 200})

	require.NoError(t, loop.Run(context.Background()))

	s := agg.Snapshot()
	assert.Equal(t, int64(200), s.Total.Count)
	assert.Equal(t, int64(200), s.Total.Errors)
	assert.Zero(t, s.Total.Success)
}

func TestRunReturnsNilOnCancel(t *testing.T) {
	client := &fakeClient{}
	loop, _ := newTestLoop(t, client, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}
}

func TestRunAlreadyCancelled(t *testing.T) {
	client := &fakeClient{}
	loop, agg := newTestLoop(t, client, Config{MaxOps: 100})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, loop.Run(ctx))
	assert.Zero(t, agg.Count())
}
