package seeder

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
)

type insertCall struct {
	table string
	rows  int
}

type fakeClient struct {
	calls []insertCall
	err   error
}

func (f *fakeClient) Query(_ context.Context, _ *goqu.SelectDataset) (int, error) { return 0, nil }
func (f *fakeClient) Mutate(_ context.Context, _ *catalog.Mutation) error         { return nil }
func (f *fakeClient) Ping(_ context.Context) error                                { return nil }
func (f *fakeClient) Close() error                                                { return nil }

func (f *fakeClient) BulkInsert(_ context.Context, table string, _ []string, rows [][]any) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, insertCall{table: table, rows: len(rows)})
	return nil
}

func newTestSeeder(t *testing.T, client *fakeClient, cfg Config) *Seeder {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	p := pool.New(1000, rng)
	f, err := factory.New(p, rng, 42)
	require.NoError(t, err)
	return New(f, client, rng, cfg, zerolog.Nop())
}

func TestPrime(t *testing.T) {
	client := &fakeClient{}
	s := newTestSeeder(t, client, DefaultConfig())

	require.NoError(t, s.Prime(context.Background()))

	require.Len(t, client.calls, 2)
	assert.Equal(t, insertCall{table: "customers", rows: 10}, client.calls[0])
	assert.Equal(t, insertCall{table: "page_views", rows: 20}, client.calls[1])
}

func TestPrimePropagatesError(t *testing.T) {
	client := &fakeClient{err: errors.New("no connection")}
	s := newTestSeeder(t, client, DefaultConfig())

	assert.Error(t, s.Prime(context.Background()))
}

func TestRunIterationBatchSizes(t *testing.T) {
	client := &fakeClient{}
	cfg := DefaultConfig()
	s := newTestSeeder(t, client, cfg)

	for i := 0; i < 20; i++ {
		client.calls = nil
		rows := s.runIteration(context.Background())

		perTable := map[string]int{}
		for _, call := range client.calls {
			perTable[call.table] += call.rows
		}

		assert.GreaterOrEqual(t, perTable["page_views"], cfg.ViewsPerBatch[0])
		assert.LessOrEqual(t, perTable["page_views"], cfg.ViewsPerBatch[1])
		assert.GreaterOrEqual(t, perTable["shopping_cart"], cfg.CartsPerBatch[0])
		assert.LessOrEqual(t, perTable["shopping_cart"], cfg.CartsPerBatch[1])
		assert.GreaterOrEqual(t, perTable["orders"], cfg.OrdersPerBatch[0])
		assert.LessOrEqual(t, perTable["orders"], cfg.OrdersPerBatch[1])
		assert.LessOrEqual(t, perTable["customers"], cfg.CustomersPerBatch[1])

		total := 0
		for _, n := range perTable {
			total += n
		}
		assert.Equal(t, total, rows)
	}
}

func TestRunIterationSurvivesInsertErrors(t *testing.T) {
	client := &fakeClient{err: errors.New("table missing")}
	s := newTestSeeder(t, client, DefaultConfig())

	assert.Zero(t, s.runIteration(context.Background()))
}

func TestRunStopsOnCancel(t *testing.T) {
	client := &fakeClient{}
	cfg := DefaultConfig()
	cfg.SleepRange = [2]time.Duration{time.Millisecond, 2 * time.Millisecond}
	s := newTestSeeder(t, client, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.NotEmpty(t, client.calls)
	case <-time.After(2 * time.Second):
		t.Fatal("seeder did not stop after cancellation")
	}
}
