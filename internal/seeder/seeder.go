// Package seeder produces the steady background write stream: an initial
// priming burst so queries have rows to hit, then periodic batches across
// all four tables in randomized order, paced with a long jittered sleep to
// mimic organic traffic arriving in waves.
package seeder

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/meridian-data/ecomload/internal/backend"
	"github.com/meridian-data/ecomload/internal/factory"
	"github.com/meridian-data/ecomload/internal/sample"
)

// Config sets batch sizes and pacing. The defaults follow the shape of real
// store traffic: many page views, fewer carts, fewer orders still, and an
// occasional new customer.
type Config struct {
	PrimeCustomers int
	PrimePageViews int

	ViewsPerBatch     [2]int
	CartsPerBatch     [2]int
	OrdersPerBatch    [2]int
	CustomersPerBatch [2]int

	SleepRange [2]time.Duration
}

func DefaultConfig() Config {
	return Config{
		PrimeCustomers:    10,
		PrimePageViews:    20,
		ViewsPerBatch:     [2]int{5, 8},
		CartsPerBatch:     [2]int{2, 4},
		OrdersPerBatch:    [2]int{1, 2},
		CustomersPerBatch: [2]int{0, 1},
		SleepRange:        [2]time.Duration{12 * time.Second, 18 * time.Second},
	}
}

// Seeder drives the factory and writes batches through the backend.
type Seeder struct {
	factory *factory.Factory
	client  backend.Client
	rng     *rand.Rand
	cfg     Config
	log     zerolog.Logger
}

func New(f *factory.Factory, client backend.Client, rng *rand.Rand, cfg Config, log zerolog.Logger) *Seeder {
	return &Seeder{factory: f, client: client, rng: rng, cfg: cfg, log: log}
}

// Prime inserts the initial customers and page views so the entity pool and
// the tables both start non-empty.
func (s *Seeder) Prime(ctx context.Context) error {
	if err := s.insertBatch(ctx, s.generate(s.factoryCustomer, s.cfg.PrimeCustomers)); err != nil {
		return err
	}
	if err := s.insertBatch(ctx, s.generate(s.factoryPageView, s.cfg.PrimePageViews)); err != nil {
		return err
	}
	s.log.Info().
		Int("customers", s.cfg.PrimeCustomers).
		Int("page_views", s.cfg.PrimePageViews).
		Msg("initial data seeded")
	return nil
}

// Run loops until cancelled: one batch per table in shuffled order, then a
// jittered sleep. Insert failures are logged and the loop moves on.
func (s *Seeder) Run(ctx context.Context) error {
	iteration := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		iteration++
		rows := s.runIteration(ctx)
		if ctx.Err() != nil {
			return nil
		}
		s.log.Info().Int("iteration", iteration).Int("rows", rows).Msg("seed batch written")

		if err := s.sleep(ctx); err != nil {
			return nil
		}
	}
}

// runIteration writes one batch per table, shuffled so insert order varies
// between rounds, and reports the number of rows written.
func (s *Seeder) runIteration(ctx context.Context) int {
	batches := [][]factory.Record{
		s.generate(s.factoryPageView, s.between(s.cfg.ViewsPerBatch)),
		s.generate(s.factoryCart, s.between(s.cfg.CartsPerBatch)),
		s.generate(s.factoryOrder, s.between(s.cfg.OrdersPerBatch)),
		s.generate(s.factoryCustomer, s.between(s.cfg.CustomersPerBatch)),
	}
	s.rng.Shuffle(len(batches), func(i, j int) {
		batches[i], batches[j] = batches[j], batches[i]
	})

	total := 0
	for _, batch := range batches {
		if err := s.insertBatch(ctx, batch); err != nil {
			if ctx.Err() != nil {
				return total
			}
			s.log.Warn().Err(err).Msg("seed insert failed")
			continue
		}
		total += len(batch)
	}
	return total
}

func (s *Seeder) insertBatch(ctx context.Context, records []factory.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return s.client.BulkInsert(ctx, records[0].Table(), records[0].Columns(), rows)
}

func (s *Seeder) generate(gen func() factory.Record, n int) []factory.Record {
	records := make([]factory.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, gen())
	}
	return records
}

func (s *Seeder) between(r [2]int) int {
	return sample.IntBetween(s.rng, r[0], r[1])
}

func (s *Seeder) sleep(ctx context.Context) error {
	span := s.cfg.SleepRange[1] - s.cfg.SleepRange[0]
	d := s.cfg.SleepRange[0] + time.Duration(s.rng.Float64()*float64(span))
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Seeder) factoryCustomer() factory.Record { return s.factory.Customer() }
func (s *Seeder) factoryOrder() factory.Record    { return s.factory.Order() }
func (s *Seeder) factoryPageView() factory.Record { return s.factory.PageView() }
func (s *Seeder) factoryCart() factory.Record     { return s.factory.ShoppingCart() }
