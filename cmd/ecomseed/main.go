package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meridian-data/ecomload/internal/backend"
	"github.com/meridian-data/ecomload/internal/config"
	"github.com/meridian-data/ecomload/internal/factory"
	"github.com/meridian-data/ecomload/internal/logger"
	"github.com/meridian-data/ecomload/internal/pool"
	"github.com/meridian-data/ecomload/internal/seeder"
	"github.com/meridian-data/ecomload/internal/shutdown"
)

// Version is set at build time
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", Version).Msg("Starting ecomseed...")

	seed := cfg.Load.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	entityPool := pool.New(cfg.Pool.Capacity, rng)
	rowFactory, err := factory.New(entityPool, rng, uint64(seed))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build row factory")
	}

	ctx, cancel := shutdown.Context(context.Background(), logger.Get("shutdown"))
	defer cancel()

	client, err := backend.NewClickHouse(ctx, backend.Config{
		Host:             cfg.ClickHouse.Host,
		Port:             cfg.ClickHouse.Port,
		Database:         cfg.ClickHouse.Database,
		Username:         cfg.ClickHouse.Username,
		Password:         cfg.ClickHouse.Password,
		Secure:           cfg.ClickHouse.Secure,
		DialTimeout:      cfg.ClickHouse.DialTimeout(),
		MaxExecutionTime: cfg.ClickHouse.MaxExecutionSeconds,
	}, logger.Get("clickhouse"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to ClickHouse")
	}
	defer client.Close()

	s := seeder.New(rowFactory, client, rng, seeder.Config{
		PrimeCustomers:    cfg.Seed.PrimeCustomers,
		PrimePageViews:    cfg.Seed.PrimePageViews,
		ViewsPerBatch:     [2]int{cfg.Seed.ViewsPerBatchMin, cfg.Seed.ViewsPerBatchMax},
		CartsPerBatch:     [2]int{cfg.Seed.CartsPerBatchMin, cfg.Seed.CartsPerBatchMax},
		OrdersPerBatch:    [2]int{cfg.Seed.OrdersPerBatchMin, cfg.Seed.OrdersPerBatchMax},
		CustomersPerBatch: [2]int{cfg.Seed.CustomersPerBatchMin, cfg.Seed.CustomersPerBatchMax},
		SleepRange: [2]time.Duration{
			time.Duration(cfg.Seed.SleepMinSeconds) * time.Second,
			time.Duration(cfg.Seed.SleepMaxSeconds) * time.Second,
		},
	}, logger.Get("seeder"))

	if err := s.Prime(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Fatal().Err(err).Msg("Initial seeding failed")
	}

	if err := s.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Seed loop failed")
		os.Exit(1)
	}
	log.Info().Msg("Seeder stopped")
}
