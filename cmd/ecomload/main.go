package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meridian-data/ecomload/internal/backend"
	"github.com/meridian-data/ecomload/internal/catalog"
	"github.com/meridian-data/ecomload/internal/config"
	"github.com/meridian-data/ecomload/internal/dispatch"
	"github.com/meridian-data/ecomload/internal/factory"
	"github.com/meridian-data/ecomload/internal/governor"
	"github.com/meridian-data/ecomload/internal/logger"
	"github.com/meridian-data/ecomload/internal/pool"
	"github.com/meridian-data/ecomload/internal/shutdown"
	"github.com/meridian-data/ecomload/internal/stats"
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
	log.Info().Str("version", Version).Msg("Starting ecomload...")

	seed := cfg.Load.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Info().Int64("seed", seed).Float64("rate", cfg.Load.Rate).Msg("Load profile configured")

	entityPool := pool.New(cfg.Pool.Capacity, rng)
	rowFactory, err := factory.New(entityPool, rng, uint64(seed))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build row factory")
	}

	cat, err := catalog.New(rowFactory, rng, catalog.Config{
		SelectWeight:     cfg.Load.SelectWeight,
		InsertWeight:     cfg.Load.InsertWeight,
		UpdateWeight:     cfg.Load.UpdateWeight,
		DeleteWeight:     cfg.Load.DeleteWeight,
		MutationSampling: cfg.Load.MutationSampling,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build operation catalog")
	}

	pacer, err := buildPacer(cfg, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build pacer")
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

	agg := stats.New(logger.Get("stats"))
	loop := dispatch.New(cat, client, pacer, agg, dispatch.Config{
		MaxOps:        cfg.Load.MaxOps,
		SnapshotEvery: cfg.Load.SnapshotEvery,
	}, logger.Get("dispatch"))

	if err := loop.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Load loop failed")
		agg.LogFinal()
		os.Exit(1)
	}

	agg.LogFinal()
}

func buildPacer(cfg *config.Config, rng *rand.Rand) (governor.Pacer, error) {
	if cfg.Load.Pacer == "token_bucket" {
		return governor.NewTokenBucket(cfg.Load.Rate, cfg.Load.Burst)
	}
	return governor.NewJitter(cfg.Load.Rate, rng)
}
