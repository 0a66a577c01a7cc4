package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ClickHouse.Host != "localhost" {
		t.Errorf("expected default host localhost, got %q", cfg.ClickHouse.Host)
	}
	if cfg.ClickHouse.Port != 9000 {
		t.Errorf("expected default native port 9000, got %d", cfg.ClickHouse.Port)
	}
	if cfg.Load.Rate != 15.0 {
		t.Errorf("expected default rate 15, got %g", cfg.Load.Rate)
	}
	if cfg.Load.Pacer != "jitter" {
		t.Errorf("expected default pacer jitter, got %q", cfg.Load.Pacer)
	}
	if cfg.Load.SnapshotEvery != 100 {
		t.Errorf("expected default snapshot interval 100, got %d", cfg.Load.SnapshotEvery)
	}
	if !cfg.Load.MutationSampling {
		t.Error("expected mutation sampling enabled by default")
	}

	total := cfg.Load.SelectWeight + cfg.Load.InsertWeight + cfg.Load.UpdateWeight + cfg.Load.DeleteWeight
	if total != 1.0 {
		t.Errorf("expected default weights to sum to 1, got %g", total)
	}

	if cfg.Pool.Capacity != 10000 {
		t.Errorf("expected default pool capacity 10000, got %d", cfg.Pool.Capacity)
	}
	if cfg.Seed.SleepMinSeconds != 12 || cfg.Seed.SleepMaxSeconds != 18 {
		t.Errorf("unexpected default sleep range: %d..%d", cfg.Seed.SleepMinSeconds, cfg.Seed.SleepMaxSeconds)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ECOMLOAD_LOAD_RATE", "25")
	t.Setenv("ECOMLOAD_LOAD_PACER", "token_bucket")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Load.Rate != 25.0 {
		t.Errorf("expected rate 25 from env, got %g", cfg.Load.Rate)
	}
	if cfg.Load.Pacer != "token_bucket" {
		t.Errorf("expected pacer token_bucket from env, got %q", cfg.Load.Pacer)
	}
}

func TestClickHouseEnvAliases(t *testing.T) {
	t.Setenv("CLICKHOUSE_HOST", "ch.internal")
	t.Setenv("CLICKHOUSE_USER", "loadgen")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.ClickHouse.Host != "ch.internal" {
		t.Errorf("expected host from CLICKHOUSE_HOST, got %q", cfg.ClickHouse.Host)
	}
	if cfg.ClickHouse.Username != "loadgen" {
		t.Errorf("expected username from CLICKHOUSE_USER, got %q", cfg.ClickHouse.Username)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned error: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Load.Rate = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero rate")
	}

	cfg = base()
	cfg.Load.Pacer = "cron"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown pacer")
	}

	cfg = base()
	cfg.Load.SelectWeight = 0
	cfg.Load.InsertWeight = 0
	cfg.Load.UpdateWeight = 0
	cfg.Load.DeleteWeight = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for all-zero weights")
	}

	cfg = base()
	cfg.ClickHouse.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid port")
	}

	cfg = base()
	cfg.Pool.Capacity = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative pool capacity")
	}
}
