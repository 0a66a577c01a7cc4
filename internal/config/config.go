package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the load generator and seeder.
type Config struct {
	ClickHouse ClickHouseConfig
	Load       LoadConfig
	Seed       SeedConfig
	Pool       PoolConfig
	Log        LogConfig
}

type ClickHouseConfig struct {
	Host     string
	Port     int // Native protocol port
	Database string
	Username string
	Password string
	Secure   bool // Enable TLS

	DialTimeoutSeconds  int
	MaxExecutionSeconds int // Server-side query timeout
}

type LoadConfig struct {
	Rate  float64 // Target operations per second
	Pacer string  // "jitter" or "token_bucket"
	Burst int     // Token bucket burst, ignored by jitter

	MaxOps        int64 // Stop after this many operations, 0 = unlimited
	SnapshotEvery int64 // Progress summary interval in operations

	// Operation kind mix. Weights are relative, not required to sum to 1.
	SelectWeight float64
	InsertWeight float64
	UpdateWeight float64
	DeleteWeight float64

	// MutationSampling adds a rand() predicate to updates/deletes so each
	// mutation touches only a slice of matching rows.
	MutationSampling bool

	Seed int64 // RNG seed, 0 = derive from wall clock
}

type SeedConfig struct {
	PrimeCustomers int
	PrimePageViews int

	ViewsPerBatchMin     int
	ViewsPerBatchMax     int
	CartsPerBatchMin     int
	CartsPerBatchMax     int
	OrdersPerBatchMin    int
	OrdersPerBatchMax    int
	CustomersPerBatchMin int
	CustomersPerBatchMax int

	SleepMinSeconds int
	SleepMaxSeconds int
}

type PoolConfig struct {
	Capacity int // Max retained customer/session references
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment and config file.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("ECOMLOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional ClickHouse variables work without the prefix so the
	// tool drops into environments already configured for other clients.
	bindClickHouseEnv(v)

	// Config file (optional)
	v.SetConfigName("ecomload")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/ecomload/")
	v.AddConfigPath("$HOME/.ecomload/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{
		ClickHouse: ClickHouseConfig{
			Host:                v.GetString("clickhouse.host"),
			Port:                v.GetInt("clickhouse.port"),
			Database:            v.GetString("clickhouse.database"),
			Username:            v.GetString("clickhouse.username"),
			Password:            v.GetString("clickhouse.password"),
			Secure:              v.GetBool("clickhouse.secure"),
			DialTimeoutSeconds:  v.GetInt("clickhouse.dial_timeout_seconds"),
			MaxExecutionSeconds: v.GetInt("clickhouse.max_execution_seconds"),
		},
		Load: LoadConfig{
			Rate:             v.GetFloat64("load.rate"),
			Pacer:            v.GetString("load.pacer"),
			Burst:            v.GetInt("load.burst"),
			MaxOps:           v.GetInt64("load.max_ops"),
			SnapshotEvery:    v.GetInt64("load.snapshot_every"),
			SelectWeight:     v.GetFloat64("load.select_weight"),
			InsertWeight:     v.GetFloat64("load.insert_weight"),
			UpdateWeight:     v.GetFloat64("load.update_weight"),
			DeleteWeight:     v.GetFloat64("load.delete_weight"),
			MutationSampling: v.GetBool("load.mutation_sampling"),
			Seed:             v.GetInt64("load.seed"),
		},
		Seed: SeedConfig{
			PrimeCustomers:       v.GetInt("seed.prime_customers"),
			PrimePageViews:       v.GetInt("seed.prime_page_views"),
			ViewsPerBatchMin:     v.GetInt("seed.views_per_batch_min"),
			ViewsPerBatchMax:     v.GetInt("seed.views_per_batch_max"),
			CartsPerBatchMin:     v.GetInt("seed.carts_per_batch_min"),
			CartsPerBatchMax:     v.GetInt("seed.carts_per_batch_max"),
			OrdersPerBatchMin:    v.GetInt("seed.orders_per_batch_min"),
			OrdersPerBatchMax:    v.GetInt("seed.orders_per_batch_max"),
			CustomersPerBatchMin: v.GetInt("seed.customers_per_batch_min"),
			CustomersPerBatchMax: v.GetInt("seed.customers_per_batch_max"),
			SleepMinSeconds:      v.GetInt("seed.sleep_min_seconds"),
			SleepMaxSeconds:      v.GetInt("seed.sleep_max_seconds"),
		},
		Pool: PoolConfig{
			Capacity: v.GetInt("pool.capacity"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindClickHouseEnv maps the standard CLICKHOUSE_* variables onto the
// clickhouse section, below the prefixed ECOMLOAD_CLICKHOUSE_* forms.
func bindClickHouseEnv(v *viper.Viper) {
	_ = v.BindEnv("clickhouse.host", "ECOMLOAD_CLICKHOUSE_HOST", "CLICKHOUSE_HOST")
	_ = v.BindEnv("clickhouse.port", "ECOMLOAD_CLICKHOUSE_PORT", "CLICKHOUSE_PORT")
	_ = v.BindEnv("clickhouse.database", "ECOMLOAD_CLICKHOUSE_DATABASE", "CLICKHOUSE_DATABASE")
	_ = v.BindEnv("clickhouse.username", "ECOMLOAD_CLICKHOUSE_USERNAME", "CLICKHOUSE_USER")
	_ = v.BindEnv("clickhouse.password", "ECOMLOAD_CLICKHOUSE_PASSWORD", "CLICKHOUSE_PASSWORD")
	_ = v.BindEnv("clickhouse.secure", "ECOMLOAD_CLICKHOUSE_SECURE", "CLICKHOUSE_SECURE")
}

// Validate rejects configurations that would fail later in confusing ways.
func (c *Config) Validate() error {
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host must be set")
	}
	if c.ClickHouse.Port <= 0 || c.ClickHouse.Port > 65535 {
		return fmt.Errorf("clickhouse.port must be in 1..65535, got %d", c.ClickHouse.Port)
	}
	if c.Load.Rate <= 0 {
		return fmt.Errorf("load.rate must be positive, got %g", c.Load.Rate)
	}
	switch c.Load.Pacer {
	case "jitter", "token_bucket":
	default:
		return fmt.Errorf("load.pacer must be jitter or token_bucket, got %q", c.Load.Pacer)
	}
	total := c.Load.SelectWeight + c.Load.InsertWeight + c.Load.UpdateWeight + c.Load.DeleteWeight
	if total <= 0 {
		return fmt.Errorf("operation weights must sum to a positive value")
	}
	if c.Pool.Capacity <= 0 {
		return fmt.Errorf("pool.capacity must be positive, got %d", c.Pool.Capacity)
	}
	if c.Seed.SleepMinSeconds > c.Seed.SleepMaxSeconds {
		return fmt.Errorf("seed.sleep_min_seconds must not exceed seed.sleep_max_seconds")
	}
	return nil
}

// DialTimeout converts the configured dial timeout to a duration.
func (c ClickHouseConfig) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutSeconds) * time.Second
}

func setDefaults(v *viper.Viper) {
	// ClickHouse defaults
	v.SetDefault("clickhouse.host", "localhost")
	v.SetDefault("clickhouse.port", 9000)
	v.SetDefault("clickhouse.database", "default")
	v.SetDefault("clickhouse.username", "default")
	v.SetDefault("clickhouse.password", "")
	v.SetDefault("clickhouse.secure", false)
	v.SetDefault("clickhouse.dial_timeout_seconds", 10)
	v.SetDefault("clickhouse.max_execution_seconds", 60)

	// Load defaults
	v.SetDefault("load.rate", 15.0)
	v.SetDefault("load.pacer", "jitter")
	v.SetDefault("load.burst", 1)
	v.SetDefault("load.max_ops", 0)
	v.SetDefault("load.snapshot_every", 100)
	v.SetDefault("load.select_weight", 0.4)
	v.SetDefault("load.insert_weight", 0.4)
	v.SetDefault("load.update_weight", 0.1)
	v.SetDefault("load.delete_weight", 0.1)
	v.SetDefault("load.mutation_sampling", true)
	v.SetDefault("load.seed", 0)

	// Seeder defaults
	v.SetDefault("seed.prime_customers", 10)
	v.SetDefault("seed.prime_page_views", 20)
	v.SetDefault("seed.views_per_batch_min", 5)
	v.SetDefault("seed.views_per_batch_max", 8)
	v.SetDefault("seed.carts_per_batch_min", 2)
	v.SetDefault("seed.carts_per_batch_max", 4)
	v.SetDefault("seed.orders_per_batch_min", 1)
	v.SetDefault("seed.orders_per_batch_max", 2)
	v.SetDefault("seed.customers_per_batch_min", 0)
	v.SetDefault("seed.customers_per_batch_max", 1)
	v.SetDefault("seed.sleep_min_seconds", 12)
	v.SetDefault("seed.sleep_max_seconds", 18)

	// Pool defaults
	v.SetDefault("pool.capacity", 10000)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}
