package backend

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog"

	"github.com/meridian-data/ecomload/internal/catalog"
)

// Config carries the native-protocol connection settings.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Secure   bool

	DialTimeout      time.Duration
	MaxExecutionTime int
}

// ClickHouse is the native-protocol Client implementation.
type ClickHouse struct {
	conn driver.Conn
	log  zerolog.Logger
}

// NewClickHouse opens a native connection and verifies it with a ping.
func NewClickHouse(ctx context.Context, cfg Config, log zerolog.Logger) (*ClickHouse, error) {
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	if cfg.MaxExecutionTime == 0 {
		cfg.MaxExecutionTime = 60
	}

	opts := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: cfg.DialTimeout,
		Settings: clickhouse.Settings{
			"max_execution_time": cfg.MaxExecutionTime,
		},
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	}
	if cfg.Secure {
		opts.TLS = &tls.Config{}
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, wrap("open", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, wrap("ping", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Bool("secure", cfg.Secure).
		Msg("Connected to ClickHouse")

	return &ClickHouse{conn: conn, log: log}, nil
}

func (c *ClickHouse) Query(ctx context.Context, ds *goqu.SelectDataset) (int, error) {
	sql, err := RenderSelect(ds)
	if err != nil {
		return 0, wrap("query", err)
	}

	rows, err := c.conn.Query(ctx, sql)
	if err != nil {
		return 0, wrap("query", err)
	}
	defer rows.Close()

	// Drain without decoding; the load profile only needs the server to do
	// the work and stream the result back.
	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return count, wrap("query", err)
	}
	return count, nil
}

func (c *ClickHouse) Mutate(ctx context.Context, m *catalog.Mutation) error {
	return wrap("mutate", c.conn.Exec(ctx, RenderMutation(m)))
}

func (c *ClickHouse) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) error {
	batch, err := c.conn.PrepareBatch(ctx, insertTarget(table, columns))
	if err != nil {
		return wrap("insert", err)
	}
	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			_ = batch.Abort()
			return wrap("insert", err)
		}
	}
	return wrap("insert", batch.Send())
}

func (c *ClickHouse) Ping(ctx context.Context) error {
	return wrap("ping", c.conn.Ping(ctx))
}

func (c *ClickHouse) Close() error {
	return c.conn.Close()
}
