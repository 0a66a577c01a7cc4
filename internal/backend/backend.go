// Package backend is the ClickHouse client boundary. Typed operation
// payloads from the catalog are rendered to SQL here, at the last moment
// before the wire, and executed over the native protocol.
package backend

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/meridian-data/ecomload/internal/catalog"
)

// Client is the execution surface the dispatch loop and seeder run against.
type Client interface {
	// Query executes an analytical select and drains the result set,
	// returning the number of rows read.
	Query(ctx context.Context, ds *goqu.SelectDataset) (int, error)

	// Mutate executes a batch ALTER TABLE UPDATE or DELETE.
	Mutate(ctx context.Context, m *catalog.Mutation) error

	// BulkInsert appends rows to table through a prepared batch.
	BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) error

	Ping(ctx context.Context) error
	Close() error
}

// Error wraps a backend failure with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("backend: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
