// Package catalog holds the weighted operation templates the load generator
// dispatches: twenty analytical query shapes, four insert kinds, and eight
// batched mutations. Selection draws an operation kind from the configured
// distribution, then a uniform template within that kind, then renders fresh
// random parameters. Payloads stay typed here; the backend client renders
// them to SQL at the wire boundary.
package catalog

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/meridian-data/ecomload/internal/factory"
	"github.com/meridian-data/ecomload/internal/sample"
)

// Kind tags an operation with its backend verb.
type Kind string

const (
	KindSelect Kind = "SELECT"
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
)

// Operation is one rendered, dispatchable unit of work. Exactly one payload
// field is set, matching Kind.
type Operation struct {
	Kind     Kind
	Name     string
	Query    *goqu.SelectDataset
	Insert   *InsertBatch
	Mutation *Mutation
}

// InsertBatch carries rows for a bulk insert.
type InsertBatch struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Assignment is one SET clause of an update mutation. Expr is a rendered
// ClickHouse expression whose literals come from the fixed vocabularies in
// this package, never from external input.
type Assignment struct {
	Column string
	Expr   string
}

// Mutation describes a batch ALTER TABLE UPDATE/DELETE. An empty Set means
// DELETE. SamplePercent > 0 adds a probabilistic row-selection clause so the
// mutation touches a random subset of matching rows.
type Mutation struct {
	Table         string
	Set           []Assignment
	Where         []string
	SamplePercent int
}

// Config controls the operation-kind distribution and the noisy-mutation
// toggle.
type Config struct {
	SelectWeight float64
	InsertWeight float64
	UpdateWeight float64
	DeleteWeight float64

	// MutationSampling keeps the probabilistic row-selection clause on
	// update/delete mutations. Turning it off makes mutations apply to every
	// matching row.
	MutationSampling bool
}

// DefaultConfig is the 40/40/10/10 mix with sampling on.
func DefaultConfig() Config {
	return Config{
		SelectWeight:     0.4,
		InsertWeight:     0.4,
		UpdateWeight:     0.1,
		DeleteWeight:     0.1,
		MutationSampling: true,
	}
}

type queryTemplate struct {
	name  string
	build func(c *Catalog) *goqu.SelectDataset
}

type insertTemplate struct {
	name  string
	build func(c *Catalog) *InsertBatch
}

type mutationTemplate struct {
	name  string
	build func(c *Catalog) *Mutation
}

// Catalog is the indexed, weighted template collection.
type Catalog struct {
	rng      *rand.Rand
	factory  *factory.Factory
	now      func() time.Time
	kinds    *sample.Weighted[Kind]
	sampling bool

	selects []queryTemplate
	inserts []insertTemplate
	updates []mutationTemplate
	deletes []mutationTemplate
}

// New builds the catalog. An invalid kind distribution (negative or all-zero
// weights) is a configuration fault and fails here, before any dispatch.
func New(f *factory.Factory, rng *rand.Rand, cfg Config) (*Catalog, error) {
	kinds, err := sample.NewWeighted(
		[]Kind{KindSelect, KindInsert, KindUpdate, KindDelete},
		[]float64{cfg.SelectWeight, cfg.InsertWeight, cfg.UpdateWeight, cfg.DeleteWeight},
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: kind distribution: %w", err)
	}

	c := &Catalog{
		rng:      rng,
		factory:  f,
		now:      time.Now,
		kinds:    kinds,
		sampling: cfg.MutationSampling,
	}
	c.selects = selectTemplates()
	c.inserts = insertTemplates()
	c.updates = updateTemplates()
	c.deletes = deleteTemplates()
	return c, nil
}

// WithNow overrides the clock, for tests.
func (c *Catalog) WithNow(now func() time.Time) *Catalog {
	c.now = now
	return c
}

// Next draws an operation kind, samples a template within it, and renders it
// with fresh parameters.
func (c *Catalog) Next() *Operation {
	kind := c.kinds.Pick(c.rng)
	switch kind {
	case KindSelect:
		t := sample.Uniform(c.rng, c.selects)
		return &Operation{Kind: kind, Name: t.name, Query: t.build(c)}
	case KindInsert:
		t := sample.Uniform(c.rng, c.inserts)
		return &Operation{Kind: kind, Name: t.name, Insert: t.build(c)}
	case KindUpdate:
		t := sample.Uniform(c.rng, c.updates)
		return &Operation{Kind: kind, Name: t.name, Mutation: t.build(c)}
	default:
		t := sample.Uniform(c.rng, c.deletes)
		return &Operation{Kind: kind, Name: t.name, Mutation: t.build(c)}
	}
}

// Sizes reports the number of templates per kind.
func (c *Catalog) Sizes() (selects, inserts, updates, deletes int) {
	return len(c.selects), len(c.inserts), len(c.updates), len(c.deletes)
}

const timeLayout = "2006-01-02 15:04:05"

// dateRange renders a random window ending now and starting 1..maxDaysBack
// days earlier, formatted the way ClickHouse compares DateTime columns to
// strings.
func (c *Catalog) dateRange(maxDaysBack int) (string, string) {
	end := c.now()
	start := end.AddDate(0, 0, -sample.IntBetween(c.rng, 1, maxDaysBack))
	return start.Format(timeLayout), end.Format(timeLayout)
}

var limitCandidates = []uint{10, 25, 50, 100, 250, 500, 1000}

func (c *Catalog) limit() uint {
	return sample.Uniform(c.rng, limitCandidates)
}

// samplePercent gates the row-selection clause on the noisy-mutation toggle.
func (c *Catalog) samplePercent(pct int) int {
	if !c.sampling {
		return 0
	}
	return pct
}
