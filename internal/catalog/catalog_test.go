package catalog

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-data/ecomload/internal/factory"
	"github.com/meridian-data/ecomload/internal/pool"
)

func newTestCatalog(t *testing.T, seed int64, cfg Config) *Catalog {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	p := pool.New(1000, rng)
	f, err := factory.New(p, rng, uint64(seed))
	require.NoError(t, err)
	c, err := New(f, rng, cfg)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := pool.New(10, rng)
	f, err := factory.New(p, rng, 1)
	require.NoError(t, err)

	_, err = New(f, rng, Config{SelectWeight: -1, InsertWeight: 1})
	assert.Error(t, err)

	_, err = New(f, rng, Config{})
	assert.Error(t, err)
}

func TestTemplateCounts(t *testing.T) {
	c := newTestCatalog(t, 1, DefaultConfig())
	selects, inserts, updates, deletes := c.Sizes()
	assert.Equal(t, 20, selects)
	assert.Equal(t, 4, inserts)
	assert.Equal(t, 4, updates)
	assert.Equal(t, 4, deletes)
}

func TestKindDistribution(t *testing.T) {
	c := newTestCatalog(t, 42, DefaultConfig())

	const draws = 4000
	counts := map[Kind]int{}
	for i := 0; i < draws; i++ {
		counts[c.Next().Kind]++
	}

	assert.InDelta(t, 0.4, float64(counts[KindSelect])/draws, 0.05)
	assert.InDelta(t, 0.4, float64(counts[KindInsert])/draws, 0.05)
	assert.InDelta(t, 0.1, float64(counts[KindUpdate])/draws, 0.05)
	assert.InDelta(t, 0.1, float64(counts[KindDelete])/draws, 0.05)
}

func TestNextSetsExactlyOnePayload(t *testing.T) {
	c := newTestCatalog(t, 7, DefaultConfig())

	for i := 0; i < 500; i++ {
		op := c.Next()
		require.NotEmpty(t, op.Name)

		set := 0
		if op.Query != nil {
			set++
			assert.Equal(t, KindSelect, op.Kind)
		}
		if op.Insert != nil {
			set++
			assert.Equal(t, KindInsert, op.Kind)
		}
		if op.Mutation != nil {
			set++
			assert.Contains(t, []Kind{KindUpdate, KindDelete}, op.Kind)
			if op.Kind == KindDelete {
				assert.Empty(t, op.Mutation.Set)
			} else {
				assert.NotEmpty(t, op.Mutation.Set)
			}
		}
		assert.Equal(t, 1, set, "operation %s", op.Name)
	}
}

func TestSelectTemplatesRender(t *testing.T) {
	c := newTestCatalog(t, 9, DefaultConfig())

	for _, tpl := range c.selects {
		ds := tpl.build(c)
		sql, _, err := ds.ToSQL()
		require.NoError(t, err, "template %s", tpl.name)
		assert.True(t, strings.HasPrefix(sql, "SELECT"), "template %s: %s", tpl.name, sql)
	}
}

func TestRankedTemplatesCarryLimit(t *testing.T) {
	c := newTestCatalog(t, 10, DefaultConfig())

	ranked := map[string]bool{
		"top_customers":    true,
		"session_analysis": true,
		"recent_orders":    true,
		"search_analysis":  true,
	}
	for _, tpl := range c.selects {
		if !ranked[tpl.name] {
			continue
		}
		sql, _, err := tpl.build(c).ToSQL()
		require.NoError(t, err)
		assert.Contains(t, sql, "LIMIT", "template %s", tpl.name)
	}
}

func TestInsertBatchShape(t *testing.T) {
	c := newTestCatalog(t, 11, DefaultConfig())

	for _, tpl := range c.inserts {
		b := tpl.build(c)
		require.NotEmpty(t, b.Rows, "template %s", tpl.name)
		for _, row := range b.Rows {
			assert.Len(t, row, len(b.Columns), "template %s", tpl.name)
		}
	}
}

func TestMutationSamplingToggle(t *testing.T) {
	on := newTestCatalog(t, 12, DefaultConfig())
	for _, tpl := range append(on.updates, on.deletes...) {
		m := tpl.build(on)
		assert.Positive(t, m.SamplePercent, "template %s", tpl.name)
	}

	cfg := DefaultConfig()
	cfg.MutationSampling = false
	off := newTestCatalog(t, 12, cfg)
	for _, tpl := range append(off.updates, off.deletes...) {
		m := tpl.build(off)
		assert.Zero(t, m.SamplePercent, "template %s", tpl.name)
	}
}

func TestOrderStatusTransitionIsForward(t *testing.T) {
	c := newTestCatalog(t, 13, DefaultConfig())

	var tpl mutationTemplate
	for _, u := range c.updates {
		if u.name == "update_order_status" {
			tpl = u
		}
	}
	require.NotNil(t, tpl.build)

	rank := map[string]int{"pending": 0, "confirmed": 1, "processing": 2, "shipped": 3, "delivered": 4}
	for i := 0; i < 100; i++ {
		m := tpl.build(c)
		require.Len(t, m.Where, 1)

		from := strings.Trim(strings.TrimPrefix(m.Where[0], "order_status = "), "'")
		to := strings.Trim(m.Set[0].Expr, "'")
		assert.Equal(t, rank[from]+1, rank[to], "%s -> %s", from, to)
	}
}

func TestMutationsAlwaysConstrained(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MutationSampling = false
	c := newTestCatalog(t, 14, cfg)

	// Even with sampling off, no mutation template may target a whole table.
	for _, tpl := range append(c.updates, c.deletes...) {
		m := tpl.build(c)
		assert.NotEmpty(t, m.Where, "template %s", tpl.name)
	}
}
