package backend

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-data/ecomload/internal/catalog"
)

func TestRenderSelect(t *testing.T) {
	ds := goqu.From("orders").
		Select(goqu.C("order_status"), goqu.COUNT(goqu.Star()).As("order_count")).
		Where(goqu.C("order_date").Between(goqu.Range("2026-08-01 00:00:00", "2026-08-02 00:00:00"))).
		GroupBy(goqu.C("order_status"))

	sql, err := RenderSelect(ds)
	require.NoError(t, err)
	assert.Contains(t, sql, `FROM "orders"`)
	assert.Contains(t, sql, "BETWEEN '2026-08-01 00:00:00' AND '2026-08-02 00:00:00'")
	assert.Contains(t, sql, "GROUP BY")
}

func TestRenderMutationUpdate(t *testing.T) {
	m := &catalog.Mutation{
		Table: "customers",
		Set: []catalog.Assignment{
			{Column: "account_status", Expr: "'active'"},
			{Column: "updated_at", Expr: "now()"},
		},
		Where:         []string{"account_status = 'inactive'"},
		SamplePercent: 5,
	}

	got := RenderMutation(m)
	assert.Equal(t,
		"ALTER TABLE customers UPDATE account_status = 'active', updated_at = now() "+
			"WHERE account_status = 'inactive' AND rand() % 100 < 5",
		got)
}

func TestRenderMutationDelete(t *testing.T) {
	m := &catalog.Mutation{
		Table:         "page_views",
		Where:         []string{"view_timestamp < now() - INTERVAL 24 HOUR"},
		SamplePercent: 10,
	}

	got := RenderMutation(m)
	assert.Equal(t,
		"ALTER TABLE page_views DELETE WHERE view_timestamp < now() - INTERVAL 24 HOUR AND rand() % 100 < 10",
		got)
}

func TestRenderMutationNoSampling(t *testing.T) {
	m := &catalog.Mutation{
		Table: "shopping_cart",
		Where: []string{"cart_status = 'expired'"},
	}
	assert.Equal(t, "ALTER TABLE shopping_cart DELETE WHERE cart_status = 'expired'", RenderMutation(m))
}

func TestRenderMutationNoWhere(t *testing.T) {
	// ClickHouse requires a WHERE on every mutation.
	m := &catalog.Mutation{Table: "orders"}
	assert.Equal(t, "ALTER TABLE orders DELETE WHERE 1", RenderMutation(m))
}

func TestInsertTarget(t *testing.T) {
	got := insertTarget("customers", []string{"customer_id", "email"})
	assert.Equal(t, "INSERT INTO customers (customer_id, email)", got)
}
