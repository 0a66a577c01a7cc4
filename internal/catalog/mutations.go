package catalog

import (
	"fmt"

	"github.com/meridian-data/ecomload/internal/factory"
	"github.com/meridian-data/ecomload/internal/sample"
)

// Write-side templates. Inserts delegate row synthesis to the factory so the
// generated traffic shares one entity pool with the seeder. Updates and
// deletes are batch mutations over recent rows, each sampling a small random
// percentage of matches so repeated runs keep finding work to do.

// Parameter pools for mutation literals. These intentionally cover only the
// values the row factory emits, so every mutation predicate can match.
var (
	mutAccountStatuses = []string{"active", "inactive", "suspended", "pending_verification"}
	mutActiveStatuses  = []string{"active", "inactive", "suspended"}
	mutSegments        = []string{"new", "regular", "vip", "churned", "at_risk", "high_value"}
	mutLoyaltyTiers    = []string{"bronze", "silver", "gold", "platinum", "diamond"}

	// Order lifecycle transitions, forward only.
	orderTransitions = [][2]string{
		{"pending", "confirmed"},
		{"confirmed", "processing"},
		{"processing", "shipped"},
		{"shipped", "delivered"},
	}
)

func quoted(s string) string { return fmt.Sprintf("'%s'", s) }

func insertTemplates() []insertTemplate {
	return []insertTemplate{
		{"insert_customers", func(c *Catalog) *InsertBatch {
			return c.batch(sample.IntBetween(c.rng, 1, 3), func() factory.Record {
				return c.factory.Customer()
			})
		}},
		{"insert_orders", func(c *Catalog) *InsertBatch {
			return c.batch(sample.IntBetween(c.rng, 1, 3), func() factory.Record {
				return c.factory.Order()
			})
		}},
		{"insert_page_views", func(c *Catalog) *InsertBatch {
			return c.batch(sample.IntBetween(c.rng, 5, 10), func() factory.Record {
				return c.factory.PageView()
			})
		}},
		{"insert_shopping_cart", func(c *Catalog) *InsertBatch {
			return c.batch(sample.IntBetween(c.rng, 1, 3), func() factory.Record {
				return c.factory.ShoppingCart()
			})
		}},
	}
}

// batch flattens n freshly generated records of one table into an insert
// payload.
func (c *Catalog) batch(n int, gen func() factory.Record) *InsertBatch {
	first := gen()
	b := &InsertBatch{
		Table:   first.Table(),
		Columns: first.Columns(),
		Rows:    make([][]any, 0, n),
	}
	b.Rows = append(b.Rows, first.Row())
	for i := 1; i < n; i++ {
		b.Rows = append(b.Rows, gen().Row())
	}
	return b
}

func updateTemplates() []mutationTemplate {
	return []mutationTemplate{
		{"update_customer_status", func(c *Catalog) *Mutation {
			from := sample.Uniform(c.rng, mutAccountStatuses)
			to := sample.Uniform(c.rng, mutActiveStatuses)
			return &Mutation{
				Table: "customers",
				Set: []Assignment{
					{Column: "account_status", Expr: quoted(to)},
					{Column: "updated_at", Expr: "now()"},
				},
				Where:         []string{fmt.Sprintf("account_status = %s", quoted(from))},
				SamplePercent: c.samplePercent(5),
			}
		}},
		{"update_customer_loyalty", func(c *Catalog) *Mutation {
			segment := sample.Uniform(c.rng, mutSegments)
			tier := sample.Uniform(c.rng, mutLoyaltyTiers)
			points := sample.IntBetween(c.rng, 100, 1000)
			return &Mutation{
				Table: "customers",
				Set: []Assignment{
					{Column: "loyalty_points", Expr: fmt.Sprintf("loyalty_points + %d", points)},
					{Column: "loyalty_tier", Expr: quoted(tier)},
					{Column: "updated_at", Expr: "now()"},
				},
				Where:         []string{fmt.Sprintf("customer_segment = %s", quoted(segment))},
				SamplePercent: c.samplePercent(10),
			}
		}},
		{"update_order_status", func(c *Catalog) *Mutation {
			step := sample.Uniform(c.rng, orderTransitions)
			set := []Assignment{
				{Column: "order_status", Expr: quoted(step[1])},
				{Column: "updated_at", Expr: "now()"},
			}
			switch step[1] {
			case "shipped":
				set = append(set, Assignment{Column: "shipped_date", Expr: "now()"})
			case "delivered":
				set = append(set, Assignment{Column: "delivered_date", Expr: "now()"})
			}
			return &Mutation{
				Table:         "orders",
				Set:           set,
				Where:         []string{fmt.Sprintf("order_status = %s", quoted(step[0]))},
				SamplePercent: c.samplePercent(15),
			}
		}},
		{"update_cart_status", func(c *Catalog) *Mutation {
			return &Mutation{
				Table: "shopping_cart",
				Set: []Assignment{
					{Column: "cart_status", Expr: "'abandoned'"},
					{Column: "cart_abandoned_at", Expr: "now()"},
					{Column: "updated_at", Expr: "now()"},
				},
				Where: []string{
					"cart_status = 'active'",
					"cart_updated_at < now() - INTERVAL 2 HOUR",
				},
				SamplePercent: c.samplePercent(20),
			}
		}},
	}
}

func deleteTemplates() []mutationTemplate {
	return []mutationTemplate{
		{"delete_old_page_views", func(c *Catalog) *Mutation {
			hours := sample.IntBetween(c.rng, 20, 24)
			return &Mutation{
				Table:         "page_views",
				Where:         []string{fmt.Sprintf("view_timestamp < now() - INTERVAL %d HOUR", hours)},
				SamplePercent: c.samplePercent(5),
			}
		}},
		{"delete_expired_carts", func(c *Catalog) *Mutation {
			return &Mutation{
				Table: "shopping_cart",
				Where: []string{
					"cart_status = 'expired'",
					"cart_updated_at < now() - INTERVAL 1 DAY",
				},
				SamplePercent: c.samplePercent(10),
			}
		}},
		{"delete_cancelled_orders", func(c *Catalog) *Mutation {
			days := sample.IntBetween(c.rng, 5, 7)
			return &Mutation{
				Table: "orders",
				Where: []string{
					"order_status = 'cancelled'",
					fmt.Sprintf("order_date < now() - INTERVAL %d DAY", days),
				},
				SamplePercent: c.samplePercent(5),
			}
		}},
		{"delete_inactive_customers", func(c *Catalog) *Mutation {
			return &Mutation{
				Table: "customers",
				Where: []string{
					"account_status = 'suspended'",
					"updated_at < now() - INTERVAL 7 DAY",
				},
				SamplePercent: c.samplePercent(3),
			}
		}},
	}
}
