package catalog

import "github.com/doug-martin/goqu/v9"

// The analytical query shapes. Every template draws a fresh date window, and
// the ranked ones draw a row limit, so repeated picks of the same template
// still produce distinct statements. ClickHouse-specific functions (countIf,
// uniq, toStartOfHour, arrayJoin) go through literals since no dialect
// carries them.

func selectTemplates() []queryTemplate {
	return []queryTemplate{
		{"orders_by_status", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("orders").
				Select(
					goqu.C("order_status"),
					goqu.COUNT(goqu.Star()).As("order_count"),
					goqu.SUM(goqu.C("total_amount")).As("revenue"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("order_status")).
				Order(goqu.C("order_count").Desc())
		}},
		{"top_customers", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("orders").
				Select(
					goqu.C("customer_id"),
					goqu.C("customer_email"),
					goqu.COUNT(goqu.Star()).As("order_count"),
					goqu.SUM(goqu.C("total_amount")).As("total_revenue"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("customer_id"), goqu.C("customer_email")).
				Order(goqu.C("total_revenue").Desc()).
				Limit(c.limit())
		}},
		{"hourly_sales", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(3)
			return goqu.From("orders").
				Select(
					goqu.L("toStartOfHour(order_date)").As("hour"),
					goqu.COUNT(goqu.Star()).As("order_count"),
					goqu.SUM(goqu.C("total_amount")).As("revenue"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("hour")).
				Order(goqu.C("hour").Asc())
		}},
		{"cart_abandonment_rate", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("shopping_cart").
				Select(
					goqu.L("countIf(cart_status = 'abandoned')").As("abandoned"),
					goqu.L("countIf(cart_status = 'converted')").As("converted"),
					goqu.COUNT(goqu.Star()).As("total_carts"),
				).
				Where(goqu.C("cart_created_at").Between(goqu.Range(start, end)))
		}},
		{"page_views_by_type", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(3)
			return goqu.From("page_views").
				Select(
					goqu.C("page_type"),
					goqu.COUNT(goqu.Star()).As("views"),
					goqu.AVG(goqu.C("time_on_page_seconds")).As("avg_time_on_page"),
				).
				Where(goqu.C("view_timestamp").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("page_type")).
				Order(goqu.C("views").Desc())
		}},
		{"revenue_by_channel", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("orders").
				Select(
					goqu.C("source_channel"),
					goqu.COUNT(goqu.Star()).As("order_count"),
					goqu.SUM(goqu.C("total_amount")).As("revenue"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("source_channel")).
				Order(goqu.C("revenue").Desc())
		}},
		{"customer_segments", func(c *Catalog) *goqu.SelectDataset {
			return goqu.From("customers").
				Select(
					goqu.C("customer_segment"),
					goqu.COUNT(goqu.Star()).As("customer_count"),
					goqu.AVG(goqu.C("total_spent")).As("avg_spent"),
					goqu.AVG(goqu.C("loyalty_points")).As("avg_points"),
				).
				GroupBy(goqu.C("customer_segment")).
				Order(goqu.C("customer_count").Desc())
		}},
		{"orders_by_country", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("orders").
				Select(
					goqu.C("shipping_address_country"),
					goqu.COUNT(goqu.Star()).As("order_count"),
					goqu.SUM(goqu.C("total_amount")).As("revenue"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("shipping_address_country")).
				Order(goqu.C("revenue").Desc())
		}},
		{"category_performance", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("orders").
				Select(
					goqu.L("arrayJoin(item_categories)").As("category"),
					goqu.COUNT(goqu.Star()).As("times_ordered"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("category")).
				Order(goqu.C("times_ordered").Desc())
		}},
		{"payment_method_analysis", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("orders").
				Select(
					goqu.C("payment_method"),
					goqu.COUNT(goqu.Star()).As("order_count"),
					goqu.SUM(goqu.C("total_amount")).As("revenue"),
					goqu.AVG(goqu.C("total_amount")).As("avg_order_value"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("payment_method")).
				Order(goqu.C("revenue").Desc())
		}},
		{"session_analysis", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(1)
			return goqu.From("page_views").
				Select(
					goqu.C("session_id"),
					goqu.COUNT(goqu.Star()).As("page_count"),
					goqu.SUM(goqu.C("clicks_count")).As("total_clicks"),
					goqu.MAX(goqu.C("scroll_depth_percent")).As("max_scroll"),
				).
				Where(goqu.C("view_timestamp").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("session_id")).
				Order(goqu.C("page_count").Desc()).
				Limit(c.limit())
		}},
		{"browser_performance", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(3)
			return goqu.From("page_views").
				Select(
					goqu.C("browser"),
					goqu.COUNT(goqu.Star()).As("views"),
					goqu.AVG(goqu.C("page_load_time_ms")).As("avg_load_time"),
				).
				Where(goqu.C("view_timestamp").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("browser")).
				Order(goqu.C("views").Desc())
		}},
		{"abandoned_cart_value", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("shopping_cart").
				Select(
					goqu.COUNT(goqu.Star()).As("abandoned_carts"),
					goqu.SUM(goqu.C("estimated_total")).As("lost_revenue"),
					goqu.AVG(goqu.C("items_count")).As("avg_items"),
				).
				Where(
					goqu.C("cart_status").Eq("abandoned"),
					goqu.C("cart_created_at").Between(goqu.Range(start, end)),
				)
		}},
		{"loyalty_distribution", func(c *Catalog) *goqu.SelectDataset {
			return goqu.From("customers").
				Select(
					goqu.C("loyalty_tier"),
					goqu.COUNT(goqu.Star()).As("customer_count"),
					goqu.AVG(goqu.C("loyalty_points")).As("avg_points"),
				).
				GroupBy(goqu.C("loyalty_tier")).
				Order(goqu.C("customer_count").Desc())
		}},
		{"recent_orders", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(1)
			return goqu.From("orders").
				Select(
					goqu.C("order_id"),
					goqu.C("order_number"),
					goqu.C("customer_email"),
					goqu.C("total_amount"),
					goqu.C("order_status"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				Order(goqu.C("order_date").Desc()).
				Limit(c.limit())
		}},
		{"conversion_funnel", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(3)
			return goqu.From("page_views").
				Select(
					goqu.L("countIf(page_type = 'product')").As("product_views"),
					goqu.L("countIf(add_to_cart_clicked = 1)").As("add_to_carts"),
					goqu.L("countIf(page_type = 'checkout')").As("checkouts"),
				).
				Where(goqu.C("view_timestamp").Between(goqu.Range(start, end)))
		}},
		{"geographic_distribution", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("page_views").
				Select(
					goqu.C("geo_country"),
					goqu.COUNT(goqu.Star()).As("views"),
					goqu.L("uniq(session_id)").As("sessions"),
				).
				Where(goqu.C("view_timestamp").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("geo_country")).
				Order(goqu.C("views").Desc())
		}},
		{"search_analysis", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(3)
			return goqu.From("page_views").
				Select(
					goqu.C("search_query"),
					goqu.COUNT(goqu.Star()).As("searches"),
					goqu.AVG(goqu.C("search_results_count")).As("avg_results"),
				).
				Where(
					goqu.C("page_type").Eq("search"),
					goqu.C("search_query").IsNotNull(),
					goqu.C("view_timestamp").Between(goqu.Range(start, end)),
				).
				GroupBy(goqu.C("search_query")).
				Order(goqu.C("searches").Desc()).
				Limit(c.limit())
		}},
		{"shipping_analysis", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("orders").
				Select(
					goqu.C("shipping_method"),
					goqu.C("shipping_carrier"),
					goqu.COUNT(goqu.Star()).As("order_count"),
					goqu.AVG(goqu.C("shipping_cost")).As("avg_shipping_cost"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("shipping_method"), goqu.C("shipping_carrier")).
				Order(goqu.C("order_count").Desc())
		}},
		{"daily_metrics", func(c *Catalog) *goqu.SelectDataset {
			start, end := c.dateRange(7)
			return goqu.From("orders").
				Select(
					goqu.L("toDate(order_date)").As("day"),
					goqu.COUNT(goqu.Star()).As("order_count"),
					goqu.SUM(goqu.C("total_amount")).As("revenue"),
					goqu.L("uniq(customer_id)").As("unique_customers"),
				).
				Where(goqu.C("order_date").Between(goqu.Range(start, end))).
				GroupBy(goqu.C("day")).
				Order(goqu.C("day").Asc())
		}},
	}
}
