package backend

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/meridian-data/ecomload/internal/catalog"
)

// RenderSelect materializes a query dataset into interpolated SQL.
func RenderSelect(ds *goqu.SelectDataset) (string, error) {
	sql, _, err := ds.ToSQL()
	if err != nil {
		return "", fmt.Errorf("render select: %w", err)
	}
	return sql, nil
}

// RenderMutation builds the ALTER TABLE statement for a batch mutation.
// ClickHouse has no standalone UPDATE/DELETE; both are ALTER TABLE
// mutations and both require a WHERE clause. A sample percentage becomes an
// extra rand() predicate so only a random slice of matching rows is touched.
func RenderMutation(m *catalog.Mutation) string {
	conds := make([]string, 0, len(m.Where)+1)
	conds = append(conds, m.Where...)
	if m.SamplePercent > 0 {
		conds = append(conds, fmt.Sprintf("rand() %% 100 < %d", m.SamplePercent))
	}
	if len(conds) == 0 {
		conds = append(conds, "1")
	}
	where := strings.Join(conds, " AND ")

	if len(m.Set) == 0 {
		return fmt.Sprintf("ALTER TABLE %s DELETE WHERE %s", m.Table, where)
	}

	sets := make([]string, 0, len(m.Set))
	for _, a := range m.Set {
		sets = append(sets, fmt.Sprintf("%s = %s", a.Column, a.Expr))
	}
	return fmt.Sprintf("ALTER TABLE %s UPDATE %s WHERE %s", m.Table, strings.Join(sets, ", "), where)
}

// insertTarget renders the prepared-batch prefix for a bulk insert.
func insertTarget(table string, columns []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s)", table, strings.Join(columns, ", "))
}
