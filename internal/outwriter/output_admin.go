package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// adminRowsView renders raw admin table rows. Admin rows have no fixed shape, so
// columns are the union of every row's keys with "id" first.
func adminRowsView(table string, rows []schema.Row, cfg *contract.Config) view {
	columns := rowColumns(rows)
	return view{
		name: table,
		data: rows,
		table: func(w io.Writer) error {
			return writeAdminTable(w, table, columns, rows, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeCSVWithHeader(w, columns, adminCells(columns, rows, 0))
		},
	}
}

// rowColumns returns the sorted union of row keys, with "id" leading when present.
func rowColumns(rows []schema.Row) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	_, hasID := seen["id"]
	delete(seen, "id")
	columns := slices.Sorted(maps.Keys(seen))
	if hasID {
		columns = append([]string{"id"}, columns...)
	}
	return columns
}

// adminCells formats every cell, truncating to maxWidth when it is positive.
func adminCells(columns []string, rows []schema.Row, maxWidth int) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, len(columns))
		for i, c := range columns {
			v, ok := r[c]
			if !ok || v == nil {
				continue
			}
			line[i] = fmt.Sprint(v)
			if maxWidth > 0 {
				line[i] = contract.TruncateText(line[i], maxWidth)
			}
		}
		cells = append(cells, line)
	}
	return cells
}

func writeAdminTable(w io.Writer, table string, columns []string, rows []schema.Row, cfg *contract.Config) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "No rows in %s\n", table)
		return err
	}
	t := newTable(w, columns)
	if err := t.Bulk(adminCells(columns, rows, getMaxNameWidth(cfg, len(columns)-1))); err != nil {
		return err
	}
	if err := t.Render(); err != nil {
		return err
	}
	return writeSummary(w, fmt.Sprintf("Showing %d rows of %s", len(rows), table))
}
