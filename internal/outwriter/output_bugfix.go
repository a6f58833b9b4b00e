package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/huangsam/shipboard/core/algo"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// bugFixView renders the severity-weighted author x fixer matrix.
func bugFixView(matrix schema.BugFixMatrix, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "bug fixes",
		duration: duration,
		data:     matrix,
		table: func(w io.Writer) error {
			return writeBugFixTable(w, matrix, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeBugFixCSV(w, matrix)
		},
		charts: func() []components.Charter {
			return []components.Charter{bugFixHeatMap(matrix)}
		},
	}
}

// writeBugFixTable prints authors as rows and fixers as columns, plus row totals.
func writeBugFixTable(w io.Writer, matrix schema.BugFixMatrix, cfg *contract.Config) error {
	headers := []string{"Author \\ Fixer"}
	for _, label := range matrix.Labels {
		headers = append(headers, schema.AbbreviateName(label))
	}
	headers = append(headers, "Total")
	table := newTable(w, headers)

	nameWidth := getMaxNameWidth(cfg, len(matrix.Labels)+1)
	var data [][]string
	for i, row := range matrix.Cells {
		cells := []string{contract.TruncateText(matrix.Labels[i], nameWidth)}
		for j, val := range row {
			cell := strconv.Itoa(val)
			if i == j && val > 0 && cfg.UseColors {
				cell = contract.GoodColor.Sprint(cell)
			}
			cells = append(cells, cell)
		}
		cells = append(cells, strconv.Itoa(algo.RowTotal(matrix, i)))
		data = append(data, cells)
	}
	if len(matrix.Cells) > 0 {
		totals := []string{"Total"}
		for j := range matrix.Labels {
			totals = append(totals, strconv.Itoa(algo.ColumnTotal(matrix, j)))
		}
		data = append(data, append(totals, strconv.Itoa(matrix.TotalWeight)))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	summary := fmt.Sprintf("Total weight: %d (auto fixes: %d, cross fixes: %d)",
		matrix.TotalWeight, matrix.AutoFixes, matrix.CrossFixes)
	return writeSummary(w, summary)
}

// writeBugFixCSV writes the non-zero cells of the matrix.
func writeBugFixCSV(w *csv.Writer, matrix schema.BugFixMatrix) error {
	var rows [][]string
	for i, row := range matrix.Cells {
		for j, val := range row {
			if val == 0 {
				continue
			}
			rows = append(rows, []string{
				matrix.Developers[i],
				matrix.Developers[j],
				strconv.Itoa(val),
				strconv.FormatBool(i == j),
			})
		}
	}
	return writeCSVWithHeader(w, []string{"author", "fixer", "weight", "auto_fix"}, rows)
}
