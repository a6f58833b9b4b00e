package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/internal/parquet"
	"github.com/huangsam/shipboard/schema"
)

// breakdownsView renders the per-developer release type breakdown.
func breakdownsView(breakdowns []schema.DeveloperBreakdown, periodLabel string, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "developers",
		duration: duration,
		data:     breakdowns,
		table: func(w io.Writer) error {
			return writeBreakdownsTable(w, breakdowns, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeBreakdownsCSV(w, breakdowns)
		},
		charts: func() []components.Charter {
			return []components.Charter{breakdownChart(breakdowns)}
		},
		parquet: func(path string) error {
			return parquet.WriteDeveloperRowsParquet(parquet.ConvertBreakdowns(breakdowns, periodLabel), path)
		},
	}
}

func writeBreakdownsTable(w io.Writer, breakdowns []schema.DeveloperBreakdown, cfg *contract.Config) error {
	_, fmtPct := createFormatters(cfg.Precision)
	table := newTable(w, []string{"Rank", "Developer", "Total", "Feat", "Fix", "Refacto", "Chore"})

	nameWidth := getMaxNameWidth(cfg, 6)
	var data [][]string
	total := 0
	for i, b := range breakdowns {
		total += b.Breakdown.Total
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(b.DisplayName, nameWidth),
			strconv.Itoa(b.Breakdown.Total),
			fmt.Sprintf("%d (%s)", b.Breakdown.Feat, fmtPct(b.Percentages.Feat)),
			fmt.Sprintf("%d (%s)", b.Breakdown.Fix, fmtPct(b.Percentages.Fix)),
			fmt.Sprintf("%d (%s)", b.Breakdown.Refacto, fmtPct(b.Percentages.Refacto)),
			fmt.Sprintf("%d (%s)", b.Breakdown.Chore, fmtPct(b.Percentages.Chore)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeSummary(w, fmt.Sprintf("Showing %d developers (total releases: %d)", len(breakdowns), total))
}

func writeBreakdownsCSV(w *csv.Writer, breakdowns []schema.DeveloperBreakdown) error {
	header := []string{
		"rank", "developer_key", "display_name", "total",
		"feat", "fix", "refacto", "chore",
		"feat_pct", "fix_pct", "refacto_pct", "chore_pct",
	}
	rows := make([][]string, len(breakdowns))
	for i, b := range breakdowns {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			b.DeveloperKey,
			b.DisplayName,
			strconv.Itoa(b.Breakdown.Total),
			strconv.Itoa(b.Breakdown.Feat),
			strconv.Itoa(b.Breakdown.Fix),
			strconv.Itoa(b.Breakdown.Refacto),
			strconv.Itoa(b.Breakdown.Chore),
			strconv.Itoa(b.Percentages.Feat),
			strconv.Itoa(b.Percentages.Fix),
			strconv.Itoa(b.Percentages.Refacto),
			strconv.Itoa(b.Percentages.Chore),
		}
	}
	return writeCSVWithHeader(w, header, rows)
}
