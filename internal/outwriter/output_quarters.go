package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// quartersView renders release totals per quarter.
func quartersView(quarters []schema.QuarterDelta, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "quarters",
		duration: duration,
		data:     quarters,
		table: func(w io.Writer) error {
			return writeQuartersTable(w, quarters, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeQuartersCSV(w, quarters)
		},
		charts: func() []components.Charter {
			return []components.Charter{quartersChart(quarters)}
		},
	}
}

// formatDeltaPct renders a quarter delta with its direction. A nil delta has no previous quarter to compare to.
func formatDeltaPct(delta *int, useColors bool) string {
	if delta == nil {
		return "—"
	}
	switch {
	case *delta > 0:
		text := fmt.Sprintf("+%d%% ▲", *delta)
		if useColors {
			return contract.GoodColor.Sprint(text)
		}
		return text
	case *delta < 0:
		text := fmt.Sprintf("%d%% ▼", *delta)
		if useColors {
			return contract.CriticalColor.Sprint(text)
		}
		return text
	default:
		return "0%"
	}
}

func writeQuartersTable(w io.Writer, quarters []schema.QuarterDelta, cfg *contract.Config) error {
	table := newTable(w, []string{"Quarter", "Releases", "Δ"})

	var data [][]string
	total := 0
	for _, q := range quarters {
		total += q.Total
		data = append(data, []string{q.Quarter, strconv.Itoa(q.Total), formatDeltaPct(q.DeltaPct, cfg.UseColors)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeSummary(w, fmt.Sprintf("Showing %d quarters (total releases: %d)", len(quarters), total))
}

func writeQuartersCSV(w *csv.Writer, quarters []schema.QuarterDelta) error {
	rows := make([][]string, len(quarters))
	for i, q := range quarters {
		delta := ""
		if q.DeltaPct != nil {
			delta = strconv.Itoa(*q.DeltaPct)
		}
		rows[i] = []string{q.Quarter, strconv.Itoa(q.Total), delta}
	}
	return writeCSVWithHeader(w, []string{"quarter", "total", "delta_pct"}, rows)
}
