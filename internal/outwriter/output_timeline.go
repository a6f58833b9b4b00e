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

// timelineView renders a cumulative timeline.
func timelineView(result schema.TimelineResult, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "timeline",
		duration: duration,
		data:     result,
		table: func(w io.Writer) error {
			return writeTimelineTable(w, result, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeTimelineCSV(w, result)
		},
		charts: func() []components.Charter {
			return []components.Charter{timelineChart(result)}
		},
	}
}

// writeTimelineTable prints one row per period and one column per developer.
// Only the first developers that fit the terminal get a column.
func writeTimelineTable(w io.Writer, result schema.TimelineResult, cfg *contract.Config) error {
	maxColumns := max(1, (getMaxNameWidth(cfg, 0)-10)/4)
	developers := result.Developers[:min(len(result.Developers), maxColumns)]

	headers := []string{"Period", "Total"}
	for _, dev := range developers {
		headers = append(headers, schema.AbbreviateName(dev))
	}
	table := newTable(w, headers)

	var data [][]string
	for _, p := range result.Points {
		row := []string{p.Period, strconv.Itoa(p.Total)}
		for _, dev := range developers {
			row = append(row, strconv.Itoa(p.Cumulative[dev]))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	summary := fmt.Sprintf("Showing %d %s periods for %d of %d developers",
		len(result.Points), result.Granularity, len(developers), len(result.Developers))
	return writeSummary(w, summary)
}

// writeTimelineCSV writes the timeline in long format: one row per period and developer.
func writeTimelineCSV(w *csv.Writer, result schema.TimelineResult) error {
	var rows [][]string
	for _, p := range result.Points {
		for _, dev := range result.Developers {
			rows = append(rows, []string{
				string(result.Granularity),
				p.Period,
				dev,
				strconv.Itoa(p.Cumulative[dev]),
				strconv.Itoa(p.Total),
			})
		}
	}
	return writeCSVWithHeader(w, []string{"granularity", "period", "developer", "cumulative", "period_total"}, rows)
}
