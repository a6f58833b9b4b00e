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

// coverageView renders how many releases are linked to a project.
func coverageView(report schema.CoverageReport, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "coverage",
		duration: duration,
		data:     report,
		table: func(w io.Writer) error {
			return writeCoverageTables(w, report, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeCoverageCSV(w, report)
		},
		charts: func() []components.Charter {
			return coverageCharts(report)
		},
	}
}

func coverageLabel(pct int, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorCoverageLabel(pct)
	}
	return contract.GetPlainCoverageLabel(pct)
}

func coverageRow(name string, stat schema.CoverageStat, cfg *contract.Config) []string {
	_, fmtPct := createFormatters(cfg.Precision)
	return []string{
		name,
		strconv.Itoa(stat.Associated),
		strconv.Itoa(stat.Orphan),
		strconv.Itoa(stat.Total),
		fmtPct(stat.Pct),
		coverageLabel(stat.Pct, cfg),
	}
}

// writeCoverageTables prints the per developer table followed by the monthly table.
func writeCoverageTables(w io.Writer, report schema.CoverageReport, cfg *contract.Config) error {
	nameWidth := getMaxNameWidth(cfg, 5)

	devTable := newTable(w, []string{"Developer", "Associated", "Orphan", "Total", "Coverage", "Label"})
	var devData [][]string
	for _, d := range report.Developers {
		devData = append(devData, coverageRow(contract.TruncateText(d.DisplayName, nameWidth), d.CoverageStat, cfg))
	}
	devData = append(devData, coverageRow("All", report.Global, cfg))
	if err := devTable.Bulk(devData); err != nil {
		return err
	}
	if err := devTable.Render(); err != nil {
		return err
	}

	if len(report.Monthly) > 0 {
		monthTable := newTable(w, []string{"Month", "Associated", "Orphan", "Total", "Coverage", "Label"})
		var monthData [][]string
		for _, m := range report.Monthly {
			monthData = append(monthData, coverageRow(m.Month, m.CoverageStat, cfg))
		}
		if err := monthTable.Bulk(monthData); err != nil {
			return err
		}
		if err := monthTable.Render(); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d of %d releases linked to a project (%d%%)",
		report.Global.Associated, report.Global.Total, report.Global.Pct)
	return writeSummary(w, summary)
}

// writeCoverageCSV writes every coverage row with a scope column telling them apart.
func writeCoverageCSV(w *csv.Writer, report schema.CoverageReport) error {
	row := func(scope, key string, stat schema.CoverageStat) []string {
		return []string{
			scope, key,
			strconv.Itoa(stat.Associated),
			strconv.Itoa(stat.Orphan),
			strconv.Itoa(stat.Total),
			strconv.Itoa(stat.Pct),
		}
	}

	rows := [][]string{row("global", "", report.Global)}
	for _, d := range report.Developers {
		rows = append(rows, row("developer", d.DeveloperKey, d.CoverageStat))
	}
	for _, m := range report.Monthly {
		rows = append(rows, row("month", m.Month, m.CoverageStat))
	}
	return writeCSVWithHeader(w, []string{"scope", "key", "associated", "orphan", "total", "coverage_pct"}, rows)
}
