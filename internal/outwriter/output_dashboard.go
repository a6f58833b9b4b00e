package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/internal/parquet"
	"github.com/huangsam/shipboard/schema"
)

// dashboardView renders every view of one period. CSV has no single shape for it,
// and Parquet output holds the developer breakdowns.
func dashboardView(dashboard schema.Dashboard, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "dashboard",
		duration: duration,
		data:     dashboard,
		table: func(w io.Writer) error {
			return writeDashboardTables(w, dashboard, cfg)
		},
		charts: func() []components.Charter {
			return dashboardCharts(dashboard, cfg)
		},
		parquet: func(path string) error {
			return parquet.WriteDeveloperRowsParquet(parquet.ConvertBreakdowns(dashboard.Breakdowns, dashboard.Period.Label), path)
		},
	}
}

func timelineFor(dashboard schema.Dashboard, cfg *contract.Config) schema.TimelineResult {
	if cfg.Granularity == schema.SprintTimeline {
		return dashboard.SprintTimeline
	}
	return dashboard.MonthlyTimeline
}

func ownershipFor(dashboard schema.Dashboard, cfg *contract.Config) []schema.OwnershipResult {
	if cfg.OwnershipScope == schema.ProjectScope {
		return dashboard.ProjectOwnership
	}
	return dashboard.RepoOwnership
}

// writeDashboardTables prints one titled section per view.
func writeDashboardTables(w io.Writer, dashboard schema.Dashboard, cfg *contract.Config) error {
	sections := []struct {
		title string
		write func() error
	}{
		{"Developers", func() error { return writeBreakdownsTable(w, dashboard.Breakdowns, cfg) }},
		{"Timeline", func() error { return writeTimelineTable(w, timelineFor(dashboard, cfg), cfg) }},
		{"Bug fixes", func() error { return writeBugFixTable(w, dashboard.BugFixMatrix, cfg) }},
		{"Ownership", func() error { return writeOwnershipTable(w, ownershipFor(dashboard, cfg), cfg) }},
		{"Coverage", func() error { return writeCoverageTables(w, dashboard.Coverage, cfg) }},
		{"Quarters", func() error { return writeQuartersTable(w, dashboard.Quarters, cfg) }},
		{"Incidents", func() error { return writeIncidentSummaryTable(w, dashboard.Incidents, cfg) }},
	}

	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", s.title); err != nil {
			return err
		}
		if err := s.write(); err != nil {
			return fmt.Errorf("%s: %w", s.title, err)
		}
	}
	return nil
}

// writeIncidentSummaryTable prints only the severity counts of the incidents.
func writeIncidentSummaryTable(w io.Writer, summary []schema.IncidentSummary, cfg *contract.Config) error {
	table := newTable(w, []string{"Severity", "Incidents"})
	var data [][]string
	total := 0
	for _, s := range summary {
		total += s.Count
		data = append(data, []string{severityLabel(s.Severity, cfg), fmt.Sprint(s.Count)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeSummary(w, fmt.Sprintf("Total incidents: %d", total))
}

func dashboardCharts(dashboard schema.Dashboard, cfg *contract.Config) []components.Charter {
	charters := []components.Charter{
		breakdownChart(dashboard.Breakdowns),
		timelineChart(timelineFor(dashboard, cfg)),
		bugFixHeatMap(dashboard.BugFixMatrix),
		ownershipChart(ownershipFor(dashboard, cfg)),
	}
	charters = append(charters, coverageCharts(dashboard.Coverage)...)
	return append(charters,
		quartersChart(dashboard.Quarters),
		incidentsChart(dashboard.Incidents),
	)
}
