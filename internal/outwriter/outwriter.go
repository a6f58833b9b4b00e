// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	mu          sync.Mutex
	periodLabel string // label of the last logged period, stamped on Parquet rows
}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// LogHeader prints the resolved period. Machine-readable formats stay header-free.
func (ow *OutWriter) LogHeader(res schema.PeriodResolution, cfg *contract.Config) {
	ow.mu.Lock()
	ow.periodLabel = res.Label
	ow.mu.Unlock()

	if cfg.Output != schema.TextOut || cfg.OutputFile != "" {
		return
	}
	fmt.Printf("📅 Period: %s\n", res.Label)
	if !res.Unbounded() {
		fmt.Printf("🔎 Range: %s → %s\n", boundOr(res.From, "beginning"), boundOr(res.To, "today"))
	}
}

func boundOr(bound *string, fallback string) string {
	if bound == nil {
		return fallback
	}
	return *bound
}

func (ow *OutWriter) currentPeriod() string {
	ow.mu.Lock()
	defer ow.mu.Unlock()
	return ow.periodLabel
}

// WriteBreakdowns prints the per-developer release type breakdown.
func (ow *OutWriter) WriteBreakdowns(breakdowns []schema.DeveloperBreakdown, cfg *contract.Config, duration time.Duration) error {
	return writeView(breakdownsView(breakdowns, ow.currentPeriod(), cfg, duration), cfg)
}

// WriteTimeline prints a cumulative timeline.
func (ow *OutWriter) WriteTimeline(result schema.TimelineResult, cfg *contract.Config, duration time.Duration) error {
	return writeView(timelineView(result, cfg, duration), cfg)
}

// WriteBugFixMatrix prints the author x fixer matrix.
func (ow *OutWriter) WriteBugFixMatrix(matrix schema.BugFixMatrix, cfg *contract.Config, duration time.Duration) error {
	return writeView(bugFixView(matrix, cfg, duration), cfg)
}

// WriteOwnership prints bus factor and owner results.
func (ow *OutWriter) WriteOwnership(results []schema.OwnershipResult, cfg *contract.Config, duration time.Duration) error {
	return writeView(ownershipView(results, cfg, duration), cfg)
}

// WriteCoverage prints the project coverage report.
func (ow *OutWriter) WriteCoverage(report schema.CoverageReport, cfg *contract.Config, duration time.Duration) error {
	return writeView(coverageView(report, cfg, duration), cfg)
}

// WriteQuarters prints quarter totals and deltas.
func (ow *OutWriter) WriteQuarters(quarters []schema.QuarterDelta, cfg *contract.Config, duration time.Duration) error {
	return writeView(quartersView(quarters, cfg, duration), cfg)
}

// WriteIncidents prints incidents and their severity counts.
func (ow *OutWriter) WriteIncidents(incidents []schema.Incident, summary []schema.IncidentSummary, cfg *contract.Config, duration time.Duration) error {
	return writeView(incidentsView(incidents, summary, cfg, duration), cfg)
}

// WriteDashboard prints every view of one period.
func (ow *OutWriter) WriteDashboard(dashboard schema.Dashboard, cfg *contract.Config, duration time.Duration) error {
	return writeView(dashboardView(dashboard, cfg, duration), cfg)
}

// WriteComparison prints comparison results using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return writeView(comparisonView(result, cfg, duration), cfg)
}

// WriteProjectSummary prints a project together with its generated summary.
func (ow *OutWriter) WriteProjectSummary(project schema.Project, cfg *contract.Config) error {
	return writeView(projectSummaryView(project, cfg), cfg)
}

// WriteFilter prints a board filter and what it resolves to.
func (ow *OutWriter) WriteFilter(filter schema.BoardFilter, res schema.PeriodResolution, cfg *contract.Config) error {
	return writeView(filterView(filter, res), cfg)
}

// WriteAdminRows prints raw admin table rows.
func (ow *OutWriter) WriteAdminRows(table string, rows []schema.Row, cfg *contract.Config) error {
	return writeView(adminRowsView(table, rows, cfg), cfg)
}
