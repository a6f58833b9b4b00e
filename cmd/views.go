package cmd

import (
	"github.com/huangsam/shipboard/core"
	"github.com/spf13/cobra"
)

// bugfixCmd shows who fixed whose bugs.
var bugfixCmd = &cobra.Command{
	Use:   "bugfix",
	Short: "Show the severity-weighted author x fixer bug-fix matrix",
	Long: `Build a matrix of bug authors (rows) against fixers (columns).

Each fix is weighted by severity: critical 4, high 3, medium 2, low 1.
Diagonal cells are auto fixes, where developers fixed their own bugs.

Examples:
  shipboard bugfix
  shipboard bugfix --sprint-id 42 --output csv --output-file bugfix.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("bug-fix matrix", core.ExecuteBugFix)
	},
}

// coverageCmd shows project coverage.
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Show the share of releases linked to a project",
	Long: `Split dated releases into project-associated and orphan releases.

Coverage is reported globally, per developer and per month.

Examples:
  shipboard coverage
  shipboard coverage --from 2024-01-01 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("coverage", core.ExecuteCoverage)
	},
}

// quartersCmd shows quarter-over-quarter deltas.
var quartersCmd = &cobra.Command{
	Use:   "quarters",
	Short: "Show release totals per quarter with quarter-over-quarter change",
	Long: `Count dated releases per calendar quarter and compare each quarter with the one before.

The first quarter, and any quarter following an empty one, has no delta.

Examples:
  shipboard quarters
  shipboard quarters --output html --output-file quarters.html`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("quarterly deltas", core.ExecuteQuarters)
	},
}

// incidentsCmd lists incidents.
var incidentsCmd = &cobra.Command{
	Use:   "incidents",
	Short: "List production incidents with counts per severity",
	Long: `List the incidents of the period, most severe first in the summary.

Examples:
  shipboard incidents --limit 20
  shipboard incidents --sprint-id 42 --output yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("incident report", core.ExecuteIncidents)
	},
}

// dashboardCmd prints every view.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show every delivery view of the period at once",
	Long: `Refresh the board once and print developers, timeline, bug fixes, ownership,
coverage, quarters and incidents together.

When a history backend is configured, every refresh also records a snapshot of the
per-developer metrics for trend tracking.

Examples:
  shipboard dashboard
  shipboard dashboard --use-saved-filter
  shipboard dashboard --output html --output-file board.html`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("dashboard", core.ExecuteDashboard)
	},
}
