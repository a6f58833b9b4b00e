package cmd

import (
	"github.com/huangsam/shipboard/core"
	"github.com/spf13/cobra"
)

// timelineCmd shows cumulative releases over time.
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Track cumulative releases per developer by month or sprint",
	Long: `Show how each developer's release count accumulates over the period.

Monthly buckets come from the team-monthly rollup, falling back to counting releases when
the backend has none. Sprint buckets come from the team-sprint rollup.

Examples:
  # Monthly timeline for the year
  shipboard timeline --from 2024-01-01 --to 2024-12-31

  # Sprint-by-sprint timeline as an HTML chart
  shipboard timeline --granularity sprint --output html --output-file timeline.html`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("timeline", core.ExecuteTimeline)
	},
}
