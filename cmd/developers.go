package cmd

import (
	"github.com/huangsam/shipboard/core"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/spf13/cobra"
)

// runExecutor runs a core executor with the shared services, exiting on failure.
func runExecutor(what string, executeFunc core.ExecutorFunc) {
	if err := executeFunc(rootCtx, cfg, services()); err != nil {
		contract.LogFatal("Cannot run "+what, err)
	}
}

// developersCmd shows the release type breakdown per developer.
var developersCmd = &cobra.Command{
	Use:   "developers",
	Short: "Show release type breakdowns of the most active developers.",
	Long: `Break down each developer's releases by type (feat, fix, refacto, chore) with percentages.

Developers with a precomputed breakdown use it as is; everyone else is counted from
their releases in the period. Developers are ranked by total releases.

Examples:
  # Most active developers of all time
  shipboard developers --limit 10

  # Breakdown for one sprint
  shipboard developers --sprint-id 42

  # Breakdown for a quarter, exported to Parquet
  shipboard developers --from 2024-01-01 --to 2024-03-31 --output parquet --output-file q1.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("developer breakdown", core.ExecuteDevelopers)
	},
}
