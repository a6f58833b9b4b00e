package cmd

import (
	"errors"

	"github.com/huangsam/shipboard/core"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd compares developer activity between two date ranges.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare developer release activity between two date ranges.",
	Long: `Compare per-developer release activity between a base and a target date range.

Ideal for:
- Quarter reviews - see who ramped up and who slowed down
- Onboarding - confirm new developers are shipping
- Ownership shifts - spot repositories that changed hands

Each row shows before/after releases, the delta, feat and fix deltas and owned repositories.
Developers whose activity did not change are left out.

Examples:
  # Compare two quarters
  shipboard compare --base-from 2024-01-01 --base-to 2024-03-31 --target-from 2024-04-01 --target-to 2024-06-30

  # Export the comparison to CSV
  shipboard compare --base-from 2024-01-01 --base-to 2024-01-31 --target-from 2024-02-01 --target-to 2024-02-29 --output csv --output-file compare.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		checkCompareAndExecute(core.ExecuteCompare)
	},
}

// checkCompareAndExecute validates compare mode and executes the given function.
func checkCompareAndExecute(executeFunc core.ExecutorFunc) {
	if !cfg.CompareMode {
		contract.LogFatal("Cannot run comparison", errors.New("--base-from, --base-to, --target-from and --target-to must be provided"))
	}
	runExecutor("comparison", executeFunc)
}
