package cmd

import (
	"github.com/huangsam/shipboard/core"
	"github.com/spf13/cobra"
)

// ownershipCmd shows bus factor and owners.
var ownershipCmd = &cobra.Command{
	Use:   "ownership",
	Short: "Show bus factor and owner per repository or project",
	Long: `Compute the bus factor of each repository or project from its contributors.

A contributor holding more than half of the releases owns the target; otherwise it is
shared. Targets with the lowest bus factor are listed first.

Examples:
  # Riskiest repositories
  shipboard ownership --limit 10

  # Project ownership for the current quarter
  shipboard ownership --scope project --from 2024-04-01 --to 2024-06-30`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("ownership", core.ExecuteOwnership)
	},
}
