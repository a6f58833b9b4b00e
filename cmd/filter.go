package cmd

import (
	"github.com/huangsam/shipboard/core"
	"github.com/spf13/cobra"
)

// filterCmd manages the saved board filter.
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Manage the saved board filter",
	Long: `Manage the board filter remembered in the preferences store.

Any command run with period flags (--mode, --sprint-id, --from, --to) saves them as the
last choice. Commands run without period flags use all time, or the saved filter when
--use-saved-filter is given.

Subcommands:
  show  - Print the saved filter and its resolved period
  set   - Save the filter given by the period flags
  clear - Reset the saved filter to all time`,
}

// filterShowCmd prints the saved filter.
var filterShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the saved filter and its resolved period",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("filter show", core.ExecuteFilterShow)
	},
}

// filterSetCmd saves a filter.
var filterSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the filter given by the period flags",
	Long: `Validate and save the filter given by the period flags.

Examples:
  shipboard filter set --sprint-id 42
  shipboard filter set --from 2024-01-01 --to 2024-03-31`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("filter set", core.ExecuteFilterSet)
	},
}

// filterClearCmd resets the filter.
var filterClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Reset the saved filter to all time",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("filter clear", core.ExecuteFilterClear)
	},
}
