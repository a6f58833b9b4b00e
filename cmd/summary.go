package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/shipboard/core"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/spf13/cobra"
)

// parseProjectID parses a positive project ID argument.
func parseProjectID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q: must be a positive integer", arg)
	}
	return id, nil
}

// summaryCmd generates a project summary.
var summaryCmd = &cobra.Command{
	Use:   "summary <project-id>",
	Short: "Generate and print the summary of a project",
	Long: `Ask the backend to generate a summary of a project from its releases, then print
the project with the new summary.

Examples:
  shipboard summary 12
  shipboard summary 12 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		projectID, err := parseProjectID(args[0])
		if err != nil {
			contract.LogFatal("Cannot summarize project", err)
		}
		if err := core.ExecuteProjectSummary(rootCtx, cfg, services(), projectID); err != nil {
			contract.LogFatal("Cannot summarize project", err)
		}
	},
}
