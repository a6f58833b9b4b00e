package cmd

import (
	"github.com/huangsam/shipboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the shipboard MCP server",
	Long:  `Launch an MCP server that lets AI agents query delivery metrics through standard tools.`,
	// stdio carries the protocol, so views are never written to stdout here
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, apiClient, storeManager)
	},
}
