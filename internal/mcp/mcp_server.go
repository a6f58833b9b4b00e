// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// periodOptions are the arguments every period-scoped tool accepts.
func periodOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("mode", mcp.Description("Period mode (all, sprint, range). Inferred from the other arguments when omitted."), mcp.Enum("all", "sprint", "range")),
		mcp.WithNumber("sprint_id", mcp.Description("Sprint ID, required when mode is sprint.")),
		mcp.WithString("from", mcp.Description("Inclusive start date (YYYY-MM-DD) for range mode.")),
		mcp.WithString("to", mcp.Description("Inclusive end date (YYYY-MM-DD) for range mode.")),
	}
}

func newPeriodTool(name, description string, extra ...mcp.ToolOption) mcp.Tool {
	opts := append([]mcp.ToolOption{mcp.WithDescription(description)}, periodOptions()...)
	return mcp.NewTool(name, append(opts, extra...)...)
}

// NewMCPServer initializes and configures the shipboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Shipboard Delivery Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fetcher: fetcher,
		mgr:     mgr,
	}

	// --- 1. Tool: resolve_period ---
	s.AddTool(newPeriodTool("resolve_period",
		"Resolve a period filter against the sprint calendar into a label, date bounds and backend query.",
		mcp.WithBoolean("use_saved", mcp.Description("Resolve the saved board filter instead of the given arguments.")),
	), h.handleResolvePeriod)

	// --- 2. Tool: get_type_breakdown ---
	s.AddTool(newPeriodTool("get_type_breakdown",
		"Release counts and percentages per release type (feat, fix, refacto, chore) for each developer.",
		mcp.WithNumber("limit", mcp.Description("Limit the number of developers returned, most active first.")),
	), h.handleGetTypeBreakdown)

	// --- 3. Tool: get_timeline ---
	s.AddTool(newPeriodTool("get_timeline",
		"Cumulative releases per developer over months or sprints.",
		mcp.WithString("granularity", mcp.Description("Timeline buckets. Defaults to 'monthly'."), mcp.Enum("monthly", "sprint")),
	), h.handleGetTimeline)

	// --- 4. Tool: get_bugfix_matrix ---
	s.AddTool(newPeriodTool("get_bugfix_matrix",
		"Severity-weighted matrix of who fixed whose bugs. Diagonal cells are auto fixes."),
		h.handleGetBugFixMatrix)

	// --- 5. Tool: get_ownership ---
	s.AddTool(newPeriodTool("get_ownership",
		"Bus factor and owner per repository or project. An owner holds more than half of the releases.",
		mcp.WithString("scope", mcp.Description("Ownership scope. Defaults to 'repo'."), mcp.Enum("repo", "project")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results, riskiest first.")),
	), h.handleGetOwnership)

	// --- 6. Tool: get_coverage ---
	s.AddTool(newPeriodTool("get_coverage",
		"Share of releases linked to a project, globally, per developer and per month."),
		h.handleGetCoverage)

	// --- 7. Tool: get_quarter_deltas ---
	s.AddTool(newPeriodTool("get_quarter_deltas",
		"Release totals per quarter with the percentage change against the previous quarter."),
		h.handleGetQuarterDeltas)

	// --- 8. Tool: get_incidents ---
	s.AddTool(newPeriodTool("get_incidents",
		"Production incidents of the period with counts per severity.",
		mcp.WithNumber("limit", mcp.Description("Limit the number of incidents listed.")),
	), h.handleGetIncidents)

	// --- 9. Tool: get_dashboard ---
	s.AddTool(newPeriodTool("get_dashboard",
		"Every derived view of the period at once.",
		mcp.WithNumber("limit", mcp.Description("Limit the ownership lists.")),
	), h.handleGetDashboard)

	// --- 10. Tool: compare_periods ---
	s.AddTool(mcp.NewTool("compare_periods",
		mcp.WithDescription("Compare per-developer release activity between two date ranges."),
		mcp.WithString("base_from", mcp.Description("Start of the base range (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("base_to", mcp.Description("End of the base range (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("target_from", mcp.Description("Start of the target range (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("target_to", mcp.Description("End of the target range (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of developers returned.")),
	), h.handleComparePeriods)

	// --- 11. Tool: summarize_project ---
	s.AddTool(mcp.NewTool("summarize_project",
		mcp.WithDescription("Generate a summary of a project and return the project with the summary."),
		mcp.WithNumber("project_id", mcp.Description("The project ID."), mcp.Required()),
	), h.handleSummarizeProject)

	return s
}

// StartMCPServer starts the shipboard MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, fetcher, mgr)
	return server.ServeStdio(s)
}
