package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/huangsam/shipboard/core"
	"github.com/huangsam/shipboard/core/algo"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fetcher contract.Fetcher
	mgr     contract.StoreManager
}

func (h *toolHandler) services() core.Services {
	return core.Services{Fetcher: h.fetcher, Stores: h.mgr, Logger: contract.Logger}
}

// periodConfig clones the base config and applies the period arguments of the request.
func (h *toolHandler) periodConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateFilter(cfg,
		request.GetString("mode", ""),
		int64(request.GetInt("sprint_id", 0)),
		request.GetString("from", ""),
		request.GetString("to", ""),
	)
	if err != nil {
		return nil, err
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}
	return cfg, nil
}

// dashboard runs one board refresh for the request without printing anything.
func (h *toolHandler) dashboard(ctx context.Context, request mcp.CallToolRequest) (schema.Dashboard, *contract.Config, *mcp.CallToolResult) {
	cfg, err := h.periodConfig(request)
	if err != nil {
		return schema.Dashboard{}, nil, mcp.NewToolResultError(fmt.Sprintf("invalid period parameters: %v", err))
	}
	dashboard, err := core.GetDashboard(core.WithSuppressHeader(ctx), cfg, h.services())
	if err != nil {
		return schema.Dashboard{}, nil, mcp.NewToolResultError(fmt.Sprintf("dashboard refresh failed: %v", err))
	}
	return dashboard, cfg, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleResolvePeriod(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.periodConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid period parameters: %v", err)), nil
	}
	cfg.UseSavedFilter = request.GetBool("use_saved", false)

	filter, res, err := core.ResolvePeriod(ctx, cfg, h.services())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("period resolution failed: %v", err)), nil
	}

	return jsonResult(map[string]any{"filter": filter, "resolution": res}), nil
}

func (h *toolHandler) handleGetTypeBreakdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dashboard, _, errResult := h.dashboard(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(algo.RankBreakdowns(slices.Clone(dashboard.Breakdowns), request.GetInt("limit", 0))), nil
}

func (h *toolHandler) handleGetTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	granularity := schema.TimelineGranularity(request.GetString("granularity", string(schema.MonthlyTimeline)))
	if _, ok := schema.ValidTimelineGranularities[granularity]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid granularity '%s'. must be monthly, sprint", granularity)), nil
	}

	dashboard, _, errResult := h.dashboard(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	if granularity == schema.SprintTimeline {
		return jsonResult(dashboard.SprintTimeline), nil
	}
	return jsonResult(dashboard.MonthlyTimeline), nil
}

func (h *toolHandler) handleGetBugFixMatrix(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dashboard, _, errResult := h.dashboard(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(dashboard.BugFixMatrix), nil
}

func (h *toolHandler) handleGetOwnership(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope := schema.OwnershipScope(request.GetString("scope", string(schema.RepoScope)))
	if _, ok := schema.ValidOwnershipScopes[scope]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scope '%s'. must be repo, project", scope)), nil
	}

	dashboard, _, errResult := h.dashboard(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	if scope == schema.ProjectScope {
		return jsonResult(dashboard.ProjectOwnership), nil
	}
	return jsonResult(dashboard.RepoOwnership), nil
}

func (h *toolHandler) handleGetCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dashboard, _, errResult := h.dashboard(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(dashboard.Coverage), nil
}

func (h *toolHandler) handleGetQuarterDeltas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dashboard, _, errResult := h.dashboard(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(dashboard.Quarters), nil
}

func (h *toolHandler) handleGetIncidents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.periodConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid period parameters: %v", err)), nil
	}
	if request.GetInt("limit", 0) <= 0 {
		cfg.Limit = 0
	}

	incidents, summary, err := core.GetIncidents(core.WithSuppressHeader(ctx), cfg, h.services())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard refresh failed: %v", err)), nil
	}
	return jsonResult(map[string]any{"summary": summary, "incidents": incidents}), nil
}

func (h *toolHandler) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dashboard, _, errResult := h.dashboard(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(dashboard), nil
}

func (h *toolHandler) handleComparePeriods(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateCompare(cfg,
		request.GetString("base_from", ""),
		request.GetString("base_to", ""),
		request.GetString("target_from", ""),
		request.GetString("target_to", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = l
	}

	result, err := core.GetComparison(ctx, cfg, h.services())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleSummarizeProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := int64(request.GetInt("project_id", 0))
	if projectID <= 0 {
		return mcp.NewToolResultError("project_id must be a positive integer"), nil
	}

	project, err := core.GetProjectSummary(ctx, h.services(), projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return jsonResult(project), nil
}
