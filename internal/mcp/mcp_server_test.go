package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/huangsam/shipboard/internal/apiclient"
	"github.com/huangsam/shipboard/internal/contract"
	mcp_internal "github.com/huangsam/shipboard/internal/mcp"
	"github.com/huangsam/shipboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Output:         schema.JSONOut,
		Limit:          contract.DefaultLimit,
		Filter:         schema.BoardFilter{Mode: schema.AllMode},
		Granularity:    schema.MonthlyTimeline,
		OwnershipScope: schema.RepoScope,
	}
}

// stubFetcher answers every collection call with a two-developer team.
func stubFetcher() *apiclient.MockFetcher {
	f := &apiclient.MockFetcher{}
	f.On("FetchSprints", mock.Anything).Return([]schema.Sprint{
		{ID: 5, Number: 12, StartDate: "2024-03-01", EndDate: "2024-03-14"},
	}, nil)
	f.On("FetchDevelopers", mock.Anything, mock.Anything).Return([]schema.DeveloperProfile{
		{DeveloperKey: "ana", DisplayName: "Ana Lima"},
		{DeveloperKey: "raj", DisplayName: "Raj Patel"},
	}, nil)
	f.On("FetchTeamMonthly", mock.Anything, mock.Anything).Return([]schema.TeamMonthlyRow(nil), nil)
	f.On("FetchTeamSprint", mock.Anything, mock.Anything).Return([]schema.TeamSprintRow(nil), nil)
	f.On("FetchBugFixes", mock.Anything, mock.Anything).Return([]schema.BugFixDetail{
		{ID: 1, AuthorKey: "ana", FixerKey: "raj", Severity: schema.MediumSeverity},
	}, nil)
	f.On("FetchProjects", mock.Anything, mock.Anything).Return([]schema.Project{
		{ID: 7, Name: "Payments", Releases: []schema.ProjectRelease{{ReleaseID: 1}}},
	}, nil)
	f.On("FetchProjectQuality", mock.Anything, mock.Anything).Return([]schema.ProjectQuality(nil), nil)
	f.On("FetchIncidents", mock.Anything, mock.Anything).Return([]schema.Incident{
		{ID: 1, Date: "2024-03-02", DeveloperKey: "ana", Severity: schema.CriticalSeverity},
		{ID: 2, Date: "2024-03-03", DeveloperKey: "raj", Severity: schema.LowSeverity},
	}, nil)
	f.On("FetchBaseBranches", mock.Anything, mock.Anything).Return([]schema.BaseBranch(nil), nil)
	f.On("FetchRepoMatrix", mock.Anything, mock.Anything).Return([]schema.RepoMatrixEntry(nil), nil)
	f.On("FetchReleases", mock.Anything, mock.Anything, mock.Anything).Return([]schema.Release{
		{ID: 1, ReleaseDate: "2024-01-15", ReleaseType: schema.FeatRelease, DeveloperKey: "ana", RepositoryName: "billing"},
		{ID: 2, ReleaseDate: "2024-04-02", ReleaseType: schema.FixRelease, DeveloperKey: "raj", RepositoryName: "billing"},
		{ID: 3, ReleaseDate: "2024-04-20", ReleaseType: schema.FixRelease, DeveloperKey: "raj", RepositoryName: "billing"},
	}, nil)
	return f
}

func callTool(t *testing.T, fetcher contract.Fetcher, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), fetcher, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	// Validation fails before the backend is reached
	fetcher := &apiclient.MockFetcher{}

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		wantErr string
	}{
		{"sprint mode without id", "get_coverage", map[string]any{"mode": "sprint"}, "--sprint-id is required"},
		{"unknown mode", "get_dashboard", map[string]any{"mode": "weekly"}, "invalid mode"},
		{"reversed range", "get_quarter_deltas", map[string]any{"from": "2024-05-01", "to": "2024-01-01"}, "must not be after"},
		{"bad date", "get_bugfix_matrix", map[string]any{"from": "01/02/2024"}, "invalid --from"},
		{"bad granularity", "get_timeline", map[string]any{"granularity": "weekly"}, "invalid granularity"},
		{"bad scope", "get_ownership", map[string]any{"scope": "team"}, "invalid scope"},
		{"missing compare bound", "compare_periods", map[string]any{"base_from": "2024-01-01"}, "must all be set"},
		{"missing project id", "summarize_project", map[string]any{}, "project_id must be a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, fetcher, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.wantErr)
		})
	}
	fetcher.AssertNotCalled(t, "FetchSprints", mock.Anything)
}

func TestMCPServerHandlers_BackendError(t *testing.T) {
	fetcher := &apiclient.MockFetcher{}
	fetcher.On("FetchSprints", mock.Anything).Return(nil, errors.New("connection refused"))

	res := callTool(t, fetcher, "get_dashboard", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "connection refused")
}

func TestMCPServerHandlers_ResolvePeriod(t *testing.T) {
	res := callTool(t, stubFetcher(), "resolve_period", map[string]any{"sprint_id": 5.0})
	require.False(t, res.IsError, resultText(t, res))

	var payload struct {
		Filter     schema.BoardFilter      `json:"filter"`
		Resolution schema.PeriodResolution `json:"resolution"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	assert.Equal(t, schema.SprintMode, payload.Filter.Mode)
	assert.Equal(t, "Sprint 12 (2024-03-01 → 2024-03-14)", payload.Resolution.Label)
}

func TestMCPServerHandlers_Views(t *testing.T) {
	t.Run("type breakdown is ranked and limited", func(t *testing.T) {
		res := callTool(t, stubFetcher(), "get_type_breakdown", map[string]any{"limit": 1.0})
		require.False(t, res.IsError, resultText(t, res))

		var breakdowns []schema.DeveloperBreakdown
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &breakdowns))
		require.Len(t, breakdowns, 1)
		assert.Equal(t, "raj", breakdowns[0].DeveloperKey)
		assert.Equal(t, 2, breakdowns[0].Breakdown.Fix)
	})

	t.Run("bug fix matrix", func(t *testing.T) {
		res := callTool(t, stubFetcher(), "get_bugfix_matrix", nil)
		require.False(t, res.IsError, resultText(t, res))

		var matrix schema.BugFixMatrix
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &matrix))
		assert.Equal(t, 2, matrix.TotalWeight)
	})

	t.Run("quarter deltas in range", func(t *testing.T) {
		res := callTool(t, stubFetcher(), "get_quarter_deltas", map[string]any{"from": "2024-01-01", "to": "2024-12-31"})
		require.False(t, res.IsError, resultText(t, res))

		var quarters []schema.QuarterDelta
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &quarters))
		require.Len(t, quarters, 2)
		assert.Nil(t, quarters[0].DeltaPct)
		require.NotNil(t, quarters[1].DeltaPct)
		assert.Equal(t, 100, *quarters[1].DeltaPct)
	})

	t.Run("repo ownership", func(t *testing.T) {
		res := callTool(t, stubFetcher(), "get_ownership", map[string]any{"scope": "repo"})
		require.False(t, res.IsError, resultText(t, res))

		var results []schema.OwnershipResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "raj", results[0].Owner)
	})

	t.Run("incidents with limit", func(t *testing.T) {
		res := callTool(t, stubFetcher(), "get_incidents", map[string]any{"limit": 1.0})
		require.False(t, res.IsError, resultText(t, res))

		var payload struct {
			Summary   []schema.IncidentSummary `json:"summary"`
			Incidents []schema.Incident        `json:"incidents"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
		assert.Len(t, payload.Incidents, 1)
		assert.Len(t, payload.Summary, 2)
	})
}

func TestMCPServerHandlers_SummarizeProject(t *testing.T) {
	fetcher := &apiclient.MockFetcher{}
	fetcher.On("GenerateSummary", mock.Anything, int64(7)).Return("Card payments shipped.", nil)
	fetcher.On("FetchProjects", mock.Anything, "").Return([]schema.Project{{ID: 7, Name: "Payments"}}, nil)

	res := callTool(t, fetcher, "summarize_project", map[string]any{"project_id": 7.0})
	require.False(t, res.IsError, resultText(t, res))

	var project schema.Project
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &project))
	assert.Equal(t, "Payments", project.Name)
	assert.Equal(t, "Card payments shipped.", project.AISummary)
}
