package core

import (
	"testing"

	"github.com/huangsam/shipboard/core/period"
	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterReleases(t *testing.T) {
	releases := fixtureData().Releases

	t.Run("unbounded keeps undated releases", func(t *testing.T) {
		kept := FilterReleases(releases, schema.PeriodResolution{})
		assert.Len(t, kept, 5)
	})

	t.Run("half open range", func(t *testing.T) {
		res := period.Resolve(schema.BoardFilter{Mode: schema.RangeMode, From: "2024-02-06"}, nil)
		kept := FilterReleases(releases, res)
		require.Len(t, kept, 2)
		assert.Equal(t, int64(3), kept[0].ID)
		assert.Equal(t, int64(4), kept[1].ID)
	})

	t.Run("inclusive upper bound", func(t *testing.T) {
		res := period.Resolve(schema.BoardFilter{Mode: schema.RangeMode, To: "2024-02-05"}, nil)
		kept := FilterReleases(releases, res)
		require.Len(t, kept, 2)
		assert.Equal(t, int64(2), kept[1].ID)
	})
}

func TestBreakdowns(t *testing.T) {
	data := fixtureData()
	data.Releases = append(data.Releases, schema.Release{ID: 9, ReleaseType: schema.FixRelease, DeveloperKey: "ghost"})

	result := Breakdowns(data.Developers, data.Releases)
	require.Len(t, result, 3)

	alice := result[0]
	assert.Equal(t, "Alice Chen", alice.DisplayName)
	assert.Equal(t, schema.TypeBreakdown{Feat: 2, Fix: 1, Total: 3}, alice.Breakdown, "profile breakdown wins")
	assert.Equal(t, schema.TypePercentages{Feat: 67, Fix: 33}, alice.Percentages)

	bob := result[1]
	assert.Equal(t, schema.TypeBreakdown{Feat: 1, Chore: 1, Total: 2}, bob.Breakdown, "counted from releases")
	assert.Equal(t, schema.TypePercentages{Feat: 50, Chore: 50}, bob.Percentages)

	ghost := result[2]
	assert.Equal(t, "ghost", ghost.DisplayName, "unknown developers are appended by key")
	assert.Equal(t, 100, ghost.Percentages.Fix)
}

func TestMonthlyTimelineFallsBackToReleases(t *testing.T) {
	data := fixtureData()

	result := MonthlyTimeline(data, FilterReleases(data.Releases, schema.PeriodResolution{}))
	assert.Equal(t, schema.MonthlyTimeline, result.Granularity)
	assert.ElementsMatch(t, []string{"Alice Chen", "Bob Martin"}, result.Developers)

	last := result.Points[len(result.Points)-1]
	assert.Equal(t, "2024-04", last.Period)
	assert.Equal(t, 3, last.Cumulative["Alice Chen"])
	assert.Equal(t, 1, last.Cumulative["Bob Martin"], "undated releases have no month")
}

func TestMonthlyTimelinePrefersTeamRows(t *testing.T) {
	data := fixtureData()
	data.TeamMonthly = []schema.TeamMonthlyRow{
		{Month: "2023-12", Developer: "Alice Chen", Releases: 5},
	}

	result := MonthlyTimeline(data, data.Releases)
	require.Len(t, result.Points, 1)
	assert.Equal(t, "2023-12", result.Points[0].Period)
	assert.Equal(t, 5, result.Points[0].Cumulative["Alice Chen"])
}

func TestRepoOwnership(t *testing.T) {
	data := fixtureData()

	t.Run("from releases", func(t *testing.T) {
		results := RepoOwnership(data, data.Releases, 0)
		require.Len(t, results, 2)
		assert.Equal(t, "api", results[0].Name, "ties on bus factor rank by releases")
		assert.Equal(t, "alice", results[0].Owner)
		assert.Equal(t, 3, results[0].TotalReleases)
		assert.Equal(t, "web", results[1].Name)
	})

	t.Run("repo matrix wins and limit applies", func(t *testing.T) {
		data.RepoMatrix = []schema.RepoMatrixEntry{
			{RepositoryName: "infra", DeveloperKey: "alice", ReleaseCount: 2},
			{RepositoryName: "infra", DeveloperKey: "bob", ReleaseCount: 2},
			{RepositoryName: "docs", DeveloperKey: "bob", ReleaseCount: 1},
		}
		results := RepoOwnership(data, data.Releases, 1)
		require.Len(t, results, 1)
		assert.Equal(t, "infra", results[0].Name)
		assert.Equal(t, schema.SharedOwner, results[0].Owner)
	})

	t.Run("base branches label repositories", func(t *testing.T) {
		data := fixtureData()
		data.BaseBranches = []schema.BaseBranch{{RepositoryName: "api", Branch: "main"}}
		results := RepoOwnership(data, data.Releases, 0)
		require.Len(t, results, 2)
		assert.Equal(t, "main", results[0].BaseBranch)
		assert.Empty(t, results[1].BaseBranch, "web has no known base branch")
	})
}

func TestProjectOwnership(t *testing.T) {
	results := ProjectOwnership(fixtureData(), 0)
	require.Len(t, results, 1)
	assert.Equal(t, "Checkout", results[0].Name)
	assert.Equal(t, schema.ProjectScope, results[0].Scope)
	assert.Equal(t, schema.SharedOwner, results[0].Owner, "an even split has no majority owner")
	assert.Equal(t, 1, results[0].BusFactor, "one of two equal contributors already covers half")
}

func TestProjectOwnershipKeysByProjectID(t *testing.T) {
	data := fixtureData()
	data.ProjectQuality = []schema.ProjectQuality{
		{ProjectID: 1, ProjectName: "Checkout", Contributors: []schema.Contributor{{DeveloperKey: "alice", ReleaseCount: 3}}},
		{ProjectID: 2, ProjectName: "Checkout", Contributors: []schema.Contributor{{DeveloperKey: "bob", ReleaseCount: 2}}},
		{ProjectID: 1, ProjectName: "Checkout", Contributors: []schema.Contributor{{DeveloperKey: "bob", ReleaseCount: 1}}},
	}

	results := ProjectOwnership(data, 0)
	require.Len(t, results, 2, "projects sharing a name stay apart")
	assert.Equal(t, "Checkout", results[0].Name)
	assert.Equal(t, 4, results[0].TotalReleases, "rows of the same project are merged")
	assert.Equal(t, "alice", results[0].Owner)
	assert.Equal(t, "Checkout", results[1].Name)
	assert.Equal(t, 2, results[1].TotalReleases)
	assert.Equal(t, "bob", results[1].Owner)
}

func TestBuildDashboard(t *testing.T) {
	data := fixtureData()
	res := period.Resolve(schema.BoardFilter{Mode: schema.AllMode}, nil)

	dashboard := BuildDashboard(data, res, DashboardOptions{})

	assert.Equal(t, res, dashboard.Period)
	assert.Len(t, dashboard.Breakdowns, 2)
	assert.Equal(t, []string{"alice", "bob"}, dashboard.BugFixMatrix.Developers)
	assert.Equal(t, [][]int{{4, 3}, {0, 0}}, dashboard.BugFixMatrix.Cells)
	assert.Equal(t, 7, dashboard.BugFixMatrix.TotalWeight)
	assert.Equal(t, []schema.IncidentSummary{
		{Severity: schema.HighSeverity, Count: 2},
		{Severity: schema.LowSeverity, Count: 1},
	}, dashboard.Incidents)
	assert.Equal(t, 50, dashboard.Coverage.Global.Pct)
	assert.Len(t, dashboard.Quarters, 2)
	assert.Len(t, dashboard.SprintTimeline.Points, 2)

	again := BuildDashboard(data, res, DashboardOptions{})
	assert.Equal(t, dashboard, again, "derivation is deterministic")
	assert.Equal(t, fixtureData(), data, "inputs are left untouched")
}

func TestScopeDataLeavesQueriedPeriodsAlone(t *testing.T) {
	data := fixtureData()
	sprintID := int64(3)

	for _, filter := range []schema.BoardFilter{
		{Mode: schema.AllMode},
		{Mode: schema.SprintMode, SprintID: &sprintID},
		{Mode: schema.RangeMode, From: "2024-02-01", To: "2024-02-29"},
	} {
		res := period.Resolve(filter, fixtureSprints())
		assert.False(t, ScopedLocally(res), "%+v", filter)
		assert.Equal(t, data, ScopeData(data, res))
	}

	assert.True(t, ScopedLocally(period.Resolve(schema.BoardFilter{Mode: schema.RangeMode, To: "2024-02-29"}, nil)))
}

func TestBuildDashboardHalfOpenRange(t *testing.T) {
	data := fixtureData()
	data.Sprints = fixtureSprints()
	data.TeamMonthly = []schema.TeamMonthlyRow{{Month: "2024-01", Developer: "Alice Chen", Releases: 5}}
	data.RepoMatrix = []schema.RepoMatrixEntry{{RepositoryName: "infra", DeveloperKey: "alice", ReleaseCount: 9}}
	data.BugFixes[0].FixDate = "2024-01-20"
	data.BugFixes[1].BuggedDate = "2024-03-01"
	data.Projects[0].Releases = []schema.ProjectRelease{
		{ReleaseID: 1, ReleaseDate: "2024-01-10", DeveloperKey: "alice"},
		{ReleaseID: 3, ReleaseDate: "2024-02-20", DeveloperKey: "bob"},
	}
	untouched := fixtureData()
	untouched.Sprints = data.Sprints
	untouched.TeamMonthly = data.TeamMonthly
	untouched.RepoMatrix = data.RepoMatrix
	untouched.BugFixes[0].FixDate = "2024-01-20"
	untouched.BugFixes[1].BuggedDate = "2024-03-01"
	untouched.Projects[0].Releases = data.Projects[0].Releases

	res := period.Resolve(schema.BoardFilter{Mode: schema.RangeMode, From: "2024-02-15"}, nil)
	require.Empty(t, res.QueryParams, "half-open ranges are not sent to the backend")

	dashboard := BuildDashboard(data, res, DashboardOptions{})

	// Releases 3 and 4 are in range; the undated release 5 is not.
	require.Len(t, dashboard.Releases, 2)
	require.Len(t, dashboard.Breakdowns, 2)
	assert.Equal(t, "alice", dashboard.Breakdowns[0].DeveloperKey)
	assert.Equal(t, schema.TypeBreakdown{Feat: 1, Total: 1}, dashboard.Breakdowns[0].Breakdown, "all-time profile counts are ignored")
	assert.Equal(t, schema.TypeBreakdown{Feat: 1, Total: 1}, dashboard.Breakdowns[1].Breakdown)

	assert.Equal(t, []schema.IncidentSummary{{Severity: schema.HighSeverity, Count: 1}}, dashboard.Incidents)
	assert.Equal(t, [][]int{{0, 3}, {0, 0}}, dashboard.BugFixMatrix.Cells, "the bug fixed in January is dropped")
	assert.Equal(t, 3, dashboard.BugFixMatrix.TotalWeight)

	require.Len(t, dashboard.MonthlyTimeline.Points, 2)
	assert.Equal(t, "2024-02", dashboard.MonthlyTimeline.Points[0].Period)
	assert.Len(t, dashboard.SprintTimeline.Points, 1, "sprint 7 ends before the range starts")

	names := make([]string, 0, len(dashboard.RepoOwnership))
	for _, r := range dashboard.RepoOwnership {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"api", "web"}, names, "the all-time repo matrix is not used")

	require.Len(t, dashboard.ProjectOwnership, 1)
	assert.Equal(t, "Checkout", dashboard.ProjectOwnership[0].Name)
	assert.Equal(t, 1, dashboard.ProjectOwnership[0].TotalReleases)
	assert.Equal(t, "bob", dashboard.ProjectOwnership[0].Owner)

	assert.Equal(t, untouched, data, "inputs are left untouched")
}
