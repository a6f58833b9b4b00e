package agg

import (
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/team_monthly.json
var teamMonthlyFixture []byte

//go:embed testdata/releases.json
var releasesFixture []byte

func loadFixture[T any](t *testing.T, raw []byte) []T {
	t.Helper()
	var out []T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestCumulativeMonthly(t *testing.T) {
	rows := loadFixture[schema.TeamMonthlyRow](t, teamMonthlyFixture)

	result := Cumulative(schema.MonthlyTimeline, FromMonthly(rows))

	assert.Equal(t, schema.MonthlyTimeline, result.Granularity)
	assert.Equal(t, []string{"Alice Chen", "Bob Martin", "Carol Diaz"}, result.Developers)
	require.Len(t, result.Points, 3)

	assert.Equal(t, "2024-01", result.Points[0].Period)
	assert.Equal(t, 4, result.Points[0].Total)
	assert.Equal(t, map[string]int{"Alice Chen": 3, "Bob Martin": 1, "Carol Diaz": 0}, result.Points[0].Cumulative)

	assert.Equal(t, "2024-02", result.Points[1].Period)
	assert.Equal(t, 2, result.Points[1].Total)
	assert.Equal(t, map[string]int{"Alice Chen": 3, "Bob Martin": 3, "Carol Diaz": 0}, result.Points[1].Cumulative)

	assert.Equal(t, "2024-03", result.Points[2].Period)
	assert.Equal(t, 5, result.Points[2].Total)
	assert.Equal(t, map[string]int{"Alice Chen": 7, "Bob Martin": 3, "Carol Diaz": 1}, result.Points[2].Cumulative)
}

func TestCumulativeSprintOrdersNumerically(t *testing.T) {
	rows := []schema.TeamSprintRow{
		{SprintNumber: 10, Developer: "A", Releases: 1},
		{SprintNumber: 2, Developer: "A", Releases: 2},
		{SprintNumber: 9, Developer: "B", Releases: 5},
	}

	result := Cumulative(schema.SprintTimeline, FromSprint(rows))

	require.Len(t, result.Points, 3)
	assert.Equal(t, []string{"S2", "S9", "S10"}, []string{
		result.Points[0].Period, result.Points[1].Period, result.Points[2].Period,
	})
	assert.Equal(t, 3, result.Points[2].Cumulative["A"])
	assert.Equal(t, 5, result.Points[2].Cumulative["B"])
}

func TestCumulativeDuplicateLabelLastWriteWins(t *testing.T) {
	counts := []schema.PeriodCount{
		{Period: "2024-01", Developer: "A", Count: 2},
		{Period: "2024-01", Developer: "B", Count: 1},
		{Period: "2024-01", Developer: "A", Count: 5},
	}

	result := Cumulative(schema.MonthlyTimeline, counts)

	require.Len(t, result.Points, 1)
	assert.Equal(t, 5, result.Points[0].Cumulative["A"])
	assert.Equal(t, 6, result.Points[0].Total)
}

func TestCumulativeEmpty(t *testing.T) {
	result := Cumulative(schema.MonthlyTimeline, nil)
	assert.Empty(t, result.Points)
	assert.Empty(t, result.Developers)
}

func TestCumulativePointsDoNotShareMaps(t *testing.T) {
	counts := []schema.PeriodCount{
		{Period: "2024-01", Developer: "A", Count: 1},
		{Period: "2024-02", Developer: "A", Count: 1},
	}
	result := Cumulative(schema.MonthlyTimeline, counts)
	result.Points[0].Cumulative["A"] = 100
	assert.Equal(t, 2, result.Points[1].Cumulative["A"])
}

func FuzzCumulativeMonotonic(f *testing.F) {
	f.Add("2024-01", "A", 3, "2024-02", "B", 1, "2024-01", "B", 2)
	f.Add("x", "A", -4, "x", "A", 9, "a", "A", 0)
	f.Fuzz(func(t *testing.T, p1, d1 string, c1 int, p2, d2 string, c2 int, p3, d3 string, c3 int) {
		counts := []schema.PeriodCount{
			{Period: p1, Developer: d1, Count: c1},
			{Period: p2, Developer: d2, Count: c2},
			{Period: p3, Developer: d3, Count: c3},
		}
		result := Cumulative(schema.MonthlyTimeline, counts)
		for i := 1; i < len(result.Points); i++ {
			for _, dev := range result.Developers {
				prev := result.Points[i-1].Cumulative[dev]
				cur := result.Points[i].Cumulative[dev]
				if cur < prev {
					t.Fatalf("cumulative for %q decreased from %d to %d", dev, prev, cur)
				}
			}
		}
	})
}

func TestMonthOfAndQuarterOf(t *testing.T) {
	tests := []struct {
		date    string
		month   string
		quarter string
	}{
		{"2024-01-15", "2024-01", "2024-Q1"},
		{"2024-03-31", "2024-03", "2024-Q1"},
		{"2024-04-01", "2024-04", "2024-Q2"},
		{"2024-12-31T10:00:00Z", "2024-12", "2024-Q4"},
		{"2024-13-01", "2024-13", ""},
		{"2024", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.month, MonthOf(tt.date))
			assert.Equal(t, tt.quarter, QuarterOf(tt.date))
		})
	}
}

func TestCountTypes(t *testing.T) {
	releases := []schema.Release{
		{DeveloperKey: "A", ReleaseType: schema.FeatRelease},
		{DeveloperKey: "A", ReleaseType: schema.FixRelease},
		{DeveloperKey: "B", ReleaseType: schema.FeatRelease},
		{DeveloperKey: "C", ReleaseType: "docs"},
	}

	counts := CountTypes(releases)

	assert.Equal(t, schema.TypeBreakdown{Feat: 1, Fix: 1, Total: 2}, counts["A"])
	assert.Equal(t, schema.TypeBreakdown{Feat: 1, Total: 1}, counts["B"])
	assert.Equal(t, schema.TypeBreakdown{}, counts["C"])
}

func TestMonthlyFromReleases(t *testing.T) {
	releases := loadFixture[schema.Release](t, releasesFixture)

	counts := MonthlyFromReleases(releases)

	assert.Equal(t, []schema.PeriodCount{
		{Period: "2024-01", Developer: "alice", Count: 2},
		{Period: "2024-01", Developer: "bob", Count: 1},
		{Period: "2024-02", Developer: "bob", Count: 1},
		{Period: "2024-04", Developer: "alice", Count: 1},
	}, counts)
}

func TestContributors(t *testing.T) {
	releases := loadFixture[schema.Release](t, releasesFixture)

	byRepo := ContributorsFromReleases(releases)
	assert.Equal(t, []schema.Contributor{
		{DeveloperKey: "alice", ReleaseCount: 3},
		{DeveloperKey: "bob", ReleaseCount: 1},
	}, byRepo["api"])
	assert.Len(t, byRepo, 2, "releases without a repository are skipped")

	matrix := ContributorsByRepo([]schema.RepoMatrixEntry{
		{RepositoryName: "api", DeveloperKey: "bob", ReleaseCount: 2},
		{RepositoryName: "api", DeveloperKey: "alice", ReleaseCount: 1},
		{RepositoryName: "api", DeveloperKey: "bob", ReleaseCount: 1},
	})
	assert.Equal(t, []schema.Contributor{
		{DeveloperKey: "alice", ReleaseCount: 1},
		{DeveloperKey: "bob", ReleaseCount: 3},
	}, matrix["api"])

	assert.Equal(t, map[string]int{"alice": 3, "bob": 2, "carol": 1}, CountByDeveloper(releases))
}
