package algo

import (
	"testing"

	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityWeight(t *testing.T) {
	assert.Equal(t, 4, SeverityWeight(schema.CriticalSeverity))
	assert.Equal(t, 3, SeverityWeight(schema.HighSeverity))
	assert.Equal(t, 2, SeverityWeight(schema.MediumSeverity))
	assert.Equal(t, 1, SeverityWeight(schema.LowSeverity))
	assert.Equal(t, 3, SeverityWeight("HIGH"))
	assert.Equal(t, DefaultSeverityWeight, SeverityWeight(""))
	assert.Equal(t, DefaultSeverityWeight, SeverityWeight("blocker"))
}

func TestBugFixMatrixForProfiles(t *testing.T) {
	profiles := []schema.DeveloperProfile{
		{DeveloperKey: "bob", DisplayName: "Bob"},
		{DeveloperKey: "alice", DisplayName: "Alice"},
		{DeveloperKey: "zed", DisplayName: "Zed"},
	}
	bugs := []schema.BugFixDetail{
		{AuthorKey: "alice", FixerKey: "alice", Severity: schema.CriticalSeverity},
		{AuthorKey: "alice", FixerKey: "bob", Severity: schema.HighSeverity},
		{AuthorKey: "bob", FixerKey: "alice", Severity: schema.LowSeverity},
		{AuthorKey: "bob", FixerKey: "alice", Severity: ""},
	}

	m := BugFixMatrixForProfiles(bugs, profiles)

	assert.Equal(t, []string{"alice", "bob", "zed"}, m.Developers)
	assert.Equal(t, []string{"Alice", "Bob", "Zed"}, m.Labels)
	assert.Equal(t, [][]int{
		{4, 3, 0},
		{2, 0, 0},
		{0, 0, 0},
	}, m.Cells, "developers without bugs keep zero-filled rows")
	assert.Equal(t, 1, m.AutoFixes)
	assert.Equal(t, 3, m.CrossFixes)
	assert.Equal(t, 9, m.TotalWeight)
	assert.Equal(t, 7, RowTotal(m, 0))
	assert.Equal(t, 6, ColumnTotal(m, 0))
}

func TestBugFixMatrixAutoFixOnDiagonal(t *testing.T) {
	bug := schema.BugFixDetail{AuthorKey: "A", FixerKey: "A", Severity: schema.MediumSeverity}
	require.True(t, bug.IsAutoFix())

	m := BugFixMatrix([]schema.BugFixDetail{bug}, []string{"A", "B"}, nil)

	assert.Equal(t, 2, m.Cells[0][0])
	assert.Equal(t, 1, m.AutoFixes)
	assert.Equal(t, 0, m.CrossFixes)
}

func TestBugFixMatrixAppendsUnknownDevelopers(t *testing.T) {
	bugs := []schema.BugFixDetail{
		{AuthorKey: "zoe", FixerKey: "A", Severity: schema.LowSeverity},
		{AuthorKey: "A", FixerKey: "mike", Severity: schema.LowSeverity},
	}

	m := BugFixMatrix(bugs, []string{"A"}, map[string]string{"A": "Anna"})

	assert.Equal(t, []string{"A", "mike", "zoe"}, m.Developers)
	assert.Equal(t, []string{"Anna", "mike", "zoe"}, m.Labels)
	assert.Equal(t, 2, m.TotalWeight)
}

func TestBugFixMatrixOrderIndependent(t *testing.T) {
	bugs := []schema.BugFixDetail{
		{AuthorKey: "A", FixerKey: "B", Severity: schema.HighSeverity},
		{AuthorKey: "B", FixerKey: "B", Severity: schema.LowSeverity},
		{AuthorKey: "A", FixerKey: "B", Severity: schema.CriticalSeverity},
	}
	reversed := []schema.BugFixDetail{bugs[2], bugs[1], bugs[0]}
	order := []string{"A", "B"}

	assert.Equal(t, BugFixMatrix(bugs, order, nil), BugFixMatrix(reversed, order, nil))
}

func FuzzBugFixMatrixWeightSum(f *testing.F) {
	f.Add("A", "B", "high", "B", "B", "low", "C", "A", "weird")
	f.Add("", "", "", "x", "y", "CRITICAL", "x", "x", "medium")
	f.Fuzz(func(t *testing.T, a1, f1, s1, a2, f2, s2, a3, f3, s3 string) {
		bugs := []schema.BugFixDetail{
			{AuthorKey: a1, FixerKey: f1, Severity: schema.Severity(s1)},
			{AuthorKey: a2, FixerKey: f2, Severity: schema.Severity(s2)},
			{AuthorKey: a3, FixerKey: f3, Severity: schema.Severity(s3)},
		}
		want := 0
		for _, b := range bugs {
			want += SeverityWeight(b.Severity)
		}

		m := BugFixMatrix(bugs, []string{"A", "B"}, nil)

		got := 0
		for _, row := range m.Cells {
			for _, v := range row {
				got += v
			}
		}
		if got != want || m.TotalWeight != want {
			t.Fatalf("matrix weight %d (total %d), want %d", got, m.TotalWeight, want)
		}
		if m.AutoFixes+m.CrossFixes != len(bugs) {
			t.Fatalf("auto %d + cross %d != %d bugs", m.AutoFixes, m.CrossFixes, len(bugs))
		}
	})
}
