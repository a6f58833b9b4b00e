package core

import (
	"testing"

	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestMergeSummary(t *testing.T) {
	projects := fixtureData().Projects

	merged, found := MergeSummary(projects, 1, "Shipped checkout v2.")
	assert.True(t, found)
	assert.Equal(t, "Shipped checkout v2.", merged[0].AISummary)
	assert.Empty(t, projects[0].AISummary, "input is not modified")

	merged, found = MergeSummary(projects, 42, "nope")
	assert.False(t, found)
	assert.Equal(t, projects, merged)
}

func TestIncidentCounts(t *testing.T) {
	incidents := []schema.Incident{
		{Severity: schema.LowSeverity},
		{Severity: "blocker"},
		{Severity: schema.CriticalSeverity},
		{Severity: schema.LowSeverity},
		{Severity: "annoying"},
	}

	assert.Equal(t, []schema.IncidentSummary{
		{Severity: schema.CriticalSeverity, Count: 1},
		{Severity: schema.LowSeverity, Count: 2},
		{Severity: "annoying", Count: 1},
		{Severity: "blocker", Count: 1},
	}, IncidentCounts(incidents))

	assert.Empty(t, IncidentCounts(nil))
}
