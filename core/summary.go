package core

import (
	"slices"

	"github.com/huangsam/shipboard/schema"
)

// MergeSummary returns a copy of projects with the summary set on the project with the given ID.
// The input slice is left untouched. found is false when no project has that ID.
func MergeSummary(projects []schema.Project, projectID int64, summary string) (merged []schema.Project, found bool) {
	merged = slices.Clone(projects)
	for i := range merged {
		if merged[i].ID == projectID {
			merged[i].AISummary = summary
			found = true
		}
	}
	return merged, found
}

// IncidentCounts counts incidents per severity, most severe first.
// Severities outside the known set are grouped under their own label after the known ones.
func IncidentCounts(incidents []schema.Incident) []schema.IncidentSummary {
	counts := make(map[schema.Severity]int)
	for _, inc := range incidents {
		counts[inc.Severity]++
	}

	result := make([]schema.IncidentSummary, 0, len(counts))
	for _, sev := range schema.AllSeverities {
		if n, ok := counts[sev]; ok {
			result = append(result, schema.IncidentSummary{Severity: sev, Count: n})
			delete(counts, sev)
		}
	}
	var rest []schema.Severity
	for sev := range counts {
		rest = append(rest, sev)
	}
	slices.Sort(rest)
	for _, sev := range rest {
		result = append(result, schema.IncidentSummary{Severity: sev, Count: counts[sev]})
	}
	return result
}
