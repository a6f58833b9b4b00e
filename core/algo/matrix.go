package algo

import (
	"slices"
	"strings"

	"github.com/huangsam/shipboard/schema"
)

// severityWeights maps severities to bug-fix matrix weights.
var severityWeights = map[schema.Severity]int{
	schema.CriticalSeverity: 4,
	schema.HighSeverity:     3,
	schema.MediumSeverity:   2,
	schema.LowSeverity:      1,
}

// DefaultSeverityWeight applies to missing or unrecognized severities.
const DefaultSeverityWeight = 1

// SeverityWeight returns the weight of a severity, case-insensitively.
func SeverityWeight(s schema.Severity) int {
	if w, ok := severityWeights[schema.Severity(strings.ToLower(strings.TrimSpace(string(s))))]; ok {
		return w
	}
	return DefaultSeverityWeight
}

// BugFixMatrix builds the author x fixer matrix in the given developer order.
// Every developer in order gets a zero-filled row and column. Developers referenced by a bug
// but absent from order are appended in key order, so no bug weight is ever dropped.
// names supplies display labels and may be nil.
func BugFixMatrix(bugs []schema.BugFixDetail, order []string, names map[string]string) schema.BugFixMatrix {
	devs := make([]string, 0, len(order))
	index := make(map[string]int, len(order))
	add := func(key string) {
		if _, ok := index[key]; ok {
			return
		}
		index[key] = len(devs)
		devs = append(devs, key)
	}
	for _, key := range order {
		add(key)
	}

	var extra []string
	for _, b := range bugs {
		for _, key := range []string{b.AuthorKey, b.FixerKey} {
			if _, ok := index[key]; !ok && !slices.Contains(extra, key) {
				extra = append(extra, key)
			}
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		add(key)
	}

	cells := make([][]int, len(devs))
	for i := range cells {
		cells[i] = make([]int, len(devs))
	}

	m := schema.BugFixMatrix{Developers: devs, Cells: cells}
	for _, b := range bugs {
		w := SeverityWeight(b.Severity)
		cells[index[b.AuthorKey]][index[b.FixerKey]] += w
		m.TotalWeight += w
		if b.IsAutoFix() {
			m.AutoFixes++
		} else {
			m.CrossFixes++
		}
	}

	m.Labels = make([]string, len(devs))
	for i, key := range devs {
		m.Labels[i] = schema.NameOf(names, key)
	}
	return m
}

// BugFixMatrixForProfiles builds the matrix over all profiles, alphabetical by display name.
func BugFixMatrixForProfiles(bugs []schema.BugFixDetail, profiles []schema.DeveloperProfile) schema.BugFixMatrix {
	return BugFixMatrix(bugs, schema.SortedByDisplayName(profiles), schema.DisplayNames(profiles))
}

// RowTotal returns the total weight of bugs authored by the developer at row i.
func RowTotal(m schema.BugFixMatrix, i int) int {
	total := 0
	for _, v := range m.Cells[i] {
		total += v
	}
	return total
}

// ColumnTotal returns the total weight of bugs fixed by the developer at column j.
func ColumnTotal(m schema.BugFixMatrix, j int) int {
	total := 0
	for _, row := range m.Cells {
		total += row[j]
	}
	return total
}
