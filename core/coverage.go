package core

import (
	"maps"
	"slices"

	"github.com/huangsam/shipboard/core/agg"
	"github.com/huangsam/shipboard/core/algo"
	"github.com/huangsam/shipboard/schema"
)

// AssociatedReleaseIDs returns the set of release IDs linked to at least one project.
func AssociatedReleaseIDs(projects []schema.Project) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, p := range projects {
		for _, r := range p.Releases {
			ids[r.ReleaseID] = struct{}{}
		}
	}
	return ids
}

// coverageCounter accumulates associated and total counts.
type coverageCounter struct {
	associated int
	total      int
}

func (c *coverageCounter) add(associated bool) {
	c.total++
	if associated {
		c.associated++
	}
}

func (c coverageCounter) stat() schema.CoverageStat {
	return schema.CoverageStat{
		Associated: c.associated,
		Orphan:     c.total - c.associated,
		Total:      c.total,
		Pct:        algo.Percent(c.associated, c.total),
	}
}

// Coverage splits dated releases into project-associated and orphan releases, globally,
// per developer and per "YYYY-MM" month. Every profile gets a row even without releases.
// Developers are ordered by display name, with unknown authors appended by key.
func Coverage(releases []schema.Release, projects []schema.Project, profiles []schema.DeveloperProfile) schema.CoverageReport {
	associatedIDs := AssociatedReleaseIDs(projects)

	var global coverageCounter
	byDev := make(map[string]*coverageCounter)
	byMonth := make(map[string]*coverageCounter)

	for _, r := range releases {
		if r.ReleaseDate == "" {
			continue
		}
		_, associated := associatedIDs[r.ID]
		global.add(associated)

		dev := byDev[r.DeveloperKey]
		if dev == nil {
			dev = &coverageCounter{}
			byDev[r.DeveloperKey] = dev
		}
		dev.add(associated)

		if month := agg.MonthOf(r.ReleaseDate); month != "" {
			m := byMonth[month]
			if m == nil {
				m = &coverageCounter{}
				byMonth[month] = m
			}
			m.add(associated)
		}
	}

	names := schema.DisplayNames(profiles)
	order := schema.SortedByDisplayName(profiles)
	var extra []string
	for key := range byDev {
		if _, ok := names[key]; !ok {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	report := schema.CoverageReport{
		Global:     global.stat(),
		Developers: make([]schema.DeveloperCoverage, 0, len(order)),
		Monthly:    make([]schema.MonthlyCoverage, 0, len(byMonth)),
	}
	for _, key := range order {
		var c coverageCounter
		if counter, ok := byDev[key]; ok {
			c = *counter
		}
		report.Developers = append(report.Developers, schema.DeveloperCoverage{
			DeveloperKey: key,
			DisplayName:  schema.NameOf(names, key),
			CoverageStat: c.stat(),
		})
	}
	for _, month := range slices.Sorted(maps.Keys(byMonth)) {
		report.Monthly = append(report.Monthly, schema.MonthlyCoverage{
			Month:        month,
			CoverageStat: byMonth[month].stat(),
		})
	}
	return report
}
