// Package agg has aggregation logic for release activity data.
package agg

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"

	"github.com/huangsam/shipboard/schema"
)

// FromMonthly converts backend team-monthly rows into period counts keyed by "YYYY-MM".
func FromMonthly(rows []schema.TeamMonthlyRow) []schema.PeriodCount {
	counts := make([]schema.PeriodCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, schema.PeriodCount{
			Period:    r.Month,
			Developer: r.Developer,
			Count:     r.Releases,
		})
	}
	return counts
}

// FromSprint converts backend team-sprint rows into period counts.
// Sprint labels do not sort lexically, so the sprint number is kept as the order key.
func FromSprint(rows []schema.TeamSprintRow) []schema.PeriodCount {
	counts := make([]schema.PeriodCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, schema.PeriodCount{
			Period:    SprintLabel(r.SprintNumber),
			Order:     r.SprintNumber,
			Developer: r.Developer,
			Count:     r.Releases,
		})
	}
	return counts
}

// SprintLabel formats a sprint number as a period label.
func SprintLabel(number int) string {
	return "S" + strconv.Itoa(number)
}

// periodBucket collects the per-developer values of one period label.
type periodBucket struct {
	label  string
	order  int
	values map[string]int
}

// Cumulative turns per-developer, per-period counts into a chronological timeline where each
// point carries the period total and the running sum of every developer so far.
//
// Counts sharing a period label are merged into one point. When the same developer appears
// twice under one label the later entry replaces the earlier one.
func Cumulative(granularity schema.TimelineGranularity, counts []schema.PeriodCount) schema.TimelineResult {
	buckets := make(map[string]*periodBucket)
	developers := make(map[string]struct{})

	for _, c := range counts {
		b, ok := buckets[c.Period]
		if !ok {
			b = &periodBucket{label: c.Period, order: c.Order, values: make(map[string]int)}
			buckets[c.Period] = b
		}
		b.values[c.Developer] = max(c.Count, 0) // counts are never negative
		developers[c.Developer] = struct{}{}
	}

	ordered := make([]*periodBucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].order != ordered[j].order {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].label < ordered[j].label
	})

	devs := slices.Sorted(maps.Keys(developers))
	running := make(map[string]int, len(devs))
	for _, d := range devs {
		running[d] = 0
	}

	points := make([]schema.TimelinePoint, 0, len(ordered))
	for _, b := range ordered {
		total := 0
		for dev, v := range b.values {
			running[dev] += v
			total += v
		}
		points = append(points, schema.TimelinePoint{
			Period:     b.label,
			Total:      total,
			Cumulative: maps.Clone(running),
		})
	}

	return schema.TimelineResult{
		Granularity: granularity,
		Developers:  devs,
		Points:      points,
	}
}

// MonthOf returns the "YYYY-MM" bucket of an ISO date, or "" when the date is too short.
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// QuarterOf returns the "YYYY-Qn" bucket of an ISO date, or "" when the date is malformed.
func QuarterOf(date string) string {
	if len(date) < 7 || date[4] != '-' {
		return ""
	}
	month, err := strconv.Atoi(date[5:7])
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("%s-Q%d", date[:4], (month-1)/3+1)
}

// MonthlyFromReleases groups releases into per-developer monthly counts.
// Undated releases are skipped.
func MonthlyFromReleases(releases []schema.Release) []schema.PeriodCount {
	type key struct{ month, dev string }
	totals := make(map[key]int)
	for _, r := range releases {
		month := MonthOf(r.ReleaseDate)
		if month == "" {
			continue
		}
		totals[key{month, r.DeveloperKey}]++
	}

	counts := make([]schema.PeriodCount, 0, len(totals))
	for k, n := range totals {
		counts = append(counts, schema.PeriodCount{Period: k.month, Developer: k.dev, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Period != counts[j].Period {
			return counts[i].Period < counts[j].Period
		}
		return counts[i].Developer < counts[j].Developer
	})
	return counts
}

// CountTypes tallies releases per developer and release type.
// Unknown release types count toward neither a bucket nor the total.
func CountTypes(releases []schema.Release) map[string]schema.TypeBreakdown {
	result := make(map[string]schema.TypeBreakdown)
	for _, r := range releases {
		b := result[r.DeveloperKey]
		switch r.ReleaseType {
		case schema.FeatRelease:
			b.Feat++
		case schema.FixRelease:
			b.Fix++
		case schema.RefactoRelease:
			b.Refacto++
		case schema.ChoreRelease:
			b.Chore++
		default:
			result[r.DeveloperKey] = b
			continue
		}
		b.Total = b.Feat + b.Fix + b.Refacto + b.Chore
		result[r.DeveloperKey] = b
	}
	return result
}

// CountByDeveloper tallies releases per developer.
func CountByDeveloper(releases []schema.Release) map[string]int {
	result := make(map[string]int)
	for _, r := range releases {
		result[r.DeveloperKey]++
	}
	return result
}

// ContributorsByRepo groups repo matrix entries into contributor lists keyed by repository.
// Entries for the same developer within a repository are summed.
func ContributorsByRepo(entries []schema.RepoMatrixEntry) map[string][]schema.Contributor {
	sums := make(map[string]map[string]int)
	for _, e := range entries {
		if sums[e.RepositoryName] == nil {
			sums[e.RepositoryName] = make(map[string]int)
		}
		sums[e.RepositoryName][e.DeveloperKey] += e.ReleaseCount
	}
	return toContributors(sums)
}

// ContributorsFromReleases groups releases into contributor lists keyed by repository.
func ContributorsFromReleases(releases []schema.Release) map[string][]schema.Contributor {
	sums := make(map[string]map[string]int)
	for _, r := range releases {
		if r.RepositoryName == "" {
			continue
		}
		if sums[r.RepositoryName] == nil {
			sums[r.RepositoryName] = make(map[string]int)
		}
		sums[r.RepositoryName][r.DeveloperKey]++
	}
	return toContributors(sums)
}

func toContributors(sums map[string]map[string]int) map[string][]schema.Contributor {
	result := make(map[string][]schema.Contributor, len(sums))
	for repo, devs := range sums {
		list := make([]schema.Contributor, 0, len(devs))
		for _, dev := range slices.Sorted(maps.Keys(devs)) {
			list = append(list, schema.Contributor{DeveloperKey: dev, ReleaseCount: devs[dev]})
		}
		result[repo] = list
	}
	return result
}
