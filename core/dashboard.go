package core

import (
	"slices"

	"github.com/huangsam/shipboard/core/agg"
	"github.com/huangsam/shipboard/core/algo"
	"github.com/huangsam/shipboard/core/period"
	"github.com/huangsam/shipboard/schema"
)

// DashboardOptions tunes how much of each view BuildDashboard keeps.
type DashboardOptions struct {
	// OwnershipLimit caps the repository and project ownership lists (0 keeps everything).
	OwnershipLimit int
}

// FilterReleases keeps the releases dated inside the resolved period.
// The backend already scopes complete filters; this also applies half-open ranges locally.
func FilterReleases(releases []schema.Release, res schema.PeriodResolution) []schema.Release {
	if res.Unbounded() {
		return slices.Clone(releases)
	}
	kept := make([]schema.Release, 0, len(releases))
	for _, r := range releases {
		if period.InRange(r.ReleaseDate, res) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Breakdowns returns type breakdowns with percentages for every developer, alphabetical by
// display name. Profile breakdowns are used as given; developers without one are counted
// from their releases.
func Breakdowns(profiles []schema.DeveloperProfile, releases []schema.Release) []schema.DeveloperBreakdown {
	counted := agg.CountTypes(releases)
	names := schema.DisplayNames(profiles)

	result := make([]schema.DeveloperBreakdown, 0, len(profiles)+len(counted))
	byKey := make(map[string]schema.DeveloperProfile, len(profiles))
	for _, p := range profiles {
		byKey[p.DeveloperKey] = p
	}

	for _, key := range schema.SortedByDisplayName(profiles) {
		b := algo.NormalizeBreakdown(byKey[key].TypeBreakdown)
		if b.Total == 0 {
			b = counted[key]
		}
		result = append(result, schema.DeveloperBreakdown{
			DeveloperKey: key,
			DisplayName:  schema.NameOf(names, key),
			Breakdown:    b,
			Percentages:  algo.TypePercentages(b),
		})
	}

	var extra []string
	for key := range counted {
		if _, ok := byKey[key]; !ok {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		b := counted[key]
		result = append(result, schema.DeveloperBreakdown{
			DeveloperKey: key,
			DisplayName:  key,
			Breakdown:    b,
			Percentages:  algo.TypePercentages(b),
		})
	}
	return result
}

// MonthlyTimeline builds the cumulative monthly timeline from the team-monthly rows,
// falling back to counting releases by display name when the backend sent none.
func MonthlyTimeline(data schema.DashboardData, releases []schema.Release) schema.TimelineResult {
	if len(data.TeamMonthly) > 0 {
		return agg.Cumulative(schema.MonthlyTimeline, agg.FromMonthly(data.TeamMonthly))
	}
	names := schema.DisplayNames(data.Developers)
	counts := agg.MonthlyFromReleases(releases)
	for i := range counts {
		counts[i].Developer = schema.NameOf(names, counts[i].Developer)
	}
	return agg.Cumulative(schema.MonthlyTimeline, counts)
}

// SprintTimeline builds the cumulative sprint timeline from the team-sprint rows.
func SprintTimeline(data schema.DashboardData) schema.TimelineResult {
	return agg.Cumulative(schema.SprintTimeline, agg.FromSprint(data.TeamSprint))
}

// RepoOwnership computes ownership per repository from the repo matrix, or from releases
// when the matrix is empty. Each result carries the repository's base branch when known.
func RepoOwnership(data schema.DashboardData, releases []schema.Release, limit int) []schema.OwnershipResult {
	byRepo := agg.ContributorsByRepo(data.RepoMatrix)
	if len(data.RepoMatrix) == 0 {
		byRepo = agg.ContributorsFromReleases(releases)
	}
	results := algo.RankOwnership(algo.OwnershipByName(schema.RepoScope, byRepo), limit)

	branches := make(map[string]string, len(data.BaseBranches))
	for _, b := range data.BaseBranches {
		branches[b.RepositoryName] = b.Branch
	}
	for i := range results {
		results[i].BaseBranch = branches[results[i].Name]
	}
	return results
}

// ProjectOwnership computes ownership per project from the project quality rollups.
// Rollups are grouped by project ID; the project name is only the label.
func ProjectOwnership(data schema.DashboardData, limit int) []schema.OwnershipResult {
	byProject := make(map[int64][]schema.Contributor, len(data.ProjectQuality))
	names := make(map[int64]string, len(data.ProjectQuality))
	for _, q := range data.ProjectQuality {
		byProject[q.ProjectID] = append(byProject[q.ProjectID], q.Contributors...)
		if _, ok := names[q.ProjectID]; !ok {
			names[q.ProjectID] = q.ProjectName
		}
	}

	results := make([]schema.OwnershipResult, 0, len(byProject))
	for id, contributors := range byProject {
		results = append(results, algo.Ownership(names[id], schema.ProjectScope, contributors))
	}
	return algo.RankOwnership(results, limit)
}

// ScopedLocally reports whether a bounded period never reached the backend as a query,
// which happens for half-open ranges. The fetched collections are then all-time.
func ScopedLocally(res schema.PeriodResolution) bool {
	return !res.Unbounded() && res.QueryParams == ""
}

// ScopeData narrows all-time data to a locally scoped period. Dated collections are
// filtered, while rollups that cannot be narrowed are dropped or rebuilt so that the views
// fall back to counting the kept releases. Data of any other period is returned as is.
// The input is never modified.
func ScopeData(data schema.DashboardData, res schema.PeriodResolution) schema.DashboardData {
	if !ScopedLocally(res) {
		return data
	}

	scoped := data
	scoped.Developers = make([]schema.DeveloperProfile, len(data.Developers))
	for i, p := range data.Developers {
		p.TypeBreakdown = schema.TypeBreakdown{}
		scoped.Developers[i] = p
	}
	scoped.TeamMonthly = nil
	scoped.RepoMatrix = nil
	scoped.Releases = FilterReleases(data.Releases, res)
	scoped.Incidents = FilterIncidents(data.Incidents, res)
	scoped.BugFixes = FilterBugFixes(data.BugFixes, res)
	scoped.TeamSprint = filterTeamSprint(data.TeamSprint, data.Sprints, res)
	scoped.ProjectQuality = projectQualityInRange(data.Projects, res)
	return scoped
}

// FilterIncidents keeps the incidents dated inside the resolved period.
func FilterIncidents(incidents []schema.Incident, res schema.PeriodResolution) []schema.Incident {
	kept := make([]schema.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if period.InRange(inc.Date, res) {
			kept = append(kept, inc)
		}
	}
	return kept
}

// FilterBugFixes keeps the bug fixes shipped inside the resolved period. A fix without a
// fix date is placed at the date of the bugged release.
func FilterBugFixes(bugs []schema.BugFixDetail, res schema.PeriodResolution) []schema.BugFixDetail {
	kept := make([]schema.BugFixDetail, 0, len(bugs))
	for _, b := range bugs {
		date := b.FixDate
		if date == "" {
			date = b.BuggedDate
		}
		if period.InRange(date, res) {
			kept = append(kept, b)
		}
	}
	return kept
}

func filterTeamSprint(rows []schema.TeamSprintRow, sprints []schema.Sprint, res schema.PeriodResolution) []schema.TeamSprintRow {
	inRange := make(map[int]bool, len(sprints))
	for _, s := range sprints {
		if period.Overlaps(s.StartDate, s.EndDate, res) {
			inRange[s.Number] = true
		}
	}
	kept := make([]schema.TeamSprintRow, 0, len(rows))
	for _, r := range rows {
		if inRange[r.SprintNumber] {
			kept = append(kept, r)
		}
	}
	return kept
}

// projectQualityInRange rebuilds the per-project contributor counts from the project
// releases dated inside the period.
func projectQualityInRange(projects []schema.Project, res schema.PeriodResolution) []schema.ProjectQuality {
	quality := make([]schema.ProjectQuality, 0, len(projects))
	for _, p := range projects {
		counts := make(map[string]int)
		total := 0
		for _, r := range p.Releases {
			if period.InRange(r.ReleaseDate, res) {
				counts[r.DeveloperKey]++
				total++
			}
		}
		if total == 0 {
			continue
		}
		keys := make([]string, 0, len(counts))
		for key := range counts {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		contributors := make([]schema.Contributor, 0, len(keys))
		for _, key := range keys {
			contributors = append(contributors, schema.Contributor{DeveloperKey: key, ReleaseCount: counts[key]})
		}
		quality = append(quality, schema.ProjectQuality{
			ProjectID:     p.ID,
			ProjectName:   p.Name,
			TotalReleases: total,
			Contributors:  contributors,
		})
	}
	return quality
}

// BuildDashboard derives every view for one period. It is pure: the same inputs always
// produce the same dashboard and the inputs are not modified.
func BuildDashboard(data schema.DashboardData, res schema.PeriodResolution, opts DashboardOptions) schema.Dashboard {
	data = ScopeData(data, res)
	releases := FilterReleases(data.Releases, res)

	return schema.Dashboard{
		Period:           res,
		Breakdowns:       Breakdowns(data.Developers, releases),
		MonthlyTimeline:  MonthlyTimeline(data, releases),
		SprintTimeline:   SprintTimeline(data),
		BugFixMatrix:     algo.BugFixMatrixForProfiles(data.BugFixes, data.Developers),
		RepoOwnership:    RepoOwnership(data, releases, opts.OwnershipLimit),
		ProjectOwnership: ProjectOwnership(data, opts.OwnershipLimit),
		Coverage:         Coverage(releases, data.Projects, data.Developers),
		Quarters:         QuarterDeltas(GroupQuarters(releases)),
		Incidents:        IncidentCounts(data.Incidents),
		Releases:         releases,
	}
}
