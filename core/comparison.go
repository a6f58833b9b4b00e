package core

import (
	"sort"
	"strings"

	"github.com/huangsam/shipboard/core/agg"
	"github.com/huangsam/shipboard/core/algo"
	"github.com/huangsam/shipboard/schema"
)

// developerActivity is one developer's release activity within a period.
type developerActivity struct {
	releases   int
	feat       int
	fix        int
	ownedRepos []string
}

// periodActivity is the activity of all developers plus the owner of each repository.
type periodActivity struct {
	developers map[string]developerActivity
	repoOwners map[string]string
}

// buildActivity derives per-developer activity and repository owners from a release list.
func buildActivity(releases []schema.Release) periodActivity {
	types := agg.CountTypes(releases)
	counts := agg.CountByDeveloper(releases)

	activity := periodActivity{
		developers: make(map[string]developerActivity, len(counts)),
		repoOwners: make(map[string]string),
	}
	for dev, n := range counts {
		t := types[dev]
		activity.developers[dev] = developerActivity{releases: n, feat: t.Feat, fix: t.Fix}
	}

	for repo, contributors := range agg.ContributorsFromReleases(releases) {
		owner := algo.Ownership(repo, schema.RepoScope, contributors).Owner
		activity.repoOwners[repo] = owner
		if d, ok := activity.developers[owner]; ok {
			d.ownedRepos = append(d.ownedRepos, repo)
			activity.developers[owner] = d
		}
	}
	for dev, d := range activity.developers {
		sort.Strings(d.ownedRepos)
		activity.developers[dev] = d
	}
	return activity
}

// CompareDevelopers matches developer activity in the base period against the target period
// and computes the per-developer deltas. Developers whose activity did not change are left out.
func CompareDevelopers(base, target []schema.Release, names map[string]string, limit int, baseLabel, targetLabel string) schema.ComparisonResult {
	baseActivity := buildActivity(base)
	targetActivity := buildActivity(target)

	allDevs := make(map[string]struct{})
	for dev := range baseActivity.developers {
		allDevs[dev] = struct{}{}
	}
	for dev := range targetActivity.developers {
		allDevs[dev] = struct{}{}
	}

	details := make([]schema.ComparisonDetail, 0, len(allDevs))
	summary := schema.ComparisonSummary{BaseLabel: baseLabel, TargetLabel: targetLabel}

	for dev := range allDevs {
		before, baseExists := baseActivity.developers[dev]
		after, targetExists := targetActivity.developers[dev]

		delta := after.releases - before.releases
		summary.NetReleaseDelta += delta

		status := determineStatus(baseExists, targetExists)
		switch status {
		case schema.NewStatus:
			summary.TotalNewDevelopers++
		case schema.ActiveStatus:
			summary.TotalActiveDevelopers++
		case schema.InactiveStatus:
			summary.TotalInactiveDevelopers++
		}

		// Only include developers whose activity changed
		if delta == 0 && status == schema.ActiveStatus && schema.SameMembers(before.ownedRepos, after.ownedRepos) {
			continue
		}
		details = append(details, schema.ComparisonDetail{
			DeveloperKey:   dev,
			DisplayName:    schema.NameOf(names, dev),
			BeforeReleases: before.releases,
			AfterReleases:  after.releases,
			Delta:          delta,
			DeltaFeat:      after.feat - before.feat,
			DeltaFix:       after.fix - before.fix,
			Status:         status,
			BeforeRepos:    before.ownedRepos,
			AfterRepos:     after.ownedRepos,
		})
	}

	// Check for ownership change on repositories active in both periods
	for repo, beforeOwner := range baseActivity.repoOwners {
		if afterOwner, ok := targetActivity.repoOwners[repo]; ok && afterOwner != beforeOwner {
			summary.TotalOwnershipChanges++
		}
	}

	sortComparisonDetails(details)

	if limit > 0 && len(details) > limit {
		details = details[:limit]
	}

	return schema.ComparisonResult{Details: details, Summary: summary}
}

// determineStatus returns the status based on existence in base and target.
func determineStatus(baseExists, targetExists bool) schema.Status {
	switch {
	case !baseExists && targetExists:
		return schema.NewStatus
	case baseExists && targetExists:
		return schema.ActiveStatus
	case baseExists: // Target does not exist in this case
		return schema.InactiveStatus
	default:
		return schema.UnknownStatus
	}
}

// sortComparisonDetails sorts details by absolute delta, then delta sign, then developer key.
func sortComparisonDetails(details []schema.ComparisonDetail) {
	sort.Slice(details, func(i, j int) bool {
		a := details[i]
		b := details[j]

		// Primary: Absolute delta (descending)
		absA, absB := abs(a.Delta), abs(b.Delta)
		if absA != absB {
			return absA > absB
		}

		// Secondary: Delta sign (positive before negative)
		if a.Delta != b.Delta {
			return a.Delta > b.Delta
		}

		// Tertiary: Developer key (ascending)
		return strings.Compare(a.DeveloperKey, b.DeveloperKey) < 0
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
