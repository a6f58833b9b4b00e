package algo

import (
	"slices"
	"sort"

	"github.com/huangsam/shipboard/schema"
)

// BusFactor returns the minimum number of top contributors whose combined count
// reaches at least half of the total. An empty or all-zero input yields 0.
func BusFactor(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total <= 0 {
		return 0
	}

	sorted := slices.Clone(counts)
	slices.SortFunc(sorted, func(a, b int) int { return b - a })

	factor, cumulative := 0, 0
	for _, c := range sorted {
		factor++
		cumulative += c
		if cumulative*2 >= total {
			break
		}
	}
	return factor
}

// Ownership computes the bus factor and owner of one repository or project.
// The top contributor owns it only with a strict majority, otherwise the owner is "shared".
func Ownership(name string, scope schema.OwnershipScope, contributors []schema.Contributor) schema.OwnershipResult {
	sorted := slices.Clone(contributors)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ReleaseCount != sorted[j].ReleaseCount {
			return sorted[i].ReleaseCount > sorted[j].ReleaseCount
		}
		return sorted[i].DeveloperKey < sorted[j].DeveloperKey
	})

	counts := make([]int, len(sorted))
	total := 0
	for i, c := range sorted {
		counts[i] = c.ReleaseCount
		total += c.ReleaseCount
	}

	result := schema.OwnershipResult{
		Name:          name,
		Scope:         scope,
		TotalReleases: total,
		BusFactor:     BusFactor(counts),
		Owner:         schema.SharedOwner,
		Contributors:  sorted,
	}
	if total <= 0 || len(sorted) == 0 {
		return result
	}

	top := sorted[0]
	result.OwnerShare = float64(top.ReleaseCount) / float64(total)
	if top.ReleaseCount*2 > total {
		result.Owner = top.DeveloperKey
	}
	return result
}

// OwnershipByName computes ownership for every entry of a contributor map.
func OwnershipByName(scope schema.OwnershipScope, byName map[string][]schema.Contributor) []schema.OwnershipResult {
	results := make([]schema.OwnershipResult, 0, len(byName))
	for name, contributors := range byName {
		results = append(results, Ownership(name, scope, contributors))
	}
	return results
}
