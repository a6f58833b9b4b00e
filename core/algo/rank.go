package algo

import (
	"sort"

	"github.com/huangsam/shipboard/schema"
)

// RankOwnership sorts ownership results riskiest first: lowest bus factor, then most releases,
// then name. It returns the top 'limit' results; a non-positive limit keeps everything.
func RankOwnership(results []schema.OwnershipResult, limit int) []schema.OwnershipResult {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.BusFactor != b.BusFactor {
			return a.BusFactor < b.BusFactor
		}
		if a.TotalReleases != b.TotalReleases {
			return a.TotalReleases > b.TotalReleases
		}
		return a.Name < b.Name
	})
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// RankBreakdowns sorts developer breakdowns by total releases in descending order,
// then by display name, and returns the top 'limit' entries.
func RankBreakdowns(breakdowns []schema.DeveloperBreakdown, limit int) []schema.DeveloperBreakdown {
	sort.Slice(breakdowns, func(i, j int) bool {
		a, b := breakdowns[i], breakdowns[j]
		if a.Breakdown.Total != b.Breakdown.Total {
			return a.Breakdown.Total > b.Breakdown.Total
		}
		return a.DisplayName < b.DisplayName
	})
	if limit > 0 && len(breakdowns) > limit {
		return breakdowns[:limit]
	}
	return breakdowns
}
