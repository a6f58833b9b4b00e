package core

import (
	"maps"
	"slices"

	"github.com/huangsam/shipboard/core/agg"
	"github.com/huangsam/shipboard/core/algo"
	"github.com/huangsam/shipboard/schema"
)

// GroupQuarters counts dated releases per "YYYY-Qn" quarter in chronological order.
// Quarters without releases between two active quarters are not filled in.
func GroupQuarters(releases []schema.Release) []schema.QuarterTotal {
	totals := make(map[string]int)
	for _, r := range releases {
		if q := agg.QuarterOf(r.ReleaseDate); q != "" {
			totals[q]++
		}
	}

	result := make([]schema.QuarterTotal, 0, len(totals))
	for _, q := range slices.Sorted(maps.Keys(totals)) {
		result = append(result, schema.QuarterTotal{Quarter: q, Total: totals[q]})
	}
	return result
}

// QuarterDeltas computes the rounded percentage change of each quarter against the one before.
// The first quarter has no delta, and neither does a quarter following a zero total.
func QuarterDeltas(quarters []schema.QuarterTotal) []schema.QuarterDelta {
	result := make([]schema.QuarterDelta, len(quarters))
	for i, q := range quarters {
		result[i] = schema.QuarterDelta{Quarter: q.Quarter, Total: q.Total}
		if i == 0 {
			continue
		}
		prev := quarters[i-1].Total
		if prev == 0 {
			continue
		}
		delta := algo.Round(float64(q.Total-prev) / float64(prev) * 100)
		result[i].DeltaPct = &delta
	}
	return result
}
