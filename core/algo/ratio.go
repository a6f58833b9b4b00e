// Package algo has the pure derivations behind the dashboard views.
package algo

import (
	"math"

	"github.com/huangsam/shipboard/schema"
)

// Round rounds half toward positive infinity, so 2.5 becomes 3 and -2.5 becomes -2.
// Non-finite inputs round to 0.
func Round(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Floor(x + 0.5))
}

// Percent returns part as a rounded percentage of total. A non-positive total yields 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return Round(float64(part) / float64(total) * 100)
}

// TypePercentages returns the share of each release type in the breakdown.
// The denominator is recomputed from the four counts rather than trusted from Total.
func TypePercentages(b schema.TypeBreakdown) schema.TypePercentages {
	total := b.Feat + b.Fix + b.Refacto + b.Chore
	return schema.TypePercentages{
		Feat:    Percent(b.Feat, total),
		Fix:     Percent(b.Fix, total),
		Refacto: Percent(b.Refacto, total),
		Chore:   Percent(b.Chore, total),
	}
}

// NormalizeBreakdown returns b with Total set to the sum of its type counts.
func NormalizeBreakdown(b schema.TypeBreakdown) schema.TypeBreakdown {
	b.Total = b.Feat + b.Fix + b.Refacto + b.Chore
	return b
}
