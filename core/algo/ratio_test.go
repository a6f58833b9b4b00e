package algo

import (
	"math"
	"testing"

	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{2.4, 2},
		{2.5, 3},
		{-2.5, -2},
		{-2.6, -3},
		{66.666, 67},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in), "Round(%v)", tt.in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(5, 0))
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(4, 4))
}

func TestTypePercentages(t *testing.T) {
	t.Run("two releases split evenly", func(t *testing.T) {
		got := TypePercentages(schema.TypeBreakdown{Feat: 1, Fix: 1, Total: 2})
		assert.Equal(t, schema.TypePercentages{Feat: 50, Fix: 50}, got)
	})

	t.Run("zero total is all zeros", func(t *testing.T) {
		assert.Equal(t, schema.TypePercentages{}, TypePercentages(schema.TypeBreakdown{}))
	})

	t.Run("stale total is ignored", func(t *testing.T) {
		got := TypePercentages(schema.TypeBreakdown{Feat: 3, Chore: 1, Total: 0})
		assert.Equal(t, schema.TypePercentages{Feat: 75, Chore: 25}, got)
	})
}

func TestNormalizeBreakdown(t *testing.T) {
	b := NormalizeBreakdown(schema.TypeBreakdown{Feat: 2, Fix: 1, Refacto: 1, Chore: 3, Total: 99})
	assert.Equal(t, 7, b.Total)
}

func FuzzTypePercentages(f *testing.F) {
	f.Add(0, 0, 0, 0)
	f.Add(1, 1, 0, 0)
	f.Add(7, 3, 2, 9)
	f.Fuzz(func(t *testing.T, feat, fix, refacto, chore int) {
		clamp := func(v int) int { return min(max(v, 0), 1<<20) }
		b := schema.TypeBreakdown{Feat: clamp(feat), Fix: clamp(fix), Refacto: clamp(refacto), Chore: clamp(chore)}
		p := TypePercentages(b)
		for _, v := range []int{p.Feat, p.Fix, p.Refacto, p.Chore} {
			if v < 0 || v > 100 {
				t.Fatalf("percentage out of range: %+v -> %+v", b, p)
			}
		}
		if b.Feat+b.Fix+b.Refacto+b.Chore == 0 && p != (schema.TypePercentages{}) {
			t.Fatalf("zero total must give zero percentages, got %+v", p)
		}
	})
}
