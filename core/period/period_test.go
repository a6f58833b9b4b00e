package period

import (
	"testing"

	"github.com/huangsam/shipboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSprints = []schema.Sprint{
	{ID: 11, Number: 1, StartDate: "2024-01-01", EndDate: "2024-01-14"},
	{ID: 12, Number: 2, StartDate: "2024-01-15", EndDate: "2024-01-28"},
}

func ptr[T any](v T) *T { return &v }

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		filter    schema.BoardFilter
		wantQuery string
		wantFrom  *string
		wantTo    *string
		wantLabel string
	}{
		{
			name:      "all time",
			filter:    schema.BoardFilter{Mode: schema.AllMode},
			wantLabel: AllTimeLabel,
		},
		{
			name:      "empty mode behaves as all",
			filter:    schema.BoardFilter{},
			wantLabel: AllTimeLabel,
		},
		{
			name:      "known sprint",
			filter:    schema.BoardFilter{Mode: schema.SprintMode, SprintID: ptr(int64(12))},
			wantQuery: "?sprint_id=12",
			wantFrom:  ptr("2024-01-15"),
			wantTo:    ptr("2024-01-28"),
			wantLabel: "Sprint 2 (2024-01-15 → 2024-01-28)",
		},
		{
			name:      "unknown sprint fails open",
			filter:    schema.BoardFilter{Mode: schema.SprintMode, SprintID: ptr(int64(99))},
			wantQuery: "?sprint_id=99",
			wantLabel: "Sprint #99",
		},
		{
			name:      "complete range",
			filter:    schema.BoardFilter{Mode: schema.RangeMode, From: "2024-01-01", To: "2024-03-31"},
			wantQuery: "?from=2024-01-01&to=2024-03-31",
			wantFrom:  ptr("2024-01-01"),
			wantTo:    ptr("2024-03-31"),
			wantLabel: "2024-01-01 → 2024-03-31",
		},
		{
			name:      "range with only from",
			filter:    schema.BoardFilter{Mode: schema.RangeMode, From: "2024-01-01"},
			wantFrom:  ptr("2024-01-01"),
			wantLabel: "From 2024-01-01",
		},
		{
			name:      "range with only to",
			filter:    schema.BoardFilter{Mode: schema.RangeMode, To: "2024-03-31"},
			wantTo:    ptr("2024-03-31"),
			wantLabel: "Until 2024-03-31",
		},
		{
			name:      "empty range",
			filter:    schema.BoardFilter{Mode: schema.RangeMode},
			wantLabel: CustomRangeLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.filter, testSprints)
			assert.Equal(t, tt.wantQuery, res.QueryParams)
			assert.Equal(t, tt.wantFrom, res.From)
			assert.Equal(t, tt.wantTo, res.To)
			assert.Equal(t, tt.wantLabel, res.Label)
		})
	}
}

func TestInRange(t *testing.T) {
	bounded := Resolve(schema.BoardFilter{Mode: schema.RangeMode, From: "2024-01-01", To: "2024-01-31"}, nil)
	fromOnly := Resolve(schema.BoardFilter{Mode: schema.RangeMode, From: "2024-01-15"}, nil)
	unbounded := Resolve(schema.BoardFilter{Mode: schema.AllMode}, nil)

	assert.True(t, InRange("2024-01-01", bounded), "lower bound is inclusive")
	assert.True(t, InRange("2024-01-31", bounded), "upper bound is inclusive")
	assert.True(t, InRange("2024-01-31T23:59:00Z", bounded), "timestamps compare by day")
	assert.False(t, InRange("2023-12-31", bounded))
	assert.False(t, InRange("2024-02-01", bounded))
	assert.False(t, InRange("", bounded))

	assert.True(t, InRange("2030-01-01", fromOnly), "half-open range still filters one side")
	assert.False(t, InRange("2024-01-14", fromOnly))

	assert.True(t, InRange("", unbounded))
	assert.True(t, InRange("1999-01-01", unbounded))
}

func TestOverlaps(t *testing.T) {
	fromOnly := Resolve(schema.BoardFilter{Mode: schema.RangeMode, From: "2024-02-06"}, nil)
	untilOnly := Resolve(schema.BoardFilter{Mode: schema.RangeMode, To: "2024-02-06"}, nil)

	assert.True(t, Overlaps("2024-02-01", "2024-02-14", fromOnly), "span across the lower bound")
	assert.True(t, Overlaps("2024-02-06", "2024-02-06T10:00:00Z", fromOnly))
	assert.False(t, Overlaps("2024-01-15", "2024-02-05", fromOnly))

	assert.True(t, Overlaps("2024-02-06", "2024-02-20", untilOnly), "span starting on the upper bound")
	assert.False(t, Overlaps("2024-02-07", "2024-02-20", untilOnly))

	assert.False(t, Overlaps("", "2024-02-20", fromOnly))
	assert.True(t, Overlaps("", "", Resolve(schema.BoardFilter{Mode: schema.AllMode}, nil)))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(schema.BoardFilter{Mode: schema.AllMode}))
	assert.NoError(t, Validate(schema.BoardFilter{Mode: schema.SprintMode, SprintID: ptr(int64(1))}))
	assert.NoError(t, Validate(schema.BoardFilter{Mode: schema.RangeMode, From: "2024-01-01"}))

	for _, f := range []schema.BoardFilter{
		{Mode: "weekly"},
		{Mode: schema.SprintMode},
		{Mode: schema.SprintMode, SprintID: ptr(int64(0))},
		{Mode: schema.RangeMode, From: "01/01/2024"},
		{Mode: schema.RangeMode, From: "2024-02-01", To: "2024-01-01"},
	} {
		err := Validate(f)
		require.Error(t, err, "%+v", f)
		assert.ErrorIs(t, err, ErrInvalidFilter)
	}
}

func FuzzResolveRange(f *testing.F) {
	f.Add("2024-01-01", "2024-02-01", "2024-01-15")
	f.Add("", "2024-02-01", "")
	f.Add("", "", "2024-01-15")
	f.Fuzz(func(t *testing.T, from, to, date string) {
		res := Resolve(schema.BoardFilter{Mode: schema.RangeMode, From: from, To: to}, nil)
		if (from == "" || to == "") && res.QueryParams != "" {
			t.Errorf("incomplete range produced query %q", res.QueryParams)
		}
		if from == "" && to == "" && !InRange(date, res) {
			t.Errorf("empty range must not exclude %q", date)
		}
	})
}
