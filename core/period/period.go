// Package period resolves the board filter into concrete date bounds and query strings.
package period

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// Labels shown for filters that do not name a concrete interval.
const (
	AllTimeLabel     = "All time"
	CustomRangeLabel = "Custom range"
)

// ErrInvalidFilter is returned by Validate for filters that cannot be resolved.
var ErrInvalidFilter = errors.New("invalid board filter")

// Resolve turns a filter into query parameters, inclusive date bounds and a display label.
// An unknown sprint fails open to unbounded.
func Resolve(filter schema.BoardFilter, sprints []schema.Sprint) schema.PeriodResolution {
	switch filter.Mode {
	case schema.SprintMode:
		return resolveSprint(filter, sprints)
	case schema.RangeMode:
		return resolveRange(filter)
	default:
		return schema.PeriodResolution{Label: AllTimeLabel}
	}
}

func resolveSprint(filter schema.BoardFilter, sprints []schema.Sprint) schema.PeriodResolution {
	if filter.SprintID == nil {
		return schema.PeriodResolution{Label: AllTimeLabel}
	}
	id := *filter.SprintID
	res := schema.PeriodResolution{
		QueryParams: "?sprint_id=" + strconv.FormatInt(id, 10),
		Label:       fmt.Sprintf("Sprint #%d", id),
	}

	sprint, ok := FindSprint(sprints, id)
	if !ok {
		return res
	}
	res.Label = fmt.Sprintf("Sprint %d", sprint.Number)
	if sprint.StartDate != "" {
		from := sprint.StartDate
		res.From = &from
	}
	if sprint.EndDate != "" {
		to := sprint.EndDate
		res.To = &to
	}
	if res.From != nil && res.To != nil {
		res.Label = fmt.Sprintf("Sprint %d (%s → %s)", sprint.Number, *res.From, *res.To)
	}
	return res
}

func resolveRange(filter schema.BoardFilter) schema.PeriodResolution {
	var res schema.PeriodResolution
	if filter.From != "" {
		from := filter.From
		res.From = &from
	}
	if filter.To != "" {
		to := filter.To
		res.To = &to
	}

	switch {
	case res.From != nil && res.To != nil:
		// Only a complete range is sent to the backend.
		q := url.Values{}
		q.Set("from", filter.From)
		q.Set("to", filter.To)
		res.QueryParams = "?" + q.Encode()
		res.Label = fmt.Sprintf("%s → %s", filter.From, filter.To)
	case res.From != nil:
		res.Label = "From " + filter.From
	case res.To != nil:
		res.Label = "Until " + filter.To
	default:
		res.Label = CustomRangeLabel
	}
	return res
}

// FindSprint looks up a sprint by its ID.
func FindSprint(sprints []schema.Sprint, id int64) (schema.Sprint, bool) {
	for _, s := range sprints {
		if s.ID == id {
			return s, true
		}
	}
	return schema.Sprint{}, false
}

// InRange reports whether an ISO date falls inside the resolved bounds, inclusively.
// Dates compare lexically, so a full timestamp on the upper bound day still matches.
// An undated value is only in range when the period is unbounded.
func InRange(date string, res schema.PeriodResolution) bool {
	if res.Unbounded() {
		return true
	}
	if date == "" {
		return false
	}
	day := dayOf(date)
	if res.From != nil && day < *res.From {
		return false
	}
	if res.To != nil && day > *res.To {
		return false
	}
	return true
}

// Overlaps reports whether a dated span shares at least one day with the resolved bounds.
// A span missing either date only overlaps an unbounded period.
func Overlaps(start, end string, res schema.PeriodResolution) bool {
	if res.Unbounded() {
		return true
	}
	if start == "" || end == "" {
		return false
	}
	if res.From != nil && dayOf(end) < *res.From {
		return false
	}
	if res.To != nil && dayOf(start) > *res.To {
		return false
	}
	return true
}

func dayOf(date string) string {
	if len(date) > len(contract.DateFormat) {
		return date[:len(contract.DateFormat)]
	}
	return date
}

// Validate checks that a filter is well formed before it is saved or applied.
func Validate(filter schema.BoardFilter) error {
	if _, ok := schema.ValidFilterModes[filter.Mode]; !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidFilter, filter.Mode)
	}
	switch filter.Mode {
	case schema.SprintMode:
		if filter.SprintID == nil || *filter.SprintID <= 0 {
			return fmt.Errorf("%w: sprint mode requires a sprint id", ErrInvalidFilter)
		}
	case schema.RangeMode:
		for _, d := range []string{filter.From, filter.To} {
			if d == "" {
				continue
			}
			if _, err := contract.ParseDate(d); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
			}
		}
		if filter.From != "" && filter.To != "" && filter.From > filter.To {
			return fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter, filter.From, filter.To)
		}
	}
	return nil
}
