package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// comparisonView renders per-developer deltas between two periods.
func comparisonView(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "comparison",
		duration: duration,
		data:     result,
		table: func(w io.Writer) error {
			return writeComparisonTable(w, result, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeComparisonCSV(w, result)
		},
		charts: func() []components.Charter {
			return []components.Charter{comparisonChart(result)}
		},
	}
}

func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config) error {
	table := newTable(w, []string{
		"Rank",
		"Developer",
		result.Summary.BaseLabel,
		result.Summary.TargetLabel,
		"Δ Releases",
		"Δ Feat",
		"Δ Fix",
		"Status",
		"Owned repos",
	})

	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	nameWidth := getMaxNameWidth(cfg, 8)
	var data [][]string
	for i, d := range result.Details {
		var deltaStr string
		switch {
		case d.Delta > 0:
			deltaStr = green(fmt.Sprintf("+%d ▲", d.Delta))
		case d.Delta < 0:
			deltaStr = red(fmt.Sprintf("%d ▼", d.Delta))
		default:
			deltaStr = yellow("0")
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(d.DisplayName, nameWidth),
			strconv.Itoa(d.BeforeReleases),
			strconv.Itoa(d.AfterReleases),
			deltaStr,
			formatSigned(d.DeltaFeat),
			formatSigned(d.DeltaFix),
			string(d.Status),
			formatRepoDiff(d),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	if _, err := fmt.Fprintf(w, "Showing top %d changes (%s → %s)\n", len(result.Details), s.BaseLabel, s.TargetLabel); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Net release delta: %s\n", formatSigned(s.NetReleaseDelta)); err != nil {
		return err
	}
	return writeSummary(w, fmt.Sprintf("New developers: %d, Inactive developers: %d, Active developers: %d, Ownership changes: %d",
		s.TotalNewDevelopers, s.TotalInactiveDevelopers, s.TotalActiveDevelopers, s.TotalOwnershipChanges))
}

func formatSigned(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// formatRepoDiff describes how the repositories a developer owns changed between the periods.
func formatRepoDiff(d schema.ComparisonDetail) string {
	before := strings.Join(d.BeforeRepos, ", ")
	after := strings.Join(d.AfterRepos, ", ")

	switch d.Status {
	case schema.NewStatus:
		if len(d.AfterRepos) > 0 {
			return "New: " + after
		}
		return "New"

	case schema.InactiveStatus:
		if len(d.BeforeRepos) > 0 {
			return "Left: " + before
		}
		return "Left"

	default:
		if len(d.AfterRepos) > 0 {
			if schema.SameMembers(d.BeforeRepos, d.AfterRepos) {
				return after + " (stable)"
			}
			return after
		}
		if len(d.BeforeRepos) > 0 {
			return "None (was: " + before + ")"
		}
		return "None"
	}
}

func writeComparisonCSV(w *csv.Writer, result schema.ComparisonResult) error {
	header := []string{
		"rank", "developer_key", "display_name",
		"before_releases", "after_releases", "delta", "delta_feat", "delta_fix",
		"status", "before_repos", "after_repos",
	}
	rows := make([][]string, len(result.Details))
	for i, d := range result.Details {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			d.DeveloperKey,
			d.DisplayName,
			strconv.Itoa(d.BeforeReleases),
			strconv.Itoa(d.AfterReleases),
			strconv.Itoa(d.Delta),
			strconv.Itoa(d.DeltaFeat),
			strconv.Itoa(d.DeltaFix),
			string(d.Status),
			strings.Join(d.BeforeRepos, "|"),
			strings.Join(d.AfterRepos, "|"),
		}
	}
	return writeCSVWithHeader(w, header, rows)
}
