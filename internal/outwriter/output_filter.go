package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// filterReport is the JSON and YAML payload of the filter view.
type filterReport struct {
	Filter     schema.BoardFilter      `json:"filter" yaml:"filter"`
	Resolution schema.PeriodResolution `json:"resolution" yaml:"resolution"`
}

func filterView(filter schema.BoardFilter, res schema.PeriodResolution) view {
	return view{
		name: "filter",
		data: filterReport{Filter: filter, Resolution: res},
		table: func(w io.Writer) error {
			return writeFilterText(w, filter, res)
		},
	}
}

func writeFilterText(w io.Writer, filter schema.BoardFilter, res schema.PeriodResolution) error {
	lines := []string{
		fmt.Sprintf("Mode:   %s", filter.Mode),
		fmt.Sprintf("Period: %s", res.Label),
	}
	if filter.SprintID != nil {
		lines = append(lines, fmt.Sprintf("Sprint: %d", *filter.SprintID))
	}
	if res.From != nil {
		lines = append(lines, fmt.Sprintf("From:   %s", *res.From))
	}
	if res.To != nil {
		lines = append(lines, fmt.Sprintf("To:     %s", *res.To))
	}
	if res.QueryParams != "" {
		lines = append(lines, fmt.Sprintf("Query:  %s", res.QueryParams))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// projectSummaryView renders a project with its generated summary.
func projectSummaryView(project schema.Project, cfg *contract.Config) view {
	return view{
		name: "project summary",
		data: project,
		table: func(w io.Writer) error {
			return writeProjectSummaryText(w, project, cfg)
		},
	}
}

func writeProjectSummaryText(w io.Writer, project schema.Project, cfg *contract.Config) error {
	name := project.Name
	if name == "" {
		name = fmt.Sprintf("Project #%d", project.ID)
	}
	if cfg.UseColors {
		name = contract.HighColor.Sprint(name)
	}
	if _, err := fmt.Fprintf(w, "📦 %s\n", name); err != nil {
		return err
	}
	if len(project.Leads) > 0 {
		if _, err := fmt.Fprintf(w, "Leads: %s\n", schema.FormatNames(project.Leads)); err != nil {
			return err
		}
	}
	if len(project.Releases) > 0 {
		if _, err := fmt.Fprintf(w, "Releases: %d\n", len(project.Releases)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(project.AISummary))
	return err
}
