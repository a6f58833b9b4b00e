package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
)

// ownershipView renders the bus factor and owner of each repository or project.
func ownershipView(results []schema.OwnershipResult, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "ownership",
		duration: duration,
		data:     results,
		table: func(w io.Writer) error {
			return writeOwnershipTable(w, results, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeOwnershipCSV(w, results, cfg)
		},
		charts: func() []components.Charter {
			return []components.Charter{ownershipChart(results)}
		},
	}
}

func writeOwnershipTable(w io.Writer, results []schema.OwnershipResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	table := newTable(w, []string{"Rank", "Name", "Branch", "Releases", "Bus Factor", "Owner", "Share"})

	nameWidth := getMaxNameWidth(cfg, 5)
	var data [][]string
	for i, r := range results {
		owner := r.Owner
		if cfg.UseColors {
			owner = contract.GetColorOwnerLabel(owner)
		}
		branch := r.BaseBranch
		if branch == "" {
			branch = "—"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.Name, nameWidth),
			branch,
			strconv.Itoa(r.TotalReleases),
			strconv.Itoa(r.BusFactor),
			owner,
			fmtFloat(r.OwnerShare*100) + "%",
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	atRisk := 0
	for _, r := range results {
		if r.BusFactor == 1 {
			atRisk++
		}
	}
	return writeSummary(w, fmt.Sprintf("Showing %d entries (%d with a bus factor of 1)", len(results), atRisk))
}

func writeOwnershipCSV(w *csv.Writer, results []schema.OwnershipResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := make([][]string, len(results))
	for i, r := range results {
		contributors := make([]string, len(r.Contributors))
		for k, c := range r.Contributors {
			contributors[k] = fmt.Sprintf("%s:%d", c.DeveloperKey, c.ReleaseCount)
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			string(r.Scope),
			r.Name,
			r.BaseBranch,
			strconv.Itoa(r.TotalReleases),
			strconv.Itoa(r.BusFactor),
			r.Owner,
			fmtFloat(r.OwnerShare),
			strings.Join(contributors, "|"),
		}
	}
	header := []string{"rank", "scope", "name", "base_branch", "total_releases", "bus_factor", "owner", "owner_share", "contributors"}
	return writeCSVWithHeader(w, header, rows)
}
