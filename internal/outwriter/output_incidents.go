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

// incidentReport is the JSON and YAML payload of the incidents view.
type incidentReport struct {
	Summary   []schema.IncidentSummary `json:"summary" yaml:"summary"`
	Incidents []schema.Incident        `json:"incidents" yaml:"incidents"`
}

// incidentsView renders incidents of the period and the count of each severity.
func incidentsView(incidents []schema.Incident, summary []schema.IncidentSummary, cfg *contract.Config, duration time.Duration) view {
	return view{
		name:     "incidents",
		duration: duration,
		data:     incidentReport{Summary: summary, Incidents: incidents},
		table: func(w io.Writer) error {
			return writeIncidentsTable(w, incidents, summary, cfg)
		},
		csv: func(w *csv.Writer) error {
			return writeIncidentsCSV(w, incidents)
		},
		charts: func() []components.Charter {
			return []components.Charter{incidentsChart(summary)}
		},
	}
}

func severityLabel(severity schema.Severity, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorSeverityLabel(severity)
	}
	return string(severity)
}

func writeIncidentsTable(w io.Writer, incidents []schema.Incident, summary []schema.IncidentSummary, cfg *contract.Config) error {
	descWidth := getMaxNameWidth(cfg, 3)
	table := newTable(w, []string{"Date", "Developer", "Severity", "Description"})

	var data [][]string
	for _, inc := range incidents {
		data = append(data, []string{
			inc.Date,
			inc.DeveloperKey,
			severityLabel(inc.Severity, cfg),
			contract.TruncateText(inc.Description, descWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	counts := make([]string, 0, len(summary))
	for _, s := range summary {
		counts = append(counts, fmt.Sprintf("%s: %d", severityLabel(s.Severity, cfg), s.Count))
	}
	return writeSummary(w, fmt.Sprintf("Showing %d incidents (%s)", len(incidents), strings.Join(counts, ", ")))
}

func writeIncidentsCSV(w *csv.Writer, incidents []schema.Incident) error {
	rows := make([][]string, len(incidents))
	for i, inc := range incidents {
		rows[i] = []string{
			strconv.FormatInt(inc.ID, 10),
			inc.Date,
			inc.DeveloperKey,
			string(inc.Severity),
			inc.Description,
			inc.Lesson,
		}
	}
	return writeCSVWithHeader(w, []string{"id", "date", "developer_key", "severity", "description", "lesson"}, rows)
}
