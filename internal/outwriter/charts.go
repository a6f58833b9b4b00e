package outwriter

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/huangsam/shipboard/schema"
)

const (
	chartWidth    = "100%"
	chartHeight   = "480px"
	maxChartNames = 20
)

// Release type colors shared by every chart showing a type breakdown.
var typeColors = map[schema.ReleaseType]string{
	schema.FeatRelease:    "#40c463",
	schema.FixRelease:     "#f85149",
	schema.RefactoRelease: "#58a6ff",
	schema.ChoreRelease:   "#8b949e",
}

// writeHTML renders charts on a single self-contained page.
func writeHTML(w io.Writer, title string, charters []components.Charter) error {
	page := components.NewPage()
	page.PageTitle = "shipboard: " + title
	page.AddCharts(charters...)
	return page.Render(w)
}

// baseOpts are the global options every chart starts with.
func baseOpts(title, subtitle, trigger string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	}
}

// breakdownChart stacks the release types of each developer.
func breakdownChart(breakdowns []schema.DeveloperBreakdown) *charts.Bar {
	shown := breakdowns[:min(len(breakdowns), maxChartNames)]
	names := make([]string, len(shown))
	series := map[schema.ReleaseType][]opts.BarData{}
	for i, b := range shown {
		names[i] = schema.AbbreviateName(b.DisplayName)
		series[schema.FeatRelease] = append(series[schema.FeatRelease], opts.BarData{Value: b.Breakdown.Feat})
		series[schema.FixRelease] = append(series[schema.FixRelease], opts.BarData{Value: b.Breakdown.Fix})
		series[schema.RefactoRelease] = append(series[schema.RefactoRelease], opts.BarData{Value: b.Breakdown.Refacto})
		series[schema.ChoreRelease] = append(series[schema.ChoreRelease], opts.BarData{Value: b.Breakdown.Chore})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("Release types", "per developer", "axis")...)
	bar.SetXAxis(names)
	for _, t := range schema.AllReleaseTypes {
		bar.AddSeries(string(t), series[t],
			charts.WithBarChartOpts(opts.BarChart{Stack: "types"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: typeColors[t]}),
		)
	}
	return bar
}

// timelineChart draws one cumulative line per developer.
func timelineChart(result schema.TimelineResult) *charts.Line {
	periods := make([]string, len(result.Points))
	for i, p := range result.Points {
		periods[i] = p.Period
	}

	line := charts.NewLine()
	line.SetGlobalOptions(baseOpts("Cumulative releases", string(result.Granularity), "axis")...)
	line.SetXAxis(periods)
	for _, dev := range result.Developers {
		data := make([]opts.LineData, len(result.Points))
		for i, p := range result.Points {
			data[i] = opts.LineData{Value: p.Cumulative[dev]}
		}
		line.AddSeries(dev, data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}
	return line
}

// bugFixHeatMap draws the author x fixer matrix, authors on the Y axis.
func bugFixHeatMap(matrix schema.BugFixMatrix) *charts.HeatMap {
	var data []opts.HeatMapData
	maxVal := 0
	for i, row := range matrix.Cells {
		for j, val := range row {
			if val == 0 {
				continue
			}
			data = append(data, opts.HeatMapData{Value: []any{j, i, val}})
			maxVal = max(maxVal, val)
		}
	}

	labels := make([]string, len(matrix.Labels))
	for i, l := range matrix.Labels {
		labels[i] = schema.AbbreviateName(l)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Bug fixes", Subtitle: "author (rows) x fixer (columns), severity weighted"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category", Data: labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category", Data: labels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true), Min: 0, Max: float32(max(maxVal, 1)),
			InRange: &opts.VisualMapInRange{Color: []string{"#ebedf0", "#ffd33d", "#f85149"}},
			Orient:  "horizontal", Left: "center", Bottom: "2%",
		}),
	)
	hm.AddSeries("Weight", data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "inside"}))
	return hm
}

// ownershipChart shows the bus factor of each repository or project.
func ownershipChart(results []schema.OwnershipResult) *charts.Bar {
	shown := results[:min(len(results), maxChartNames)]
	names := make([]string, len(shown))
	busFactors := make([]opts.BarData, len(shown))
	for i, r := range shown {
		names[i] = r.Name
		busFactors[i] = opts.BarData{Name: r.Owner, Value: r.BusFactor}
	}

	scope := "repositories"
	if len(results) > 0 && results[0].Scope == schema.ProjectScope {
		scope = "projects"
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("Bus factor", scope, "axis")...)
	bar.SetXAxis(names)
	bar.AddSeries("Bus factor", busFactors)
	return bar
}

// coverageCharts splits the global coverage and plots the monthly trend.
func coverageCharts(report schema.CoverageReport) []components.Charter {
	pie := charts.NewPie()
	pie.SetGlobalOptions(baseOpts("Project coverage", strconv.Itoa(report.Global.Pct)+"% associated", "item")...)
	pie.AddSeries("Releases", []opts.PieData{
		{Name: "Associated", Value: report.Global.Associated, ItemStyle: &opts.ItemStyle{Color: "#40c463"}},
		{Name: "Orphan", Value: report.Global.Orphan, ItemStyle: &opts.ItemStyle{Color: "#f85149"}},
	}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}))

	months := make([]string, len(report.Monthly))
	pcts := make([]opts.LineData, len(report.Monthly))
	for i, m := range report.Monthly {
		months[i] = m.Month
		pcts[i] = opts.LineData{Value: m.Pct}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(baseOpts("Monthly coverage", "% of releases linked to a project", "axis")...)
	line.SetXAxis(months)
	line.AddSeries("Coverage %", pcts)

	return []components.Charter{pie, line}
}

// quartersChart shows release totals per quarter.
func quartersChart(quarters []schema.QuarterDelta) *charts.Bar {
	labels := make([]string, len(quarters))
	totals := make([]opts.BarData, len(quarters))
	for i, q := range quarters {
		labels[i] = q.Quarter
		totals[i] = opts.BarData{Value: q.Total}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("Releases per quarter", "", "axis")...)
	bar.SetXAxis(labels)
	bar.AddSeries("Releases", totals)
	return bar
}

// incidentsChart shows the incident count of each severity.
func incidentsChart(summary []schema.IncidentSummary) *charts.Pie {
	data := make([]opts.PieData, len(summary))
	for i, s := range summary {
		data[i] = opts.PieData{Name: string(s.Severity), Value: s.Count}
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(baseOpts("Incidents", "by severity", "item")...)
	pie.AddSeries("Incidents", data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}))
	return pie
}

// comparisonChart shows the release delta of each changed developer.
func comparisonChart(result schema.ComparisonResult) *charts.Bar {
	shown := result.Details[:min(len(result.Details), maxChartNames)]
	names := make([]string, len(shown))
	before := make([]opts.BarData, len(shown))
	after := make([]opts.BarData, len(shown))
	for i, d := range shown {
		names[i] = schema.AbbreviateName(d.DisplayName)
		before[i] = opts.BarData{Value: d.BeforeReleases}
		after[i] = opts.BarData{Value: d.AfterReleases}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("Releases", result.Summary.BaseLabel+" vs "+result.Summary.TargetLabel, "axis")...)
	bar.SetXAxis(names)
	bar.AddSeries(result.Summary.BaseLabel, before)
	bar.AddSeries(result.Summary.TargetLabel, after)
	return bar
}
