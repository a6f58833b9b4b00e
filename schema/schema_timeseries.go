package schema

// PeriodCount is one developer's release count for one period label.
// Order breaks ordering ties for labels that do not sort lexically (sprint numbers).
type PeriodCount struct {
	Period    string `json:"period" yaml:"period"`
	Order     int    `json:"order" yaml:"order"`
	Developer string `json:"developer" yaml:"developer"`
	Count     int    `json:"count" yaml:"count"`
}

// TimelinePoint is one period on a cumulative timeline.
type TimelinePoint struct {
	Period     string         `json:"period" yaml:"period"`
	Total      int            `json:"total" yaml:"total"`           // Releases shipped in this period by all developers
	Cumulative map[string]int `json:"cumulative" yaml:"cumulative"` // Running sum per developer up to and including this period
}

// TimelineResult holds the cumulative timeline and the developers appearing on it.
type TimelineResult struct {
	Granularity TimelineGranularity `json:"granularity" yaml:"granularity"`
	Developers  []string            `json:"developers" yaml:"developers"`
	Points      []TimelinePoint     `json:"points" yaml:"points"`
}

// QuarterTotal is the release total of one quarter, labelled "YYYY-Qn".
type QuarterTotal struct {
	Quarter string `json:"quarter" yaml:"quarter"`
	Total   int    `json:"total" yaml:"total"`
}

// QuarterDelta is a quarter total with its change relative to the previous quarter.
// DeltaPct is nil for the first quarter and when the previous total is zero.
type QuarterDelta struct {
	Quarter  string `json:"quarter" yaml:"quarter"`
	Total    int    `json:"total" yaml:"total"`
	DeltaPct *int   `json:"delta_pct" yaml:"delta_pct"`
}
