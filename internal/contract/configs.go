package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/shipboard/schema"
)

// Default values for configuration.
const (
	DefaultAPIURL    = "http://localhost:8000/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10.0 // requests per second
	DefaultLimit     = 25
	MaxLimit         = 1000
	DefaultPrecision = 0
	MaxPrecision     = 2
)

// DateFormat is the ISO date layout exchanged with the backend.
const DateFormat = "2006-01-02"

// Config holds the runtime configuration for shipboard.
// This struct is the "final, validated" config.
type Config struct {
	APIURL    string
	Timeout   time.Duration
	RateLimit float64

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	Limit      int
	UseColors  bool

	// Filter is the period scope requested on the command line.
	Filter schema.BoardFilter

	// FilterExplicit is true when period flags were given; otherwise the saved filter may apply.
	FilterExplicit bool
	UseSavedFilter bool

	Granularity    schema.TimelineGranularity
	OwnershipScope schema.OwnershipScope

	// CompareMode is true when both comparison ranges are set.
	CompareMode   bool
	CompareBase   schema.BoardFilter
	CompareTarget schema.BoardFilter

	PrefsBackend   schema.DatabaseBackend
	PrefsDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel  string
	LogFormat string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	APIURL           string  `mapstructure:"api-url"`
	Timeout          string  `mapstructure:"timeout"`
	RateLimit        float64 `mapstructure:"rate-limit"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Precision        int     `mapstructure:"precision"`
	Width            int     `mapstructure:"width"`
	Limit            int     `mapstructure:"limit"`
	Color            string  `mapstructure:"color"`
	PrefsBackend     string  `mapstructure:"prefs-backend"`
	PrefsDBConnect   string  `mapstructure:"prefs-db-connect"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
	LogLevel         string  `mapstructure:"log-level"`
	LogFormat        string  `mapstructure:"log-format"`

	// --- Period flags ---
	Mode           string `mapstructure:"mode"`
	SprintID       int64  `mapstructure:"sprint-id"`
	From           string `mapstructure:"from"`
	To             string `mapstructure:"to"`
	UseSavedFilter bool   `mapstructure:"use-saved-filter"`

	// --- Fields from timelineCmd.Flags() ---
	Granularity string `mapstructure:"granularity"`

	// --- Fields from ownershipCmd.Flags() ---
	Scope string `mapstructure:"scope"`

	// --- Fields from compareCmd.Flags() ---
	BaseFrom   string `mapstructure:"base-from"`
	BaseTo     string `mapstructure:"base-to"`
	TargetFrom string `mapstructure:"target-from"`
	TargetTo   string `mapstructure:"target-to"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Filter.SprintID != nil {
		id := *c.Filter.SprintID
		clone.Filter.SprintID = &id
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAPIConfig(cfg, input); err != nil {
		return err
	}
	if err := processFilter(cfg, input); err != nil {
		return err
	}
	if err := processCompareRanges(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.BoltBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseDate validates an ISO "YYYY-MM-DD" date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// validateSimpleInputs processes and validates all output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.LogFormat = strings.ToLower(input.LogFormat)
	cfg.LogLevel = strings.ToLower(input.LogLevel)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, html, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	cfg.Granularity = schema.MonthlyTimeline
	if input.Granularity != "" {
		cfg.Granularity = schema.TimelineGranularity(strings.ToLower(input.Granularity))
		if _, ok := schema.ValidTimelineGranularities[cfg.Granularity]; !ok {
			return fmt.Errorf("invalid granularity '%s'. must be monthly, sprint", input.Granularity)
		}
	}

	cfg.OwnershipScope = schema.RepoScope
	if input.Scope != "" {
		cfg.OwnershipScope = schema.OwnershipScope(strings.ToLower(input.Scope))
		if _, ok := schema.ValidOwnershipScopes[cfg.OwnershipScope]; !ok {
			return fmt.Errorf("invalid scope '%s'. must be repo, project", input.Scope)
		}
	}

	return nil
}

// processAPIConfig validates the backend URL, timeout and rate limit.
func processAPIConfig(cfg *Config, input *ConfigRawInput) error {
	apiURL := strings.TrimRight(strings.TrimSpace(input.APIURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid api url %q: must be an absolute http(s) URL", input.APIURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid api url scheme %q: must be http or https", parsed.Scheme)
	}
	cfg.APIURL = apiURL

	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		timeout, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("timeout must be greater than 0 (received %s)", timeout)
		}
		cfg.Timeout = timeout
	}

	if input.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative (received %v)", input.RateLimit)
	}
	cfg.RateLimit = input.RateLimit
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}

	return nil
}

// processFilter validates the period flags into a BoardFilter.
func processFilter(cfg *Config, input *ConfigRawInput) error {
	cfg.UseSavedFilter = input.UseSavedFilter
	cfg.FilterExplicit = input.Mode != "" || input.SprintID > 0 || input.From != "" || input.To != ""

	filter, err := BuildFilter(input.Mode, input.SprintID, input.From, input.To)
	if err != nil {
		return err
	}
	cfg.Filter = filter
	return nil
}

// BuildFilter turns raw period arguments into a validated BoardFilter.
// An empty mode is inferred: a sprint id implies sprint mode and any date implies range mode.
func BuildFilter(rawMode string, sprintID int64, from, to string) (schema.BoardFilter, error) {
	mode := schema.FilterMode(strings.ToLower(rawMode))
	if mode == "" {
		switch {
		case sprintID > 0:
			mode = schema.SprintMode
		case from != "" || to != "":
			mode = schema.RangeMode
		default:
			mode = schema.AllMode
		}
	}
	if _, ok := schema.ValidFilterModes[mode]; !ok {
		return schema.BoardFilter{}, fmt.Errorf("invalid mode '%s'. must be all, sprint, range", rawMode)
	}

	filter := schema.BoardFilter{Mode: mode}
	switch mode {
	case schema.SprintMode:
		if sprintID <= 0 {
			return schema.BoardFilter{}, fmt.Errorf("--sprint-id is required when mode is sprint")
		}
		id := sprintID
		filter.SprintID = &id
	case schema.RangeMode:
		var fromDate, toDate time.Time
		var err error
		if from != "" {
			if fromDate, err = ParseDate(from); err != nil {
				return schema.BoardFilter{}, fmt.Errorf("invalid --from: %w", err)
			}
		}
		if to != "" {
			if toDate, err = ParseDate(to); err != nil {
				return schema.BoardFilter{}, fmt.Errorf("invalid --to: %w", err)
			}
		}
		if from != "" && to != "" && fromDate.After(toDate) {
			return schema.BoardFilter{}, fmt.Errorf("--from (%s) must not be after --to (%s)", from, to)
		}
		filter.From = from
		filter.To = to
	}
	return filter, nil
}

// RevalidateFilter applies period arguments given outside the command line, e.g. by an MCP
// tool call. Without any argument the config keeps its current filter.
func RevalidateFilter(cfg *Config, rawMode string, sprintID int64, from, to string) error {
	if rawMode == "" && sprintID <= 0 && from == "" && to == "" {
		return nil
	}
	filter, err := BuildFilter(rawMode, sprintID, from, to)
	if err != nil {
		return err
	}
	cfg.Filter = filter
	// Tool calls never overwrite the saved filter.
	cfg.FilterExplicit = false
	cfg.UseSavedFilter = false
	return nil
}

// processCompareRanges validates the base and target ranges of a period comparison.
// Comparison is enabled only when all four bounds are given.
func processCompareRanges(cfg *Config, input *ConfigRawInput) error {
	bounds := []string{input.BaseFrom, input.BaseTo, input.TargetFrom, input.TargetTo}
	given := 0
	for _, b := range bounds {
		if b == "" {
			continue
		}
		given++
		if _, err := ParseDate(b); err != nil {
			return fmt.Errorf("invalid comparison bound: %w", err)
		}
	}
	if given == 0 {
		return nil
	}
	if given != len(bounds) {
		return fmt.Errorf("--base-from, --base-to, --target-from and --target-to must all be set to compare")
	}
	if input.BaseFrom > input.BaseTo {
		return fmt.Errorf("--base-from (%s) must not be after --base-to (%s)", input.BaseFrom, input.BaseTo)
	}
	if input.TargetFrom > input.TargetTo {
		return fmt.Errorf("--target-from (%s) must not be after --target-to (%s)", input.TargetFrom, input.TargetTo)
	}

	cfg.CompareMode = true
	cfg.CompareBase = schema.BoardFilter{Mode: schema.RangeMode, From: input.BaseFrom, To: input.BaseTo}
	cfg.CompareTarget = schema.BoardFilter{Mode: schema.RangeMode, From: input.TargetFrom, To: input.TargetTo}
	return nil
}

// RevalidateCompare applies comparison bounds given outside the command line.
func RevalidateCompare(cfg *Config, baseFrom, baseTo, targetFrom, targetTo string) error {
	cfg.CompareMode = false
	input := &ConfigRawInput{BaseFrom: baseFrom, BaseTo: baseTo, TargetFrom: targetFrom, TargetTo: targetTo}
	if err := processCompareRanges(cfg, input); err != nil {
		return err
	}
	if !cfg.CompareMode {
		return fmt.Errorf("--base-from, --base-to, --target-from and --target-to must all be set to compare")
	}
	return nil
}

// validateBackendConfigs validates preferences and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Preferences Backend Validation ---
	cfg.PrefsBackend = schema.DatabaseBackend(strings.ToLower(input.PrefsBackend))
	if cfg.PrefsBackend == "" {
		cfg.PrefsBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidPreferenceBackends[cfg.PrefsBackend]; !ok {
		return fmt.Errorf("invalid preferences backend '%s'. must be sqlite, mysql, postgresql, bolt, none", input.PrefsBackend)
	}
	cfg.PrefsDBConnect = input.PrefsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.PrefsBackend, cfg.PrefsDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Preferences and history must not share a SQLite file
	if cfg.PrefsBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		prefsPath := cfg.PrefsDBConnect
		if prefsPath == "" {
			prefsPath = GetPrefsDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if prefsPath == historyPath {
			return fmt.Errorf("preferences and history storage must use different SQLite database files. Both resolve to %q", prefsPath)
		}
	}

	return nil
}
