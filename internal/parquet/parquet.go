// Package parquet provides data structures and functions for exporting shipboard
// snapshot history and developer views to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/shipboard/schema"
	"github.com/parquet-go/parquet-go"
)

// SnapshotRun represents a single recorded dashboard snapshot.
// This struct maps to the shipboard_snapshot_runs database table.
type SnapshotRun struct {
	SnapshotID int64  `parquet:"snapshot_id,snappy"`
	RunTag     string `parquet:"run_tag,snappy"`

	// StartTime is when the snapshot began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time  `parquet:"start_time,snappy"`
	EndTime   *time.Time `parquet:"end_time,optional,snappy"`

	RunDurationMs   *int32 `parquet:"run_duration_ms,optional,snappy"`
	TotalDevelopers int32  `parquet:"total_developers,snappy"`

	// PeriodLabel is the human label of the period the snapshot covers
	PeriodLabel string `parquet:"period_label,snappy"`

	// ConfigParams contains the JSON-encoded filter parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// DeveloperMetrics represents one developer's metrics within a snapshot.
// This struct maps to the shipboard_developer_metrics database table.
type DeveloperMetrics struct {
	SnapshotID     int64     `parquet:"snapshot_id,snappy"`
	DeveloperKey   string    `parquet:"developer_key,snappy"`
	SnapshotTime   time.Time `parquet:"snapshot_time,snappy"`
	Releases       int32     `parquet:"releases,snappy"`
	Feat           int32     `parquet:"feat,snappy"`
	Fix            int32     `parquet:"fix,snappy"`
	Refacto        int32     `parquet:"refacto,snappy"`
	Chore          int32     `parquet:"chore,snappy"`
	BugsIntroduced int32     `parquet:"bugs_introduced,snappy"`
	AutoFixes      int32     `parquet:"auto_fixes,snappy"`
	CoveragePct    int32     `parquet:"coverage_pct,snappy"`
}

// DeveloperRow is the flattened per-developer view written by --output parquet.
type DeveloperRow struct {
	DeveloperKey string `parquet:"developer_key,snappy"`
	DisplayName  string `parquet:"display_name,snappy"`
	PeriodLabel  string `parquet:"period_label,snappy"`
	Feat         int32  `parquet:"feat,snappy"`
	Fix          int32  `parquet:"fix,snappy"`
	Refacto      int32  `parquet:"refacto,snappy"`
	Chore        int32  `parquet:"chore,snappy"`
	Total        int32  `parquet:"total,snappy"`
	FeatPct      int32  `parquet:"feat_pct,snappy"`
	FixPct       int32  `parquet:"fix_pct,snappy"`
	RefactoPct   int32  `parquet:"refacto_pct,snappy"`
	ChorePct     int32  `parquet:"chore_pct,snappy"`
}

// writeParquet writes rows to a new Parquet file using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the row groups and writes the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteSnapshotRunsParquet writes snapshot runs to a Parquet file.
func WriteSnapshotRunsParquet(data []SnapshotRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDeveloperMetricsParquet writes developer snapshot metrics to a Parquet file.
func WriteDeveloperMetricsParquet(data []DeveloperMetrics, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDeveloperRowsParquet writes the per-developer view to a Parquet file.
func WriteDeveloperRowsParquet(data []DeveloperRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertSnapshotRunRecords converts schema.SnapshotRunRecord to SnapshotRun for Parquet export.
func ConvertSnapshotRunRecords(records []schema.SnapshotRunRecord) []SnapshotRun {
	result := make([]SnapshotRun, len(records))
	for i, record := range records {
		result[i] = SnapshotRun{
			SnapshotID:      record.SnapshotID,
			RunTag:          record.RunTag,
			StartTime:       record.StartTime,
			EndTime:         record.EndTime,
			RunDurationMs:   record.RunDurationMs,
			TotalDevelopers: record.TotalDevelopers,
			PeriodLabel:     record.PeriodLabel,
			ConfigParams:    record.ConfigParams,
		}
	}
	return result
}

// ConvertDeveloperSnapshotRecords converts schema.DeveloperSnapshotRecord to DeveloperMetrics for Parquet export.
func ConvertDeveloperSnapshotRecords(records []schema.DeveloperSnapshotRecord) []DeveloperMetrics {
	result := make([]DeveloperMetrics, len(records))
	for i, record := range records {
		result[i] = DeveloperMetrics{
			SnapshotID:     record.SnapshotID,
			DeveloperKey:   record.DeveloperKey,
			SnapshotTime:   record.SnapshotTime,
			Releases:       record.Releases,
			Feat:           record.Feat,
			Fix:            record.Fix,
			Refacto:        record.Refacto,
			Chore:          record.Chore,
			BugsIntroduced: record.BugsIntroduced,
			AutoFixes:      record.AutoFixes,
			CoveragePct:    record.CoveragePct,
		}
	}
	return result
}

// ConvertBreakdowns converts developer breakdowns to DeveloperRow for Parquet output.
func ConvertBreakdowns(breakdowns []schema.DeveloperBreakdown, periodLabel string) []DeveloperRow {
	result := make([]DeveloperRow, len(breakdowns))
	for i, b := range breakdowns {
		result[i] = DeveloperRow{
			DeveloperKey: b.DeveloperKey,
			DisplayName:  b.DisplayName,
			PeriodLabel:  periodLabel,
			Feat:         int32(b.Breakdown.Feat),
			Fix:          int32(b.Breakdown.Fix),
			Refacto:      int32(b.Breakdown.Refacto),
			Chore:        int32(b.Breakdown.Chore),
			Total:        int32(b.Breakdown.Total),
			FeatPct:      int32(b.Percentages.Feat),
			FixPct:       int32(b.Percentages.Fix),
			RefactoPct:   int32(b.Percentages.Refacto),
			ChorePct:     int32(b.Percentages.Chore),
		}
	}
	return result
}
