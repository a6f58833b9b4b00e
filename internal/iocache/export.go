package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/internal/parquet"
)

// ExecuteHistoryExport writes the global history store to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	return ExportHistory(Manager.GetHistoryStore(), outputFile)
}

// ExportHistory writes every snapshot run and developer row of store to
// outputFile+".snapshot_runs.parquet" and outputFile+".developer_metrics.parquet".
func ExportHistory(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is disabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no snapshot history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total snapshots: %d\n", status.TotalRuns)
	fmt.Printf("Total developer records: %d\n", status.TableSizes[developerMetricsTable])

	runs, err := store.GetAllSnapshotRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot runs: %w", err)
	}
	metrics, err := store.GetAllDeveloperSnapshots()
	if err != nil {
		return fmt.Errorf("failed to retrieve developer metrics: %w", err)
	}

	parquetRuns := parquet.ConvertSnapshotRunRecords(runs)
	runsFile := outputFile + ".snapshot_runs.parquet"
	if err := parquet.WriteSnapshotRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write snapshot runs: %w", err)
	}
	fmt.Printf("Exported %d snapshot runs to: %s\n", len(parquetRuns), runsFile)

	parquetMetrics := parquet.ConvertDeveloperSnapshotRecords(metrics)
	metricsFile := outputFile + ".developer_metrics.parquet"
	if err := parquet.WriteDeveloperMetricsParquet(parquetMetrics, metricsFile); err != nil {
		return fmt.Errorf("failed to write developer metrics: %w", err)
	}
	fmt.Printf("Exported %d developer records to: %s\n", len(parquetMetrics), metricsFile)

	fmt.Println("\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow) or Spark.")
	return nil
}
