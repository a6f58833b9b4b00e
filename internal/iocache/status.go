package iocache

import (
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/shipboard/schema"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// formatStatusTime prints an absolute timestamp followed by its relative age.
func formatStatusTime(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format(statusTimeLayout), humanize.Time(t))
}

// PrintPreferenceStatus prints preferences store status information.
func PrintPreferenceStatus(status schema.PreferenceStatus) {
	fmt.Printf("Preferences Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %s\n", humanize.Comma(int64(status.TotalEntries)))
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", formatStatusTime(status.LastEntryTime))
		fmt.Printf("Oldest Entry: %s\n", formatStatusTime(status.OldestEntryTime))
	}
}

// PrintHistoryStatus prints snapshot history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Snapshots: %s\n", humanize.Comma(int64(status.TotalRuns)))
	if status.TotalRuns > 0 {
		fmt.Printf("Last Snapshot ID: %d\n", status.LastRunID)
		fmt.Printf("Last Snapshot: %s\n", formatStatusTime(status.LastRunTime))
		fmt.Printf("Oldest Snapshot: %s\n", formatStatusTime(status.OldestRunTime))
		fmt.Printf("Developers Tracked: %d\n", status.TotalDevelopers)
	}

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	fmt.Println("Table Sizes:")
	for _, table := range tables {
		fmt.Printf("  %s: %s rows\n", table, humanize.Comma(status.TableSizes[table]))
	}
}
