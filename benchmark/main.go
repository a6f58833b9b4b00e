// Package main provides a performance benchmarking tool for the shipboard CLI.
// It measures execution times of each view command against a running backend,
// running each command multiple times without history tracking and with SQLite history tracking,
// treating the first successful tracked run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - shipboard binary installed and available in PATH
// - A reachable delivery-metrics backend
//
// Usage: go run benchmark/main.go [api-url]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (untracked average, cold run and average of warm tracked runs).
type BenchmarkResult struct {
	Command     string
	UntrackedAv string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	APIURL        string
	Timeout       time.Duration
	UntrackedRuns int
	TrackedRuns   int
	HistoryDB     string
	Commands      [][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [api-url]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		APIURL:        os.Args[1],
		Timeout:       2 * time.Minute,
		UntrackedRuns: 3,
		TrackedRuns:   4,
		HistoryDB:     filepath.Join(os.TempDir(), "shipboard_benchmark_history.db"),
		Commands: [][]string{
			{"developers"},
			{"timeline", "--granularity", "sprint"},
			{"bugfix"},
			{"ownership", "--scope", "repo"},
			{"coverage"},
			{"quarters"},
			{"incidents"},
			{"dashboard"},
		},
	}

	if _, err := exec.LookPath("shipboard"); err != nil {
		fmt.Println("Prerequisites check failed: shipboard binary not found in PATH")
		os.Exit(1)
	}

	// Start from an empty history store
	_ = os.Remove(config.HistoryDB)

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every configured command in both phases.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %d commands, %v timeout, untracked: %d runs, tracked: %d runs\n",
		len(config.Commands), config.Timeout, config.UntrackedRuns, config.TrackedRuns)

	results := make([]BenchmarkResult, 0, len(config.Commands))
	for _, command := range config.Commands {
		name := strings.Join(command, " ")
		fmt.Printf("Running %s\n", name)

		_, untracked := runPhase(config, command, []string{"--history-backend", "none"}, config.UntrackedRuns)
		cold, warm := runPhase(config, command,
			[]string{"--history-backend", "sqlite", "--history-db-connect", config.HistoryDB}, config.TrackedRuns)

		coldStr := "TIMEOUT"
		if cold > 0 {
			coldStr = fmt.Sprintf("%.3fs", cold)
		}
		fmt.Printf("  Untracked average: %s, Cold time: %s, Warm average: %s\n", untracked, coldStr, warm)

		results = append(results, BenchmarkResult{
			Command:     name,
			UntrackedAv: untracked,
			ColdTime:    coldStr,
			WarmTime:    warm,
		})
	}
	return results
}

// runPhase runs a command numRuns times and returns the first time and the average of the others.
func runPhase(config BenchmarkConfig, command, extraArgs []string, numRuns int) (coldTime float64, avgTime string) {
	args := append([]string{}, command...)
	args = append(args, "--api-url", config.APIURL, "--output", "text")
	args = append(args, extraArgs...)

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "shipboard", args...).CombinedOutput()
		cancel()
		if err == nil && isSuccess(output) {
			times = append(times, time.Since(start).Seconds())
		}
	}

	if len(times) == 0 {
		return 0, "TIMEOUT"
	}
	coldTime = times[0]
	rest := times
	if len(times) > 1 {
		rest = times[1:]
	}
	var sum float64
	for _, t := range rest {
		sum += t
	}
	return coldTime, fmt.Sprintf("%.3fs", sum/float64(len(rest)))
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("shipboard_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"cmd", "untracked_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Command, result.UntrackedAv, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-28s: Untracked: %s, Cold: %s, Warm: %s\n", result.Command, result.UntrackedAv, result.ColdTime, result.WarmTime)
	}
}
