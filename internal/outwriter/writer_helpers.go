package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	"gopkg.in/yaml.v3"
)

// errUnsupported is wrapped when a view has no rendering for the requested format.
var errUnsupported = errors.New("output format not supported")

// view describes how one result renders in every output format.
// A nil renderer means the format is not available for this view.
type view struct {
	name     string                      // human name used in messages and page titles
	duration time.Duration               // time taken to build the result, printed below text output
	data     any                         // payload for JSON and YAML
	table    func(io.Writer) error       // text output
	csv      func(*csv.Writer) error     // CSV output
	charts   func() []components.Charter // HTML output
	parquet  func(path string) error     // Parquet output, always to a file
}

// writeView renders v in the configured format to stdout or the configured output file.
func writeView(v view, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquetView(v, cfg.OutputFile)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return renderView(w, v, cfg.Output)
	}, successMessage(cfg.Output))
}

// renderView renders v in a stream format.
func renderView(w io.Writer, v view, mode schema.OutputMode) error {
	switch mode {
	case schema.JSONOut:
		return writeJSON(w, v.data)
	case schema.YAMLOut:
		return writeYAML(w, v.data)
	case schema.CSVOut:
		if v.csv == nil {
			return unsupported(mode, v.name)
		}
		csvWriter := csv.NewWriter(w)
		if err := v.csv(csvWriter); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		csvWriter.Flush()
		return csvWriter.Error()
	case schema.HTMLOut:
		if v.charts == nil {
			return unsupported(mode, v.name)
		}
		return writeHTML(w, v.name, v.charts())
	case schema.ParquetOut:
		return unsupported(mode, v.name)
	default:
		if v.table == nil {
			return unsupported(mode, v.name)
		}
		if err := v.table(w); err != nil {
			return err
		}
		if v.duration > 0 {
			_, err := fmt.Fprintf(w, "Completed in %v\n", v.duration.Round(time.Millisecond))
			return err
		}
		return nil
	}
}

func writeParquetView(v view, outputFile string) error {
	if v.parquet == nil {
		return unsupported(schema.ParquetOut, v.name)
	}
	if outputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	if err := v.parquet(outputFile); err != nil {
		return fmt.Errorf("error writing Parquet output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMessage(schema.ParquetOut), outputFile)
	return nil
}

func unsupported(mode schema.OutputMode, name string) error {
	return fmt.Errorf("%w: %s output for %s", errUnsupported, mode, name)
}

func successMessage(mode schema.OutputMode) string {
	switch mode {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.YAMLOut:
		return "Wrote YAML"
	case schema.CSVOut:
		return "Wrote CSV"
	case schema.HTMLOut:
		return "Wrote HTML"
	case schema.ParquetOut:
		return "Wrote Parquet"
	default:
		return "Wrote table"
	}
}

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML is the YAML counterpart of writeJSON.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// writeCSVWithHeader handles the common pattern of writing a header, then data rows.
func writeCSVWithHeader(w *csv.Writer, header []string, rows [][]string) error {
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtPct func(int) string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	fmtPct = func(v int) string {
		return fmt.Sprintf("%d%%", v)
	}
	return fmtFloat, fmtPct
}

// writeSummary prints the summary line below a text table.
func writeSummary(w io.Writer, summary string) error {
	_, err := fmt.Fprintln(w, summary)
	return err
}
