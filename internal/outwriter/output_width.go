package outwriter

import (
	"io"
	"os"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// getMaxNameWidth calculates the maximum width of the name column in table output
// based on terminal width and the width taken by the other columns.
func getMaxNameWidth(cfg *contract.Config, otherColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Each column takes roughly 10 characters with borders and padding
	available := termWidth - otherColumns*10 - 10
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}

// newTable creates a table with right-aligned rows.
func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}
