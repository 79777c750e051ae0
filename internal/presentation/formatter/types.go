package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/openclaw/clawstats/internal/data/aggregator"
)

// Renderer turns a folded summary into output. Renderers only read the
// summary; all derivation beyond display math happened upstream.
type Renderer interface {
	Format(summary *aggregator.Summary) error
}

const defaultReportWidth = 60

// reportWidth returns the banner width, shrinking below the default only
// when the terminal itself is narrower.
func reportWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || w >= defaultReportWidth {
		return defaultReportWidth
	}
	return w
}

// padCell pads a cell to a display width, runewidth-aware so model names or
// session ids with wide runes keep columns aligned.
func padCell(s string, width int, leftAlign bool) string {
	actual := runewidth.StringWidth(s)
	if actual >= width {
		return s
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// printTable writes a fixed-width table with content-derived column widths.
// The first column is left-aligned, the rest right-aligned, matching the
// report layout. Empty tables print nothing.
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = padCell(cell, widths[i], i == 0)
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}

	printRow(headers)
	rules := make([]string, len(widths))
	for i, width := range widths {
		rules[i] = strings.Repeat("-", width)
	}
	fmt.Fprintln(w, strings.Join(rules, "  "))
	for _, row := range rows {
		printRow(row)
	}
}
