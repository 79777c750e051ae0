package formatter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/openclaw/clawstats/internal/data/aggregator"
	"github.com/openclaw/clawstats/internal/util"
)

// TextFormatter renders the human-readable usage report: totals, per-date,
// per-model (with effective $/M rates), per-channel and per-session tables,
// plus the hourly breakdown when Detail is set.
type TextFormatter struct {
	Detail bool
	Writer io.Writer
}

func NewTextFormatter(detail bool) *TextFormatter {
	return &TextFormatter{Detail: detail, Writer: os.Stdout}
}

func (f *TextFormatter) Format(s *aggregator.Summary) error {
	w := f.Writer
	t := s.Totals

	if t.Calls == 0 {
		fmt.Fprintln(w, "No usage data found.")
		return nil
	}

	banner := strings.Repeat("=", reportWidth())
	dayWord := "days"
	if len(s.ByDate) == 1 {
		dayWord = "day"
	}
	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintf(w, "  Token Usage Report (%d %s, %d API calls)\n", len(s.ByDate), dayWord, t.Calls)
	fmt.Fprintf(w, "%s\n", banner)
	fmt.Fprintf(w, "  Input:       %10s\n", util.FormatTokens(t.Input))
	fmt.Fprintf(w, "  Output:      %10s\n", util.FormatTokens(t.Output))
	fmt.Fprintf(w, "  Cache Read:  %10s\n", util.FormatTokens(t.CacheRead))
	fmt.Fprintf(w, "  Cache Write: %10s\n", util.FormatTokens(t.CacheWrite))
	fmt.Fprintf(w, "  Total:       %10s\n", util.FormatTokens(t.Total))
	fmt.Fprintf(w, "  Est. Cost:   %10s\n", util.FormatCost(t.Cost))

	f.printByDate(w, s)
	f.printByModel(w, s)
	f.printByChannel(w, s)
	f.printBySession(w, s)
	if f.Detail {
		f.printByHour(w, s)
	}

	fmt.Fprintln(w)
	return nil
}

func (f *TextFormatter) printByDate(w io.Writer, s *aggregator.Summary) {
	fmt.Fprintln(w, "\n--- By Date ---")

	dates := make([]string, 0, len(s.ByDate))
	for date := range s.ByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var rows [][]string
	for _, date := range dates {
		b := s.ByDate[date]
		rows = append(rows, []string{
			date,
			util.FormatTokens(b.Input),
			util.FormatTokens(b.Output),
			util.FormatTokens(b.CacheRead),
			util.FormatTokens(b.Total),
			util.FormatCost(b.Cost),
			fmt.Sprintf("%d", b.Calls),
		})
	}
	printTable(w, []string{"Date", "Input", "Output", "CacheRd", "Total", "Cost", "Calls"}, rows)
}

func (f *TextFormatter) printByModel(w io.Writer, s *aggregator.Summary) {
	fmt.Fprintln(w, "\n--- By Model ---")

	models := make([]string, 0, len(s.ByModel))
	for m := range s.ByModel {
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool {
		bi, bj := s.ByModel[models[i]], s.ByModel[models[j]]
		if bi.Total != bj.Total {
			return bi.Total > bj.Total
		}
		return models[i] < models[j]
	})

	var rows [][]string
	for _, m := range models {
		b := s.ByModel[m]
		if b.Total == 0 && b.Cost == 0 {
			continue
		}
		rows = append(rows, []string{
			m,
			util.FormatTokens(b.Input),
			util.FormatTokens(b.Output),
			util.FormatTokens(b.CacheRead),
			util.FormatTokens(b.CacheWrite),
			util.FormatCost(b.Cost),
			fmt.Sprintf("$%.2f", perMillionRate(b.CostInput, b.Input)),
			fmt.Sprintf("$%.2f", perMillionRate(b.CostOutput, b.Output)),
			fmt.Sprintf("$%.2f", perMillionRate(b.CostCacheRead, b.CacheRead)),
			fmt.Sprintf("$%.2f", perMillionRate(b.CostCacheWrite, b.CacheWrite)),
			fmt.Sprintf("%.0f%%", percent(b.Total, s.Totals.Total)),
			fmt.Sprintf("%d", b.Calls),
		})
	}
	printTable(w, []string{"Model", "Input", "Output", "CacheRd", "CacheWr", "Cost",
		"In$/M", "Out$/M", "CRd$/M", "CWr$/M", "%", "Calls"}, rows)
}

func (f *TextFormatter) printByChannel(w io.Writer, s *aggregator.Summary) {
	fmt.Fprintln(w, "\n--- By Channel ---")

	channels := make([]string, 0, len(s.ByChannel))
	for ch := range s.ByChannel {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool {
		bi, bj := s.ByChannel[channels[i]], s.ByChannel[channels[j]]
		if bi.Total != bj.Total {
			return bi.Total > bj.Total
		}
		return channels[i] < channels[j]
	})

	var rows [][]string
	for _, ch := range channels {
		b := s.ByChannel[ch]
		if b.Total == 0 && b.Cost == 0 {
			continue
		}
		rows = append(rows, []string{
			ch,
			util.FormatTokens(b.Input),
			util.FormatTokens(b.Output),
			util.FormatTokens(b.Total),
			util.FormatCost(b.Cost),
			fmt.Sprintf("%.0f%%", percent(b.Total, s.Totals.Total)),
		})
	}
	printTable(w, []string{"Channel", "Input", "Output", "Total", "Cost", "%"}, rows)
}

func (f *TextFormatter) printBySession(w io.Writer, s *aggregator.Summary) {
	fmt.Fprintln(w, "\n--- By Session (top cost) ---")

	sessions := make([]string, 0, len(s.BySession))
	for sid := range s.BySession {
		sessions = append(sessions, sid)
	}
	sort.Slice(sessions, func(i, j int) bool {
		bi, bj := s.BySession[sessions[i]], s.BySession[sessions[j]]
		if bi.Cost != bj.Cost {
			return bi.Cost > bj.Cost
		}
		return sessions[i] < sessions[j]
	})

	var rows [][]string
	for _, sid := range sessions {
		b := s.BySession[sid]
		if b.Total == 0 && b.Cost == 0 {
			continue
		}
		rows = append(rows, []string{
			sid,
			string(b.Channel),
			shortModelName(b.Model),
			util.FormatTokens(b.Total),
			util.FormatCost(b.Cost),
			fmt.Sprintf("%.0f%%", percent(b.Total, s.Totals.Total)),
			fmt.Sprintf("%d", b.Calls),
		})
	}
	printTable(w, []string{"Session", "Channel", "Model", "Total", "Cost", "%", "Calls"}, rows)
}

func (f *TextFormatter) printByHour(w io.Writer, s *aggregator.Summary) {
	fmt.Fprintln(w, "\n--- By Hour (PST) ---")

	var rows [][]string
	for h := 0; h < 24; h++ {
		b, ok := s.ByHour[h]
		if !ok || b.Total == 0 {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprintf("%02d:00", h),
			util.FormatTokens(b.Total),
			fmt.Sprintf("%d", b.Calls),
		})
	}
	printTable(w, []string{"Hour", "Total", "Calls"}, rows)
}

// perMillionRate derives the effective $/M-token rate from what was actually
// billed. Zero token counts yield a zero rate rather than a division error.
func perMillionRate(cost float64, tokens int64) float64 {
	if tokens <= 0 {
		return 0
	}
	return cost / float64(tokens) * 1_000_000
}

func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// shortModelName trims a provider-prefixed model id to its last segment for
// the narrow session table.
func shortModelName(model string) string {
	if idx := strings.LastIndex(model, "/"); idx >= 0 {
		return model[idx+1:]
	}
	return model
}
