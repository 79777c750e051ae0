package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawstats/internal/core/model"
	"github.com/openclaw/clawstats/internal/data/aggregator"
)

func sampleSummary() *aggregator.Summary {
	records := []model.UsageRecord{
		{
			Date: "2026-02-02", Hour: 20, Model: "anthropic/claude-sonnet", Provider: "anthropic",
			SessionID: "00aec530", Channel: model.ChannelTelegram,
			Input: 1_200_000, Output: 50_000, CacheRead: 10_000, CacheWrite: 5_000, Total: 1_265_000,
			Cost: 4.5, CostInput: 3.6, CostOutput: 0.75, CostCacheRead: 0.1, CostCacheWrite: 0.05,
		},
		{
			Date: "2026-02-03", Hour: 9, Model: "openai/gpt-5", Provider: "openai",
			SessionID: "deadbeef", Channel: model.ChannelWebchat,
			Input: 500, Output: 300, Total: 800, Cost: 0.002, CostInput: 0.001, CostOutput: 0.001,
		},
	}
	return aggregator.Aggregate(records)
}

func TestTextFormatterEmptySummary(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{Writer: &buf}

	require.NoError(t, f.Format(aggregator.NewSummary()))

	assert.Equal(t, "No usage data found.\n", buf.String())
}

func TestTextFormatterSections(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{Writer: &buf}

	require.NoError(t, f.Format(sampleSummary()))
	out := buf.String()

	assert.Contains(t, out, "Token Usage Report (2 days, 2 API calls)")
	assert.Contains(t, out, "--- By Date ---")
	assert.Contains(t, out, "--- By Model ---")
	assert.Contains(t, out, "--- By Channel ---")
	assert.Contains(t, out, "--- By Session (top cost) ---")
	assert.NotContains(t, out, "--- By Hour (PST) ---", "hourly section requires Detail")

	assert.Contains(t, out, "2026-02-02")
	assert.Contains(t, out, "telegram")
	assert.Contains(t, out, "webchat")
	assert.Contains(t, out, "00aec530")
	// Session table shows the short model name.
	assert.Contains(t, out, "claude-sonnet")
	// Compact token formatting.
	assert.Contains(t, out, "1.2M")
}

func TestTextFormatterDetailAddsHourSection(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{Detail: true, Writer: &buf}

	require.NoError(t, f.Format(sampleSummary()))
	out := buf.String()

	assert.Contains(t, out, "--- By Hour (PST) ---")
	assert.Contains(t, out, "20:00")
	assert.Contains(t, out, "09:00")
}

func TestTextFormatterSingleDayHeader(t *testing.T) {
	records := []model.UsageRecord{
		{Date: "2026-02-02", Model: "m", SessionID: "s", Channel: model.ChannelOther, Total: 10, Cost: 0.25},
	}
	var buf bytes.Buffer
	f := &TextFormatter{Writer: &buf}

	require.NoError(t, f.Format(aggregator.Aggregate(records)))

	assert.Contains(t, buf.String(), "(1 day, 1 API calls)")
}

func TestTextFormatterDerivedRates(t *testing.T) {
	// 3.6 dollars over 1.2M input tokens is an effective $3.00/M.
	var buf bytes.Buffer
	f := &TextFormatter{Writer: &buf}

	require.NoError(t, f.Format(sampleSummary()))

	assert.Contains(t, buf.String(), "$3.00")
}

func TestPadCell(t *testing.T) {
	assert.Equal(t, "ab   ", padCell("ab", 5, true))
	assert.Equal(t, "   ab", padCell("ab", 5, false))
	assert.Equal(t, "abcdef", padCell("abcdef", 3, true), "overlong cells are not truncated")
}
