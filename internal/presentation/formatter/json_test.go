package formatter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawstats/internal/core/model"
	"github.com/openclaw/clawstats/internal/data/aggregator"
)

func TestJSONFormatterShape(t *testing.T) {
	records := []model.UsageRecord{
		{
			Date: "2026-02-02", Hour: 20, Model: "m", Provider: "p",
			SessionID: "00aec530", Channel: model.ChannelTelegram,
			Input: 100, Output: 50, Total: 150, Cost: 0.5,
		},
	}
	summary := aggregator.Aggregate(records)

	var buf bytes.Buffer
	f := &JSONFormatter{Writer: &buf}
	require.NoError(t, f.Format(summary))

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	for _, key := range []string{"totals", "by_date", "by_model", "by_channel", "by_session", "by_hour"} {
		assert.Contains(t, out, key)
	}

	var byHour map[string]map[string]json.Number
	require.NoError(t, json.Unmarshal(out["by_hour"], &byHour))
	assert.Contains(t, byHour, "20", "hour keys serialize as strings")

	var totals map[string]json.Number
	require.NoError(t, json.Unmarshal(out["totals"], &totals))
	assert.Equal(t, json.Number("150"), totals["total"])
	assert.Equal(t, json.Number("1"), totals["calls"])
}

func TestJSONFormatterEmptySummary(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Writer: &buf}
	require.NoError(t, f.Format(aggregator.NewSummary()))

	var out struct {
		Totals    map[string]json.Number     `json:"totals"`
		ByDate    map[string]json.RawMessage `json:"by_date"`
		ByHour    map[string]json.RawMessage `json:"by_hour"`
		BySession map[string]json.RawMessage `json:"by_session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, json.Number("0"), out.Totals["total"])
	assert.NotNil(t, out.ByDate)
	assert.Empty(t, out.ByDate)
	assert.Empty(t, out.ByHour)
	assert.Empty(t, out.BySession)
}
