// Package aggregator folds usage records into the multi-grouping summary
// consumed by the renderers.
package aggregator

import (
	"github.com/openclaw/clawstats/internal/core/model"
)

// Totals accumulates the full token breakdown plus cost and call count. The
// same shape backs the global totals and the per-date buckets.
type Totals struct {
	Input      int64   `json:"input"`
	Output     int64   `json:"output"`
	CacheRead  int64   `json:"cache_read"`
	CacheWrite int64   `json:"cache_write"`
	Total      int64   `json:"total"`
	Cost       float64 `json:"cost"`
	Calls      int     `json:"calls"`
}

// ModelBucket additionally carries the per-component cost sums, which the
// report uses to derive effective $/M rates from what was actually billed.
type ModelBucket struct {
	Input          int64   `json:"input"`
	Output         int64   `json:"output"`
	CacheRead      int64   `json:"cache_read"`
	CacheWrite     int64   `json:"cache_write"`
	Total          int64   `json:"total"`
	Cost           float64 `json:"cost"`
	CostInput      float64 `json:"cost_input"`
	CostOutput     float64 `json:"cost_output"`
	CostCacheRead  float64 `json:"cost_cache_read"`
	CostCacheWrite float64 `json:"cost_cache_write"`
	Calls          int     `json:"calls"`
}

type ChannelBucket struct {
	Input  int64   `json:"input"`
	Output int64   `json:"output"`
	Total  int64   `json:"total"`
	Cost   float64 `json:"cost"`
	Calls  int     `json:"calls"`
}

// SessionBucket keeps the last-seen channel and model alongside the sums;
// both are overwritten on every fold and exist only for display.
type SessionBucket struct {
	Input   int64            `json:"input"`
	Output  int64            `json:"output"`
	Total   int64            `json:"total"`
	Cost    float64          `json:"cost"`
	Calls   int              `json:"calls"`
	Channel model.ChannelTag `json:"channel"`
	Model   string           `json:"model"`
}

type HourBucket struct {
	Total int64 `json:"total"`
	Calls int   `json:"calls"`
}

// Summary is the fully folded aggregate: global totals plus groupings by
// date, model, channel, session, and hour-of-day. Serializing it yields the
// report's JSON shape directly (integer hour keys become strings).
type Summary struct {
	Totals    Totals                    `json:"totals"`
	ByDate    map[string]*Totals        `json:"by_date"`
	ByModel   map[string]*ModelBucket   `json:"by_model"`
	ByChannel map[string]*ChannelBucket `json:"by_channel"`
	BySession map[string]*SessionBucket `json:"by_session"`
	ByHour    map[int]*HourBucket       `json:"by_hour"`
}

// NewSummary returns an empty summary: zero totals, empty groupings.
func NewSummary() *Summary {
	return &Summary{
		ByDate:    make(map[string]*Totals),
		ByModel:   make(map[string]*ModelBucket),
		ByChannel: make(map[string]*ChannelBucket),
		BySession: make(map[string]*SessionBucket),
		ByHour:    make(map[int]*HourBucket),
	}
}

// Aggregate folds every record exactly once into the summary in a single
// forward pass. Buckets are created lazily with all fields at zero; grouping
// keys are the raw strings the parser produced. Per-field sums commute, so
// record order never changes the result. An empty input yields an empty
// summary, never an error.
func Aggregate(records []model.UsageRecord) *Summary {
	s := NewSummary()

	for i := range records {
		rec := &records[i]

		s.Totals.Input += rec.Input
		s.Totals.Output += rec.Output
		s.Totals.CacheRead += rec.CacheRead
		s.Totals.CacheWrite += rec.CacheWrite
		s.Totals.Total += rec.Total
		s.Totals.Cost += rec.Cost
		s.Totals.Calls++

		date, ok := s.ByDate[rec.Date]
		if !ok {
			date = &Totals{}
			s.ByDate[rec.Date] = date
		}
		date.Input += rec.Input
		date.Output += rec.Output
		date.CacheRead += rec.CacheRead
		date.CacheWrite += rec.CacheWrite
		date.Total += rec.Total
		date.Cost += rec.Cost
		date.Calls++

		mdl, ok := s.ByModel[rec.Model]
		if !ok {
			mdl = &ModelBucket{}
			s.ByModel[rec.Model] = mdl
		}
		mdl.Input += rec.Input
		mdl.Output += rec.Output
		mdl.CacheRead += rec.CacheRead
		mdl.CacheWrite += rec.CacheWrite
		mdl.Total += rec.Total
		mdl.Cost += rec.Cost
		mdl.CostInput += rec.CostInput
		mdl.CostOutput += rec.CostOutput
		mdl.CostCacheRead += rec.CostCacheRead
		mdl.CostCacheWrite += rec.CostCacheWrite
		mdl.Calls++

		ch, ok := s.ByChannel[string(rec.Channel)]
		if !ok {
			ch = &ChannelBucket{}
			s.ByChannel[string(rec.Channel)] = ch
		}
		ch.Input += rec.Input
		ch.Output += rec.Output
		ch.Total += rec.Total
		ch.Cost += rec.Cost
		ch.Calls++

		sess, ok := s.BySession[rec.SessionID]
		if !ok {
			sess = &SessionBucket{}
			s.BySession[rec.SessionID] = sess
		}
		sess.Input += rec.Input
		sess.Output += rec.Output
		sess.Total += rec.Total
		sess.Cost += rec.Cost
		sess.Calls++
		sess.Channel = rec.Channel
		sess.Model = rec.Model

		hour, ok := s.ByHour[rec.Hour]
		if !ok {
			hour = &HourBucket{}
			s.ByHour[rec.Hour] = hour
		}
		hour.Total += rec.Total
		hour.Calls++
	}

	return s
}
