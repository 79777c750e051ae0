package util

import (
	"time"
)

// Pacific is the fixed UTC-8 zone used for report bucketing. No DST
// adjustment: downstream daily reports assume PST-only bucketing.
var Pacific = time.FixedZone("PST", -8*60*60)

// ToPacific parses an ISO-8601 timestamp (trailing Z or explicit numeric
// offset) and converts it to fixed PST. Returns false for empty or
// unparseable input.
func ToPacific(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false
	}
	return t.In(Pacific), true
}

// DateKey formats a local time as the calendar-day grouping key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
