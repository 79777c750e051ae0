package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPacific(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		ok           bool
		expectedDate string
		expectedHour int
	}{
		{"z suffix crosses midnight", "2026-02-03T04:30:00Z", true, "2026-02-02", 20},
		{"z suffix same day", "2026-02-03T18:30:00Z", true, "2026-02-03", 10},
		{"positive offset", "2026-02-03T04:30:00+02:00", true, "2026-02-02", 18},
		{"negative offset", "2026-02-03T04:30:00-08:00", true, "2026-02-03", 4},
		{"fractional seconds", "2026-02-03T04:30:00.500Z", true, "2026-02-02", 20},
		{"empty", "", false, "", 0},
		{"garbage", "yesterday at noon", false, "", 0},
		{"date only", "2026-02-03", false, "", 0},
		{"no seconds", "2026-02-03T04:30Z", false, "", 0},
		{"space separator", "2026-02-03 04:30:00Z", false, "", 0},
		{"no zone", "2026-02-03T04:30:00", false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local, ok := ToPacific(tt.input)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.expectedDate, DateKey(local))
			assert.Equal(t, tt.expectedHour, local.Hour())
		})
	}
}

func TestPacificIsFixedOffset(t *testing.T) {
	// The offset never changes with the calendar: no DST. A July timestamp
	// gets the same -8h shift as a January one.
	winter, ok := ToPacific("2026-01-15T12:00:00Z")
	require.True(t, ok)
	summer, ok := ToPacific("2026-07-15T12:00:00Z")
	require.True(t, ok)

	assert.Equal(t, 4, winter.Hour())
	assert.Equal(t, 4, summer.Hour())

	_, winterOffset := winter.Zone()
	_, summerOffset := summer.Zone()
	assert.Equal(t, -8*60*60, winterOffset)
	assert.Equal(t, winterOffset, summerOffset)
}
