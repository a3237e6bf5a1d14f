package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestPayPeriodFor(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{"midweek wednesday", date(2025, time.June, 18), "2025-06-02", "2025-06-15"},
		{"monday just after boundary", date(2025, time.June, 16), "2025-06-02", "2025-06-15"},
		{"sunday is its own boundary", date(2025, time.June, 15), "2025-06-02", "2025-06-15"},
		{"saturday before boundary", date(2025, time.June, 14), "2025-05-26", "2025-06-08"},
		{"year boundary", date(2026, time.January, 1), "2025-12-15", "2025-12-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := PayPeriodFor(tt.now)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
		})
	}
}

func TestPayPeriodSpansFourteenDays(t *testing.T) {
	for day := 0; day < 21; day++ {
		now := date(2025, time.June, 1).AddDate(0, 0, day)
		w := PayPeriodFor(now)

		start, err := time.Parse("2006-01-02", w.Start)
		assert.NoError(t, err)
		end, err := time.Parse("2006-01-02", w.End)
		assert.NoError(t, err)

		assert.Equal(t, 13*24*time.Hour, end.Sub(start), "window for %s", now)
		assert.Equal(t, time.Monday, start.Weekday())
		assert.Equal(t, time.Sunday, end.Weekday())
		assert.False(t, end.After(now), "end date never passes now")
	}
}

func TestPayPeriodDeterministic(t *testing.T) {
	now := date(2025, time.June, 18)
	assert.Equal(t, PayPeriodFor(now), PayPeriodFor(now))
}
