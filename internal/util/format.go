package util

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayouts are the wire forms the workforce API emits for localized
// timestamps. Both the T-separated ISO form and the space-separated form
// occur, with and without an offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

// FormatDate renders a calendar date as MM/DD/YYYY. The input may be a bare
// YYYY-MM-DD date or a full timestamp; only the date portion is used.
// Empty input renders as an empty string.
func FormatDate(value string) string {
	if value == "" {
		return ""
	}
	if len(value) >= 10 {
		if t, err := time.Parse("2006-01-02", value[:10]); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return value
}

// FormatClock extracts the time-of-day portion of a timestamp as HH:MM:SS.
// Empty input renders as an empty string.
func FormatClock(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04:05")
		}
	}
	return value
}

// FormatSeconds renders a duration in seconds as H:MM:SS with no leading
// zero on the hour field.
func FormatSeconds(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// FormatHours renders a fractional hour count without trailing zeros.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// FormatElapsed renders a run duration at a human scale.
func FormatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// FormatMoney renders a monetary amount with two decimal places.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
