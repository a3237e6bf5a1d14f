package timesheet

import "time"

// Window is the inclusive pay-period date span being synced, as local
// calendar dates.
type Window struct {
	Start string // YYYY-MM-DD, a Monday
	End   string // YYYY-MM-DD, a Sunday
}

// PayPeriodFor derives the most recent complete 14-day Monday-Sunday pay
// period relative to now. The end date is the most recent Sunday on or
// before now's week boundary (now minus its Sunday-based weekday); the
// start date is 13 days earlier. Calendar arithmetic only: no timezone
// conversion beyond now's own location.
func PayPeriodFor(now time.Time) Window {
	end := now.AddDate(0, 0, -int(now.Weekday()))
	start := end.AddDate(0, 0, -13)
	return Window{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}
}
