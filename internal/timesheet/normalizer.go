package timesheet

import (
	"strconv"

	"github.com/padraicb/go-timesheet-sync/internal/util"
)

// unknownLeaveType is used when a leave record carries neither a rule id
// nor an embedded rule name.
const unknownLeaveType = "Unknown Leave Type"

// Normalize maps a fetched record into the fixed 14-field output row,
// branching on the record's variant. Missing optional fields render as
// empty strings so the row is always fully populated in column order.
func Normalize(rec Record, rules RuleSet) Row {
	var row Row

	row[ColRecordID] = strconv.FormatInt(rec.ID, 10)
	row[ColDate] = util.FormatDate(rec.Date)
	row[ColTotalCost] = util.FormatMoney(rec.Cost)

	if rec.Employee != nil {
		row[ColEmployeeID] = strconv.FormatInt(rec.Employee.ID, 10)
		row[ColEmployeeName] = rec.Employee.DisplayName
	}
	if rec.Comments != nil {
		row[ColEmployeeComment] = rec.Comments.EmployeeComment
		row[ColManagerComment] = rec.Comments.SupervisorComment
	}
	if rec.Meta != nil && rec.Meta.OperationalUnitInfo != nil {
		row[ColAreaName] = rec.Meta.OperationalUnitInfo.UnitName
		row[ColLocationName] = rec.Meta.OperationalUnitInfo.CompanyName
	}

	if rec.IsLeave {
		normalizeLeave(rec, rules, &row)
	} else {
		normalizeShift(rec, &row)
	}
	return row
}

func normalizeShift(rec Record, row *Row) {
	row[ColStart] = util.FormatClock(rec.StartTime)
	row[ColEnd] = util.FormatClock(rec.EndTime)
	row[ColTotalHours] = util.FormatHours(rec.TotalTime)

	var mealSecs int64
	for _, slot := range rec.Slots {
		if slot.Type == SlotTypeBreak {
			mealSecs += slot.UnixEnd - slot.UnixStart
		}
	}
	row[ColMealbreak] = util.FormatSeconds(mealSecs)
}

func normalizeLeave(rec Record, rules RuleSet, row *Row) {
	// Leave has no slots; the mealbreak column is fixed at zero duration.
	row[ColMealbreak] = util.FormatSeconds(0)
	row[ColLeaveType] = resolveLeaveType(rec.Leave, rules)

	var start, end string
	var hours float64
	if rec.Leave != nil {
		matched := false
		for _, line := range rec.Leave.PayLines {
			if line.TimesheetID == rec.ID {
				start, end, hours = line.StartTime, line.EndTime, line.Hours
				matched = true
				break
			}
		}
		if !matched {
			start, end, hours = rec.Leave.StartTime, rec.Leave.EndTime, rec.Leave.TotalHours
		}
		if rec.Leave.Comment != "" {
			row[ColEmployeeComment] = rec.Leave.Comment
		}
	}
	if hours == 0 {
		hours = rec.TotalTime
	}

	row[ColStart] = util.FormatClock(start)
	row[ColEnd] = util.FormatClock(end)
	row[ColTotalHours] = util.FormatHours(hours)
}

// resolveLeaveType prefers the rule-id lookup, then an embedded rule name,
// then the fixed placeholder.
func resolveLeaveType(leave *LeaveDetail, rules RuleSet) string {
	if leave == nil {
		return unknownLeaveType
	}
	if leave.RuleID != 0 {
		return rules.Lookup(leave.RuleID)
	}
	if leave.Rule != nil && leave.Rule.Name != "" {
		return leave.Rule.Name
	}
	return unknownLeaveType
}
