package timesheet

import "github.com/shopspring/decimal"

// Slot type codes within a shift. Only meal breaks contribute to the
// mealbreak column; every other slot type is ignored.
const SlotTypeBreak = "B"

// EmployeeRef is the joined employee reference on a record. It may be
// absent, in which case the row carries empty strings.
type EmployeeRef struct {
	ID          int64  `json:"Id"`
	DisplayName string `json:"DisplayName"`
}

// Comments carries the optional employee and supervisor comments.
type Comments struct {
	EmployeeComment   string `json:"EmployeeComment"`
	SupervisorComment string `json:"SupervisorComment"`
}

// OperationalUnit describes where the shift was worked. It arrives nested
// under the record's metadata envelope.
type OperationalUnit struct {
	UnitName    string `json:"OperationalUnitName"`
	CompanyName string `json:"CompanyName"`
}

// Metadata is the envelope of joined display-only data on a record.
type Metadata struct {
	OperationalUnitInfo *OperationalUnit `json:"OperationalUnitInfo"`
}

// Slot is one break/work interval inside a regular shift.
type Slot struct {
	Type      string `json:"strType"`
	TypeName  string `json:"strTypeName"`
	UnixStart int64  `json:"intUnixStart"`
	UnixEnd   int64  `json:"intUnixEnd"`
}

// LeavePayLine is one pay sub-record of a leave object. The line whose
// TimesheetID matches the parent record supplies its times and hours.
type LeavePayLine struct {
	TimesheetID int64   `json:"Timesheet"`
	StartTime   string  `json:"StartTime"`
	EndTime     string  `json:"EndTime"`
	Hours       float64 `json:"Hours"`
}

// LeaveRuleRef is the embedded leave-rule reference carried by some leave
// objects in place of a bare rule id.
type LeaveRuleRef struct {
	Name string `json:"Name"`
}

// LeaveDetail is the leave-only sub-schema of a record.
type LeaveDetail struct {
	RuleID     int64          `json:"LeaveRule"`
	Rule       *LeaveRuleRef  `json:"LeaveRuleObject"`
	PayLines   []LeavePayLine `json:"LeavePayLines"`
	StartTime  string         `json:"StartTime"`
	EndTime    string         `json:"EndTime"`
	TotalHours float64        `json:"TotalHours"`
	Comment    string         `json:"Comment"`
}

// Record is one fetched timesheet record. IsLeave selects which sub-schema
// is meaningful: Slots for a regular shift, Leave for an approved absence.
// ID is globally unique per fetched record; the union of two filtered
// fetches may contain the same ID twice with field-identical payloads.
type Record struct {
	ID        int64           `json:"Id"`
	IsLeave   bool            `json:"IsLeave"`
	Date      string          `json:"Date"`
	StartTime string          `json:"StartTimeLocalized"`
	EndTime   string          `json:"EndTimeLocalized"`
	TotalTime float64         `json:"TotalTime"`
	Cost      decimal.Decimal `json:"Cost"`
	Employee  *EmployeeRef    `json:"EmployeeObject"`
	Comments  *Comments       `json:"Comments"`
	Meta      *Metadata       `json:"Metadata"`

	// Regular-shift only
	Slots []Slot `json:"Slots"`

	// Leave only
	Leave *LeaveDetail `json:"LeaveObject"`
}

// LeaveRuleEntry is one row of the leave-rule reference resource.
type LeaveRuleEntry struct {
	ID   int64  `json:"Id"`
	Name string `json:"Name"`
}

// RowWidth is the fixed number of output columns.
const RowWidth = 14

// Output column order.
const (
	ColRecordID = iota
	ColEmployeeID
	ColEmployeeName
	ColDate
	ColStart
	ColEnd
	ColMealbreak
	ColTotalHours
	ColTotalCost
	ColEmployeeComment
	ColAreaName
	ColLocationName
	ColLeaveType
	ColManagerComment
)

// Row is one normalized output row: exactly RowWidth populated-or-empty
// fields in fixed order.
type Row [RowWidth]string

// Schema returns the sink header in column order.
func Schema() []string {
	return []string{
		"RecordID", "EmployeeID", "EmployeeName", "Date",
		"Start", "End", "Mealbreak", "TotalHours", "TotalCost",
		"EmployeeComment", "AreaName", "LocationName", "LeaveType", "ManagerComment",
	}
}
