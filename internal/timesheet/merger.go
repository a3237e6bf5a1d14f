package timesheet

import (
	"context"
	"sort"

	"github.com/padraicb/go-timesheet-sync/internal/api"
	"github.com/padraicb/go-timesheet-sync/internal/util"
)

// TimesheetResource is the remote resource holding timesheet records.
const TimesheetResource = "Timesheets"

// approvalPredicates selects timesheets by how they were approved. Manually
// approved records carry a positive approver id; leave approved by the
// system carries IsLeave together with the approved flag. A record can
// satisfy both, so the union is deduplicated by id.
func approvalPredicates(w Window) []struct {
	Name   string
	Search map[string]api.Condition
} {
	return []struct {
		Name   string
		Search map[string]api.Condition
	}{
		{
			Name: "manually approved",
			Search: api.Search(
				api.Condition{Field: "Date", Type: api.OpGE, Data: w.Start},
				api.Condition{Field: "Date", Type: api.OpLE, Data: w.End},
				api.Condition{Field: "TimeApprover", Type: api.OpGT, Data: 0},
			),
		},
		{
			Name: "system-approved leave",
			Search: api.Search(
				api.Condition{Field: "Date", Type: api.OpGE, Data: w.Start},
				api.Condition{Field: "Date", Type: api.OpLE, Data: w.End},
				api.Condition{Field: "IsLeave", Type: api.OpEQ, Data: true},
				api.Condition{Field: "TimeApproved", Type: api.OpEQ, Data: true},
			),
		},
	}
}

// FetchApproved issues one paged fetch per approval predicate over the
// window, unions the results by record id and returns them sorted
// ascending by id. A failed fetch contributes zero records and its error;
// the other predicate's records still count. Empty output with no errors
// means nothing to sync, not a failure.
func FetchApproved(ctx context.Context, client *api.Client, w Window, pageSize int) ([]Record, []error) {
	byID := make(map[int64]Record)
	var errs []error

	for _, pred := range approvalPredicates(w) {
		records, err := api.FetchAllPages[Record](ctx, client, TimesheetResource, api.Query{
			Search: pred.Search,
			Join:   []string{"Employee", "Leave", "OperationalUnit"},
			Sort: api.SortOrder{
				{Field: "Date", Direction: "asc"},
				{Field: "StartTime", Direction: "asc"},
			},
			Max:    pageSize,
		})
		if err != nil {
			util.LogErrorf("Fetch of %s timesheets failed, contributing %d records: %v", pred.Name, len(records), err)
			errs = append(errs, err)
		} else {
			util.LogInfof("Fetched %d %s timesheets for %s..%s", len(records), pred.Name, w.Start, w.End)
		}
		// Later insertion wins on duplicate ids; duplicates are field-identical.
		for _, rec := range records {
			byID[rec.ID] = rec
		}
	}

	merged := make([]Record, 0, len(byID))
	for _, rec := range byID {
		merged = append(merged, rec)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged, errs
}
