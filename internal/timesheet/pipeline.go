package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/padraicb/go-timesheet-sync/internal/api"
	"github.com/padraicb/go-timesheet-sync/internal/config"
	"github.com/padraicb/go-timesheet-sync/internal/notify"
	"github.com/padraicb/go-timesheet-sync/internal/sink"
	"github.com/padraicb/go-timesheet-sync/internal/util"
)

// Deps are the external collaborators one sync run works against.
type Deps struct {
	Client   *api.Client
	Sink     sink.Sink
	Notifier notify.Notifier
}

// RunReport summarizes one sync run.
type RunReport struct {
	RunID         string
	Window        Window
	Unique        int // records after merge/dedup
	FetchErrors   int
	Appended      int
	Skipped       int
	HeaderWritten bool
	Elapsed       time.Duration
	Err           error
}

// Run performs one full sync pass: window derivation, reference-data load,
// merged fetch, normalization, and the single incremental append. The
// invoking scheduler guarantees non-overlapping invocations; the run itself
// reads first, computes, then writes once.
func Run(ctx context.Context, cfg *config.Config, deps Deps, now time.Time) RunReport {
	start := time.Now()
	rep := RunReport{
		RunID:  uuid.NewString()[:8],
		Window: PayPeriodFor(now),
	}
	defer func() { rep.Elapsed = time.Since(start) }()

	util.LogInfof("Sync run %s starting for pay period %s..%s", rep.RunID, rep.Window.Start, rep.Window.End)

	rules := LoadLeaveRules(ctx, deps.Client, cfg.PageSize)

	records, fetchErrs := FetchApproved(ctx, deps.Client, rep.Window, cfg.PageSize)
	rep.Unique = len(records)
	rep.FetchErrors = len(fetchErrs)
	for _, err := range fetchErrs {
		deps.Notifier.Notify(
			fmt.Sprintf("Timesheet sync %s: fetch failure", rep.RunID),
			fmt.Sprintf("Pay period %s..%s\n\n%v", rep.Window.Start, rep.Window.End, err),
		)
	}

	if len(records) == 0 {
		util.LogInfof("Sync run %s: nothing to sync", rep.RunID)
		return rep
	}

	candidates := make([][]string, 0, len(records))
	for _, rec := range records {
		row := Normalize(rec, rules)
		candidates = append(candidates, row[:])
	}

	wrote, err := sink.EnsureHeader(deps.Sink, Schema())
	if err != nil {
		rep.Err = err
		deps.Notifier.Notify(
			fmt.Sprintf("Timesheet sync %s: sink failure", rep.RunID),
			fmt.Sprintf("Failed to ensure header row: %v", err),
		)
		return rep
	}
	rep.HeaderWritten = wrote

	existing, err := sink.ExistingKeys(deps.Sink, cfg.KeyColumn)
	if err != nil {
		rep.Err = err
		deps.Notifier.Notify(
			fmt.Sprintf("Timesheet sync %s: sink failure", rep.RunID),
			fmt.Sprintf("Failed to read existing keys: %v", err),
		)
		return rep
	}

	appended, err := sink.AppendNew(deps.Sink, candidates, cfg.KeyColumn, existing)
	if err != nil {
		rep.Err = err
		deps.Notifier.Notify(
			fmt.Sprintf("Timesheet sync %s: append failure", rep.RunID),
			fmt.Sprintf("Bulk append of %d rows failed: %v", len(candidates), err),
		)
		return rep
	}
	rep.Appended = appended
	rep.Skipped = len(candidates) - appended

	util.LogInfof("Sync run %s finished: %d unique records, %d appended, %d already present",
		rep.RunID, rep.Unique, rep.Appended, rep.Skipped)
	return rep
}
