package timesheet

import (
	"context"
	"fmt"

	"github.com/padraicb/go-timesheet-sync/internal/api"
	"github.com/padraicb/go-timesheet-sync/internal/util"
)

// LeaveRuleResource is the reference resource holding leave-rule names.
const LeaveRuleResource = "LeaveRules"

// RuleSet maps leave-rule ids to display names for one sync run. It is
// populated once up front and never mutated afterwards.
type RuleSet map[int64]string

// LoadLeaveRules fetches the whole leave-rule reference table with an empty
// filter. A fetch failure is non-fatal: enrichment degrades to the
// placeholder string and the run continues with an empty set.
func LoadLeaveRules(ctx context.Context, client *api.Client, pageSize int) RuleSet {
	entries, err := api.FetchAllPages[LeaveRuleEntry](ctx, client, LeaveRuleResource, api.Query{Max: pageSize})
	if err != nil {
		util.LogWarnf("Failed to load leave rules, leave types will be unresolved: %v", err)
		return RuleSet{}
	}

	rules := make(RuleSet, len(entries))
	for _, e := range entries {
		rules[e.ID] = e.Name
	}
	util.LogDebugf("Loaded %d leave rules", len(rules))
	return rules
}

// Lookup resolves a leave-rule id to its display name. An absent id (zero)
// resolves to an empty string; an unknown id resolves to a placeholder.
func (r RuleSet) Lookup(id int64) string {
	if id == 0 {
		return ""
	}
	if name, ok := r[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Rule ID (%d)", id)
}
