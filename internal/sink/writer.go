package sink

import (
	"github.com/padraicb/go-timesheet-sync/internal/util"
)

// EnsureHeader writes the header row when the sink is empty and reports
// whether it wrote. An existing header is never overwritten; if it looks
// shorter or mismatched against the expected schema only a warning is
// logged.
func EnsureHeader(s Sink, header []string) (bool, error) {
	wrote, err := s.AppendIfEmpty(header)
	if err != nil {
		return false, err
	}
	if wrote {
		util.LogInfo("Sink was empty, header row written")
		return true, nil
	}

	if first, err := s.ReadColumn(0); err == nil && len(first) > 0 && first[0] != header[0] {
		util.LogWarnf("Existing sink header starts with %q, expected %q; leaving it untouched", first[0], header[0])
	}
	if last, err := s.ReadColumn(len(header) - 1); err != nil || len(last) == 0 || last[0] == "" {
		util.LogWarnf("Existing sink header appears shorter than the %d-column schema", len(header))
	}
	return false, nil
}

// ExistingKeys scans the sink's key column once, skipping the header row,
// and returns the set of primary keys already present.
func ExistingKeys(s Sink, keyCol int) (map[string]struct{}, error) {
	cells, err := s.ReadColumn(keyCol)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	for i, cell := range cells {
		if i == 0 {
			continue // header
		}
		if cell != "" {
			keys[cell] = struct{}{}
		}
	}
	return keys, nil
}

// AppendNew appends the candidate rows whose key-column value is not yet in
// existing, as one bulk append after the sink's current last row, and
// returns how many were written. Rows already present are skipped.
func AppendNew(s Sink, candidates [][]string, keyCol int, existing map[string]struct{}) (int, error) {
	fresh := make([][]string, 0, len(candidates))
	for _, row := range candidates {
		if keyCol >= len(row) {
			continue
		}
		if _, ok := existing[row[keyCol]]; ok {
			continue
		}
		fresh = append(fresh, row)
	}

	if len(fresh) == 0 {
		return 0, nil
	}
	if err := s.AppendRows(fresh); err != nil {
		return 0, err
	}
	return len(fresh), nil
}
