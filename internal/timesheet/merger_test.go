package timesheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicb/go-timesheet-sync/internal/api"
)

func searchFields(q api.Query) map[string]bool {
	fields := make(map[string]bool)
	for _, cond := range q.Search {
		fields[cond.Field] = true
	}
	return fields
}

// timesheetServer answers the manual-approval predicate with manual and the
// leave predicate with leave.
func timesheetServer(t *testing.T, manual, leave []Record, failManual bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/resource/Timesheets/QUERY", r.URL.Path)

		var q api.Query
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&q))

		fields := searchFields(q)
		assert.True(t, fields["Date"], "every predicate restricts the date window")

		if fields["TimeApprover"] {
			if failManual {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("maintenance"))
				return
			}
			sonic.ConfigDefault.NewEncoder(w).Encode(manual)
			return
		}
		assert.True(t, fields["IsLeave"])
		sonic.ConfigDefault.NewEncoder(w).Encode(leave)
	}))
}

func TestFetchApprovedMergesAndSorts(t *testing.T) {
	overlap := Record{ID: 103, IsLeave: true, Date: "2025-06-05"}
	manual := []Record{
		{ID: 102, Date: "2025-06-03"},
		{ID: 101, Date: "2025-06-04"},
		overlap,
	}
	leave := []Record{overlap, {ID: 104, IsLeave: true, Date: "2025-06-06"}}

	server := timesheetServer(t, manual, leave, false)
	defer server.Close()

	w := Window{Start: "2025-06-02", End: "2025-06-15"}
	records, errs := FetchApproved(context.Background(), newTestClient(server.URL), w, 500)

	assert.Empty(t, errs)
	require.Len(t, records, 4, "the overlapping id collapses to one record")

	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	assert.Equal(t, []int64{101, 102, 103, 104}, ids, "output is sorted ascending by id")
}

func TestFetchApprovedSingleFailureDegrades(t *testing.T) {
	leave := []Record{{ID: 104, IsLeave: true, Date: "2025-06-06"}}

	server := timesheetServer(t, nil, leave, true)
	defer server.Close()

	w := Window{Start: "2025-06-02", End: "2025-06-15"}
	records, errs := FetchApproved(context.Background(), newTestClient(server.URL), w, 500)

	require.Len(t, errs, 1, "the failed predicate reports its error")
	require.Len(t, records, 1, "the healthy predicate still contributes")
	assert.Equal(t, int64(104), records[0].ID)
}

func TestFetchApprovedEmptyMeansNothingToSync(t *testing.T) {
	server := timesheetServer(t, nil, nil, false)
	defer server.Close()

	w := Window{Start: "2025-06-02", End: "2025-06-15"}
	records, errs := FetchApproved(context.Background(), newTestClient(server.URL), w, 500)

	assert.Empty(t, errs)
	assert.Empty(t, records)
}
