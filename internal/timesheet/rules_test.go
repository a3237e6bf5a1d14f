package timesheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"

	"github.com/padraicb/go-timesheet-sync/internal/api"
	"github.com/padraicb/go-timesheet-sync/internal/config"
)

func newTestClient(serverURL string) *api.Client {
	return api.NewClient(&config.Config{
		BaseURL:    serverURL,
		AuthScheme: "Bearer",
		Token:      "test-token",
	})
}

func TestLoadLeaveRules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/resource/LeaveRules/QUERY", r.URL.Path)
		sonic.ConfigDefault.NewEncoder(w).Encode([]LeaveRuleEntry{
			{ID: 1, Name: "Annual Leave"},
			{ID: 2, Name: "Sick"},
		})
	}))
	defer server.Close()

	rules := LoadLeaveRules(context.Background(), newTestClient(server.URL), 500)
	assert.Len(t, rules, 2)
	assert.Equal(t, "Annual Leave", rules.Lookup(1))
}

func TestLoadLeaveRulesFailureIsNonFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	rules := LoadLeaveRules(context.Background(), newTestClient(server.URL), 500)
	assert.Empty(t, rules)
	assert.Equal(t, "Unknown Rule ID (1)", rules.Lookup(1))
}

func TestRuleSetLookup(t *testing.T) {
	rules := RuleSet{4: "Annual Leave"}

	assert.Equal(t, "Annual Leave", rules.Lookup(4))
	assert.Equal(t, "Unknown Rule ID (7)", rules.Lookup(7))
	assert.Equal(t, "", rules.Lookup(0), "absent id resolves to an empty string")
}
