package osdu

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportNames(reports []StrategyReport) []string {
	names := make([]string, 0, len(reports))
	for _, r := range reports {
		names = append(names, r.Name)
	}
	return names
}

func TestDiagnoseSearchRunsAllStrategiesIndependently(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := decodeQuery(t, r)
		// The primary kind fails, yet every later strategy still runs.
		if payload["kind"] == "osdu:wks:master-data--Basin:*" {
			http.Error(w, `{"error":"index missing"}`, http.StatusInternalServerError)
			return
		}
		writeResults(w, map[string]any{"id": "r1"})
	}))

	reports := c.DiagnoseSearch(context.Background(), "osdu:wks:master-data--Basin:*")
	require.Equal(t, []string{"kind", "alternate_domain", "wildcard", "kind_query"}, reportNames(reports))

	assert.False(t, reports[0].Succeeded)
	assert.Contains(t, reports[0].Error, "HTTP 500")
	assert.Zero(t, reports[0].Count)

	assert.True(t, reports[1].Succeeded)
	assert.Equal(t, "osdu:ddms-wellbore:master-data--Basin:*", reports[1].Target)
	assert.Equal(t, 1, reports[1].Count)

	assert.Equal(t, "*Basin*", reports[2].Target)
	assert.Equal(t, "kind:*Basin*", reports[3].Target)
}

func TestDiagnoseSearchSkipsAlternateDomainForNonWKSKind(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeResults(w, map[string]any{"id": "r1"})
	}))

	reports := c.DiagnoseSearch(context.Background(), "osdu:custom:master-data--Basin:*")
	assert.Equal(t, []string{"kind", "wildcard", "kind_query"}, reportNames(reports))
}

func TestDiagnoseSearchStopsAtUnextractableEntity(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeResults(w)
	}))

	// No "--" separator, so the wildcard strategies cannot be derived.
	reports := c.DiagnoseSearch(context.Background(), "osdu:wks:freeform:*")
	assert.Equal(t, []string{"kind", "alternate_domain"}, reportNames(reports))
}
