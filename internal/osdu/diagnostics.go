package osdu

import (
	"context"
	"strings"
)

// StrategyReport describes the outcome of one fallback strategy when run
// in isolation by the debug endpoints.
type StrategyReport struct {
	Name      string `json:"name"`
	Target    string `json:"target"`
	Succeeded bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Count     int    `json:"count"`
}

// DiagnoseSearch runs every search strategy for a kind independently,
// without short-circuiting, and reports each outcome.
func (c *Client) DiagnoseSearch(ctx context.Context, kind string) []StrategyReport {
	reports := make([]StrategyReport, 0, 4)

	record := func(name, target string, result *QueryResult, err error) {
		r := StrategyReport{Name: name, Target: target, Succeeded: err == nil}
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Count = len(result.Results)
		}
		reports = append(reports, r)
	}

	result, err := c.searchByKind(ctx, kind, 1, 0, FieldSpec{Preset: FieldsBasic})
	record("kind", kind, result, err)

	if strings.Contains(kind, domainMarkerWKS) {
		alternate := strings.Replace(kind, domainMarkerWKS, domainMarkerWellbore, 1)
		result, err = c.searchByKind(ctx, alternate, 1, 0, FieldSpec{Preset: FieldsBasic})
		record("alternate_domain", alternate, result, err)
	}

	entity, entityErr := EntityName(kind)
	if entityErr != nil {
		return reports
	}

	result, err = c.searchByQuery(ctx, "*"+entity+"*", 1, 0)
	record("wildcard", "*"+entity+"*", result, err)

	result, err = c.searchByQuery(ctx, "kind:*"+entity+"*", 1, 0)
	record("kind_query", "kind:*"+entity+"*", result, err)

	return reports
}

// DiagnoseRecord runs every record retrieval strategy independently and
// reports each outcome.
func (c *Client) DiagnoseRecord(ctx context.Context, id string) []StrategyReport {
	strategies := []struct {
		name   string
		target string
		run    func(context.Context, string) (*RecordSet, error)
	}{
		{"storage_get", storageRecordPath + "/" + id, c.fetchRecordByID},
		{"storage_batch", storageRecordPath, c.fetchRecordsBatch},
		{"storage_query", storageQueryPath, c.queryRecordsBatch},
		{"search_by_id", "id:" + id, c.fetchRecordViaSearch},
	}

	reports := make([]StrategyReport, 0, len(strategies))
	for _, s := range strategies {
		records, err := s.run(ctx, id)
		r := StrategyReport{Name: s.name, Target: s.target, Succeeded: err == nil}
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Count = len(records.Records)
		}
		reports = append(reports, r)
	}
	return reports
}
