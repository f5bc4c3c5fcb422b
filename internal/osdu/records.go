package osdu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tamkadin/osdu-viewer/internal/logger"
)

// GetRecord retrieves one record by identifier, trying each storage API
// shape in turn and finally falling back to a search by id. Every
// strategy is an independent network call.
func (c *Client) GetRecord(ctx context.Context, id string) (*RecordSet, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty record id", ErrRecordNotFound)
	}

	strategies := []struct {
		name string
		run  func(context.Context, string) (*RecordSet, error)
	}{
		{"storage_get", c.fetchRecordByID},
		{"storage_batch", c.fetchRecordsBatch},
		{"storage_query", c.queryRecordsBatch},
		{"search_by_id", c.fetchRecordViaSearch},
	}

	for _, s := range strategies {
		records, err := s.run(ctx, id)
		c.metrics.RecordRecordStrategy(s.name, err == nil)
		if err == nil {
			return records, nil
		}
		logger.L().WithError(err).WithFields(map[string]any{
			"strategy":  s.name,
			"record_id": id,
		}).Debug("record retrieval strategy failed")
	}

	return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}

// fetchRecordByID GETs the record from the storage records endpoint.
func (c *Client) fetchRecordByID(ctx context.Context, id string) (*RecordSet, error) {
	body, err := c.do(ctx, http.MethodGet, storageRecordPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("%w: invalid record response: %v", ErrRequestFailed, err)
	}
	return &RecordSet{Records: []map[string]any{record}}, nil
}

// fetchRecordsBatch POSTs {recordIds: [...]} to the storage records endpoint.
func (c *Client) fetchRecordsBatch(ctx context.Context, id string) (*RecordSet, error) {
	return c.postRecordSet(ctx, storageRecordPath, map[string]any{"recordIds": []string{id}})
}

// queryRecordsBatch POSTs {records: [...]} to the storage query endpoint.
func (c *Client) queryRecordsBatch(ctx context.Context, id string) (*RecordSet, error) {
	return c.postRecordSet(ctx, storageQueryPath, map[string]any{"records": []string{id}})
}

func (c *Client) postRecordSet(ctx context.Context, path string, payload any) (*RecordSet, error) {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}

	var records RecordSet
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: invalid records response: %v", ErrRequestFailed, err)
	}
	if len(records.Records) == 0 {
		return nil, fmt.Errorf("%w: empty record set", ErrRequestFailed)
	}
	return &records, nil
}

// fetchRecordViaSearch falls back to the search API with an
// identifier-equality query and adopts the first match.
func (c *Client) fetchRecordViaSearch(ctx context.Context, id string) (*RecordSet, error) {
	result, err := c.query(ctx, searchQuery{
		Query:          "id:" + id,
		Limit:          1,
		ReturnedFields: []string{"*"},
	})
	if err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, fmt.Errorf("%w: no search match for id %s", ErrRequestFailed, id)
	}
	return &RecordSet{Records: result.Results[:1]}, nil
}
