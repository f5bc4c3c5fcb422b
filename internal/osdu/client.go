// Package osdu implements the OSDU platform client: kind-based search
// with a fallback strategy ladder and multi-endpoint record retrieval.
package osdu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tamkadin/osdu-viewer/internal/logger"
	"github.com/tamkadin/osdu-viewer/internal/metrics"
)

const (
	searchQueryPath   = "/api/search/v2/query"
	storageRecordPath = "/api/storage/v2/records"
	storageQueryPath  = "/api/storage/v2/query/records"

	headerPartition   = "data-partition-id"
	headerCorrelation = "correlation-id"

	maxQueryLimit     = 1000
	defaultQueryLimit = 50

	domainMarkerWKS      = ":wks:"
	domainMarkerWellbore = ":ddms-wellbore:"
)

// TokenSource supplies bearer tokens for outbound OSDU calls and allows
// the client to invalidate them when the platform rejects one.
type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
	ClearCache(ctx context.Context)
}

// Client talks to the OSDU search and storage APIs.
type Client struct {
	baseURL     string
	partitionID string
	tokens      TokenSource
	httpClient  *http.Client
	metrics     metrics.Recorder
}

// QueryResult is the search API response subset we consume.
type QueryResult struct {
	Results    []map[string]any `json:"results"`
	TotalCount int              `json:"totalCount,omitempty"`
}

// RecordSet is the storage API response shape for batch record fetches.
type RecordSet struct {
	Records []map[string]any `json:"records"`
}

// NewClient creates an OSDU API client.
func NewClient(baseURL, partitionID string, tokens TokenSource, httpClient *http.Client, recorder metrics.Recorder) *Client {
	if recorder == nil {
		recorder = metrics.NewNoopMetrics()
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		partitionID: partitionID,
		tokens:      tokens,
		httpClient:  httpClient,
		metrics:     recorder,
	}
}

// do performs one authenticated OSDU API call. A nil payload sends a GET
// without a body. On a 401 the cached token is invalidated and the same
// request is retried exactly once with a fresh token; a second 401 is a
// terminal failure for this call.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	status, respBody, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		logger.L().WithField("path", path).Warn("received 401, refreshing token and retrying once")
		c.tokens.ClearCache(ctx)
		status, respBody, err = c.send(ctx, method, path, body)
		if err != nil {
			return nil, err
		}
	}

	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrRequestFailed, status, bodyPreview(respBody))
	}
	return respBody, nil
}

// send is a single HTTP exchange with auth and partition headers.
func (c *Client) send(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	token, err := c.tokens.GetValidToken(ctx)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(headerPartition, c.partitionID)
	req.Header.Set(headerCorrelation, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response", ErrRequestFailed)
	}
	return resp.StatusCode, respBody, nil
}

func bodyPreview(body []byte) string {
	preview := string(body)
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return preview
}
