package osdu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tamkadin/osdu-viewer/internal/logger"
)

// searchQuery is the search API request body. Kind and Query are
// mutually exclusive; a nil ReturnedFields asks for everything.
type searchQuery struct {
	Kind           string   `json:"kind,omitempty"`
	Query          string   `json:"query,omitempty"`
	Limit          int      `json:"limit"`
	Offset         int      `json:"offset,omitempty"`
	ReturnedFields []string `json:"returnedFields,omitempty"`
}

// Search queries records by kind, falling back through rewritten-domain,
// wildcard, and qualified-wildcard queries when enabled. On exhaustion
// the error from the primary kind search is returned unchanged, since it
// names the kind the caller actually asked for.
func (c *Client) Search(ctx context.Context, kind string, limit, offset int, fields FieldSpec, allowFallback bool) (*QueryResult, error) {
	result, primaryErr := c.searchByKind(ctx, kind, limit, offset, fields)
	c.metrics.RecordSearchStrategy("kind", primaryErr == nil)
	if primaryErr == nil {
		return result, nil
	}
	if !allowFallback {
		return nil, primaryErr
	}
	logger.L().WithError(primaryErr).WithField("kind", kind).Debug("kind search failed, trying fallbacks")

	if strings.Contains(kind, domainMarkerWKS) {
		alternate := strings.Replace(kind, domainMarkerWKS, domainMarkerWellbore, 1)
		result, err := c.searchByKind(ctx, alternate, limit, offset, fields)
		c.metrics.RecordSearchStrategy("alternate_domain", err == nil)
		if err == nil {
			return result, nil
		}
	}

	// Wildcard strategies need an entity name; a kind with no entity
	// separator exhausts the ladder here.
	entity, err := EntityName(kind)
	if err != nil {
		return nil, primaryErr
	}

	result, err = c.searchByQuery(ctx, "*"+entity+"*", limit, offset)
	c.metrics.RecordSearchStrategy("wildcard", err == nil)
	if err == nil {
		return result, nil
	}

	result, err = c.searchByQuery(ctx, "kind:*"+entity+"*", limit, offset)
	c.metrics.RecordSearchStrategy("kind_query", err == nil)
	if err == nil {
		return result, nil
	}

	return nil, primaryErr
}

// searchByKind runs one structured kind query.
func (c *Client) searchByKind(ctx context.Context, kind string, limit, offset int, fields FieldSpec) (*QueryResult, error) {
	return c.query(ctx, searchQuery{
		Kind:           kind,
		Limit:          clampLimit(limit),
		Offset:         clampOffset(offset),
		ReturnedFields: fields.returnedFields(),
	})
}

// searchByQuery runs one free-text query. Free-text results always carry
// the basic field set so callers get a uniform shape across strategies.
func (c *Client) searchByQuery(ctx context.Context, query string, limit, offset int) (*QueryResult, error) {
	return c.query(ctx, searchQuery{
		Query:          query,
		Limit:          clampLimit(limit),
		Offset:         clampOffset(offset),
		ReturnedFields: basicFields,
	})
}

func (c *Client) query(ctx context.Context, q searchQuery) (*QueryResult, error) {
	body, err := c.do(ctx, http.MethodPost, searchQueryPath, q)
	if err != nil {
		return nil, err
	}

	var result QueryResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: invalid search response: %v", ErrRequestFailed, err)
	}
	if result.Results == nil {
		result.Results = []map[string]any{}
	}
	return &result, nil
}
