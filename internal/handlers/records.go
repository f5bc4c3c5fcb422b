// Package handlers implements the HTTP API for browsing OSDU domains,
// records, and record details.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tamkadin/osdu-viewer/internal/catalog"
	"github.com/tamkadin/osdu-viewer/internal/logger"
	"github.com/tamkadin/osdu-viewer/internal/osdu"
)

const defaultPageSize = 50

// RecordAccess is the OSDU client surface the handlers consume.
type RecordAccess interface {
	Search(ctx context.Context, kind string, limit, offset int, fields osdu.FieldSpec, allowFallback bool) (*osdu.QueryResult, error)
	GetRecord(ctx context.Context, id string) (*osdu.RecordSet, error)
	DiagnoseSearch(ctx context.Context, kind string) []osdu.StrategyReport
	DiagnoseRecord(ctx context.Context, id string) []osdu.StrategyReport
}

// Handler serves the viewer API routes.
type Handler struct {
	records RecordAccess
}

// New creates a Handler.
func New(records RecordAccess) *Handler {
	return &Handler{records: records}
}

// ListDomains returns the browsable domain taxonomy.
func (h *Handler) ListDomains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"domains":        catalog.Domains(),
		"total_entities": catalog.TotalEntities(),
	})
}

// ListEntities returns the flat cross-domain entity list.
func (h *Handler) ListEntities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"entities": catalog.AllEntities(),
		"total":    catalog.TotalEntities(),
	})
}

// SearchCatalog matches catalog entities by name or description.
func (h *Handler) SearchCatalog(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter 'q'"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": catalog.SearchEntities(term)})
}

// ListRecords searches OSDU records for one catalog entity. Failures
// come back as an error-shaped body with the same field layout as
// success so clients never need a separate error path.
func (h *Handler) ListRecords(c *gin.Context) {
	domainName := c.Param("domain")
	entityName := c.Param("entity")

	if _, ok := catalog.GetDomain(domainName); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "domain '" + domainName + "' not found"})
		return
	}
	entity, ok := catalog.GetEntity(domainName, entityName)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity '" + entityName + "' not found"})
		return
	}

	limit := intQuery(c, "limit", defaultPageSize)
	offset := intQuery(c, "offset", 0)
	fields := resolveFieldSpec(c.Query("fields"), entity)

	result, err := h.records.Search(c.Request.Context(), entity.Kind, limit, offset, fields, true)
	if err != nil {
		logger.L().WithError(err).WithField("kind", entity.Kind).Error("record search failed")
		c.JSON(http.StatusOK, gin.H{"error": err.Error(), "results": []any{}})
		return
	}

	for _, record := range result.Results {
		record["_entity"] = entityName
		record["_domain"] = domainName
	}
	c.JSON(http.StatusOK, result)
}

// GetRecord retrieves one record by its full OSDU identifier.
func (h *Handler) GetRecord(c *gin.Context) {
	id := recordIDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing record id", "records": []any{}})
		return
	}

	records, err := h.records.GetRecord(c.Request.Context(), id)
	if err != nil {
		logger.L().WithError(err).WithField("record_id", id).Error("record retrieval failed")
		c.JSON(http.StatusOK, gin.H{"error": err.Error(), "records": []any{}})
		return
	}
	c.JSON(http.StatusOK, records)
}

// resolveFieldSpec maps the fields query parameter onto a FieldSpec.
// A known entity data field narrows the projection to that field; an
// unknown value falls back to the basic set.
func resolveFieldSpec(fields string, entity catalog.Entity) osdu.FieldSpec {
	switch fields {
	case "":
		return osdu.FieldSpec{Preset: osdu.FieldsBasic}
	case osdu.FieldsAll:
		return osdu.FieldSpec{Preset: osdu.FieldsAll}
	case osdu.FieldsBasic:
		return osdu.FieldSpec{Preset: osdu.FieldsBasic}
	default:
		if entity.HasField(fields) {
			return osdu.FieldSpec{Preset: fields}
		}
		return osdu.FieldSpec{Preset: osdu.FieldsBasic}
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// recordIDParam extracts the record id from a wildcard route parameter,
// stripping the leading slash gin keeps on catch-all params.
func recordIDParam(c *gin.Context) string {
	id := c.Param("id")
	if len(id) > 0 && id[0] == '/' {
		id = id[1:]
	}
	return id
}
