package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tamkadin/osdu-viewer/internal/catalog"
	"github.com/tamkadin/osdu-viewer/internal/osdu"
)

// DiagnoseSearch runs every search strategy for an entity's kind
// independently and reports each outcome, for operators debugging a
// deployment where a kind resolves on only some endpoints.
func (h *Handler) DiagnoseSearch(c *gin.Context) {
	domainName := c.Param("domain")
	entityName := c.Param("entity")

	entity, ok := catalog.GetEntity(domainName, entityName)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity '" + entityName + "' not found in domain '" + domainName + "'"})
		return
	}

	reports := h.records.DiagnoseSearch(c.Request.Context(), entity.Kind)
	c.JSON(http.StatusOK, gin.H{
		"kind":       entity.Kind,
		"strategies": reports,
		"summary":    summarize(reports),
	})
}

// DiagnoseRecord runs every record retrieval strategy independently and
// reports each outcome.
func (h *Handler) DiagnoseRecord(c *gin.Context) {
	id := recordIDParam(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing record id"})
		return
	}

	reports := h.records.DiagnoseRecord(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{
		"record_id":  id,
		"strategies": reports,
		"summary":    summarize(reports),
	})
}

func summarize(reports []osdu.StrategyReport) gin.H {
	succeeded := 0
	first := ""
	for _, r := range reports {
		if r.Succeeded {
			succeeded++
			if first == "" {
				first = r.Name
			}
		}
	}
	return gin.H{
		"attempted":        len(reports),
		"succeeded":        succeeded,
		"first_successful": first,
	}
}
