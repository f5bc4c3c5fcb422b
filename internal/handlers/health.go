package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tamkadin/osdu-viewer/internal/catalog"
	"github.com/tamkadin/osdu-viewer/internal/config"
)

// TokenStatus exposes token health without triggering acquisition.
type TokenStatus interface {
	IsTokenValid() bool
}

// HealthHandler reports service and token state.
type HealthHandler struct {
	cfg    *config.Config
	tokens TokenStatus
}

// NewHealthHandler creates a HealthHandler. A nil tokens value reports
// the token manager as uninitialized.
func NewHealthHandler(cfg *config.Config, tokens TokenStatus) *HealthHandler {
	return &HealthHandler{cfg: cfg, tokens: tokens}
}

// Health returns service status and configuration summary.
func (h *HealthHandler) Health(c *gin.Context) {
	tokenValid := false
	if h.tokens != nil {
		tokenValid = h.tokens.IsTokenValid()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"token_initialized": h.tokens != nil,
		"token_valid":       tokenValid,
		"base_url":          h.cfg.BaseURL,
		"partition_id":      h.cfg.PartitionID,
		"domains":           len(catalog.Domains()),
		"entities":          catalog.TotalEntities(),
	})
}
