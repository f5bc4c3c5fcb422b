package bootstrap

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamkadin/osdu-viewer/internal/config"
	"github.com/tamkadin/osdu-viewer/internal/handlers"
	"github.com/tamkadin/osdu-viewer/internal/logger"
	"github.com/tamkadin/osdu-viewer/internal/metrics"
)

// setupRouter configures the gin router with all routes and middleware.
func setupRouter(
	cfg *config.Config,
	h *handlers.Handler,
	health *handlers.HealthHandler,
	recorder metrics.Recorder,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", health.Health)
	setupMetricsEndpoint(r, cfg)

	rateLimit := setupRateLimiting(cfg)

	api := r.Group("/api", rateLimit)
	{
		api.GET("/domains", h.ListDomains)
		api.GET("/entities", h.ListEntities)
		api.GET("/entities/search", h.SearchCatalog)
		api.GET("/records/:domain/:entity", h.ListRecords)
		api.GET("/record/*id", h.GetRecord)

		debug := api.Group("/debug")
		debug.GET("/search-strategies/:domain/:entity", h.DiagnoseSearch)
		debug.GET("/record-strategies/*id", h.DiagnoseRecord)
	}

	return r
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint.
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		logger.L().Info("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		logger.L().Info("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET("/metrics", metricsAuthMiddleware(cfg.MetricsToken), gin.WrapH(promhttp.Handler()))
	default:
		logger.L().Info("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// metricsAuthMiddleware protects the metrics endpoint with a Bearer token.
func metricsAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Header("WWW-Authenticate", `Bearer realm="Metrics"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Bearer token required",
			})
			return
		}

		provided := strings.TrimPrefix(authHeader, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.Header("WWW-Authenticate", `Bearer realm="Metrics"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid token",
			})
			return
		}

		c.Next()
	}
}

// setupGinMode sets gin mode based on environment configuration.
func setupGinMode(cfg *config.Config) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
}
