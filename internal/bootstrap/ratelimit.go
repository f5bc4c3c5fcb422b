package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tamkadin/osdu-viewer/internal/config"
	"github.com/tamkadin/osdu-viewer/internal/logger"
)

// setupRateLimiting returns the rate limit middleware for the API
// routes, or a pass-through when rate limiting is disabled. The store
// is in-memory; the viewer is a single-instance tool.
func setupRateLimiting(cfg *config.Config) gin.HandlerFunc {
	if !cfg.RateLimitEnabled {
		return func(c *gin.Context) { c.Next() }
	}

	logger.L().WithField("per_minute", cfg.RateLimitPerMinute).Info("rate limiting enabled")

	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  int64(cfg.RateLimitPerMinute),
	}
	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":             "rate_limit_exceeded",
			"error_description": "Too many requests. Please try again later.",
		})
		c.Abort()
	}))
}
