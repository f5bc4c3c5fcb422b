// Package bootstrap wires configuration, the token manager, the OSDU
// client, and the HTTP server together.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/appleboy/graceful"

	"github.com/tamkadin/osdu-viewer/internal/client"
	"github.com/tamkadin/osdu-viewer/internal/config"
	"github.com/tamkadin/osdu-viewer/internal/handlers"
	"github.com/tamkadin/osdu-viewer/internal/logger"
	"github.com/tamkadin/osdu-viewer/internal/metrics"
	"github.com/tamkadin/osdu-viewer/internal/osdu"
	"github.com/tamkadin/osdu-viewer/internal/tokenmanager"
	"github.com/tamkadin/osdu-viewer/internal/tokenstore"
)

// Run starts the viewer server and blocks until shutdown completes.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	recorder := metrics.Init(cfg.MetricsEnabled)

	store, storeCloser, err := newTokenStore(cfg)
	if err != nil {
		return err
	}

	retryClient, err := client.NewRetryClient(
		cfg.HTTPTimeout,
		cfg.VerifySSL,
		cfg.MaxRetries,
		cfg.RetryDelay,
		cfg.MaxRetryDelay,
	)
	if err != nil {
		return err
	}

	tokens, err := tokenmanager.New(cfg, store, retryClient, recorder)
	if err != nil {
		return err
	}

	httpClient, err := client.NewHTTPClient(cfg.HTTPTimeout, cfg.VerifySSL)
	if err != nil {
		return err
	}
	osduClient := osdu.NewClient(cfg.BaseURL, cfg.PartitionID, tokens, httpClient, recorder)

	h := handlers.New(osduClient)
	health := handlers.NewHealthHandler(cfg, tokens)
	r := setupRouter(cfg, h, health, recorder)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.L().WithFields(map[string]any{
		"addr":      cfg.ServerAddr,
		"base_url":  cfg.BaseURL,
		"partition": cfg.PartitionID,
	}).Info("starting OSDU viewer server")

	m := graceful.NewManager()

	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.L().WithError(err).Fatal("failed to start server")
			}
		}()
		<-ctx.Done()
		return nil
	})

	m.AddShutdownJob(func() error {
		logger.L().Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.L().WithError(err).Error("server forced to shutdown")
			return err
		}

		logger.L().Info("server exited")
		return nil
	})

	if storeCloser != nil {
		m.AddShutdownJob(func() error {
			logger.L().Info("closing token store")
			return storeCloser()
		})
	}

	<-m.Done()
	return nil
}

// newTokenStore builds the configured token cache backend. The closer
// is nil for backends with nothing to release.
func newTokenStore(cfg *config.Config) (tokenstore.Store, func() error, error) {
	switch cfg.TokenStore {
	case config.TokenStoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := tokenstore.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TokenCacheKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect token store to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.L().WithField("addr", cfg.RedisAddr).Info("token cache: redis")
		return store, store.Close, nil
	case config.TokenStoreFile:
		logger.L().WithField("path", cfg.TokenCachePath).Info("token cache: file")
		return tokenstore.NewFileStore(cfg.TokenCachePath), nil, nil
	default:
		return nil, nil, fmt.Errorf("invalid TOKEN_STORE: %s (must be: file, redis)", cfg.TokenStore)
	}
}
