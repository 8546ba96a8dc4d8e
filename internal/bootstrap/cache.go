package bootstrap

import (
	"context"
	"fmt"

	"github.com/judestp/jtb-frontend/internal/cache"
	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/metrics"
	"github.com/judestp/jtb-frontend/internal/models"

	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "jtb:sessions:"
	userKeyPrefix    = "jtb:users:"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) core.Recorder {
	prometheusMetrics := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		logger.L().Info("prometheus metrics initialized")
	} else {
		logger.L().Info("metrics disabled (using noop implementation)")
	}
	return prometheusMetrics
}

// newCache builds a memory or Redis cache depending on SESSION_STORE.
// Users follow the session store so every instance sees the same rows.
func newCache[T any](
	ctx context.Context,
	cfg *config.Config,
	name, keyPrefix string,
) (core.Cache[T], error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		logger.L().Info("cache: memory (single instance only)", zap.String("cache", name))
		return cache.NewMemoryCache[T](), nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RedisConnTimeout)
	defer cancel()

	c, err := cache.NewRueidisCache[T](ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis %s cache: %w", name, err)
	}
	logger.L().Info("cache: redis",
		zap.String("cache", name),
		zap.String("addr", cfg.RedisAddr),
		zap.Int("db", cfg.RedisDB),
	)
	return c, nil
}

// initializeSessionCache initializes the cache behind the session repository
func initializeSessionCache(ctx context.Context, cfg *config.Config) (core.Cache[models.Session], error) {
	return newCache[models.Session](ctx, cfg, "session", sessionKeyPrefix)
}

// initializeUserCache initializes the cache in front of the user table
func initializeUserCache(ctx context.Context, cfg *config.Config) (core.Cache[models.User], error) {
	return newCache[models.User](ctx, cfg, "user", userKeyPrefix)
}
