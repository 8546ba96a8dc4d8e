package bootstrap

import (
	"fmt"

	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// rateLimitMiddlewares holds rate limiting middlewares for the sign-in forms
type rateLimitMiddlewares struct {
	login  gin.HandlerFunc
	otp    gin.HandlerFunc
	forgot gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration
// Accepts an optional go-redis client
func setupRateLimiting(
	cfg *config.Config,
	m core.Recorder,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	if !cfg.EnableRateLimit {
		noOp := func(c *gin.Context) { c.Next() }
		return rateLimitMiddlewares{login: noOp, otp: noOp, forgot: noOp}, nil
	}
	return createRateLimiters(cfg, m, redisClient)
}

// createRateLimiters creates rate limiting middlewares for all guarded forms
func createRateLimiters(
	cfg *config.Config,
	m core.Recorder,
	redisClient *redis.Client,
) (rateLimitMiddlewares, error) {
	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	logger.L().Info("rate limiting enabled", zap.String("store", cfg.RateLimitStore))

	create := func(requestsPerMinute int, form string) (gin.HandlerFunc, error) {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         storeType,
			RedisClient:       redisClient, // nil for memory store
			CleanupInterval:   cfg.RateLimitCleanupInterval,
			Form:              form,
			Metrics:           m,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter for %s: %w", form, err)
		}
		return limiter, nil
	}

	var (
		limiters rateLimitMiddlewares
		err      error
	)
	if limiters.login, err = create(cfg.LoginRateLimit, "login"); err != nil {
		return limiters, err
	}
	if limiters.otp, err = create(cfg.OTPRateLimit, "otp"); err != nil {
		return limiters, err
	}
	if limiters.forgot, err = create(cfg.LoginRateLimit, "forgot"); err != nil {
		return limiters, err
	}
	return limiters, nil
}
