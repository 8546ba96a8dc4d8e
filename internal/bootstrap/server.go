package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/judestp/jtb-frontend/internal/cache"
	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/store"

	"github.com/appleboy/graceful"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Minute

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.L().Fatal("failed to start server", zap.Error(err))
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(m *graceful.Manager, cfg *config.Config, srv *http.Server) {
	m.AddShutdownJob(func() error {
		logger.L().Info("shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.L().Error("server forced to shutdown", zap.Error(err))
			return err
		}

		logger.L().Info("server exited")
		return nil
	})
}

// addSessionSweepJob evicts expired sessions from the in-memory cache.
// Redis expires keys on its own.
func addSessionSweepJob(m *graceful.Manager, sessionCache core.Cache[models.Session]) {
	memory, ok := sessionCache.(*cache.MemoryCache[models.Session])
	if !ok {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		memory.RunSweeper(ctx, sessionSweepInterval)
		return nil
	})
}

// addRedisClientShutdownJob adds Redis client shutdown handler
func addRedisClientShutdownJob(m *graceful.Manager, redisClient *redis.Client) {
	if redisClient == nil {
		return
	}

	m.AddShutdownJob(func() error {
		logger.L().Info("closing redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.L().Error("error closing redis client", zap.Error(err))
			return err
		}
		logger.L().Info("redis connection closed")
		return nil
	})
}

// addCacheShutdownJob closes a cache on shutdown
func addCacheShutdownJob[T any](m *graceful.Manager, name string, c core.Cache[T]) {
	if c == nil {
		return
	}

	m.AddShutdownJob(func() error {
		if err := c.Close(); err != nil {
			logger.L().Error("error closing cache", zap.String("cache", name), zap.Error(err))
		} else {
			logger.L().Info("cache closed", zap.String("cache", name))
		}
		return nil
	})
}

// addStoreShutdownJob closes the database connection pool
func addStoreShutdownJob(m *graceful.Manager, db *store.Store) {
	m.AddShutdownJob(func() error {
		if err := db.Close(); err != nil {
			logger.L().Error("error closing database", zap.Error(err))
			return err
		}
		logger.L().Info("database connection closed")
		return nil
	})
}
