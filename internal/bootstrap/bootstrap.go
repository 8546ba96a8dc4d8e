package bootstrap

import (
	"context"
	"net/http"

	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/flow"
	"github.com/judestp/jtb-frontend/internal/i18n"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/services"
	"github.com/judestp/jtb-frontend/internal/session"
	"github.com/judestp/jtb-frontend/internal/store"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB                   *store.Store
	MetricsRecorder      core.Recorder
	SessionCache         core.Cache[models.Session]
	UserCache            core.Cache[models.User]
	RateLimitRedisClient *redis.Client
	Bundle               *i18n.Bundle

	// Services
	UserService  *services.UserService
	AuthService  core.AuthService
	Sessions     session.Repository
	Orchestrator *flow.Orchestrator

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	if err := validateAllConfiguration(cfg); err != nil {
		return err
	}

	ctx := context.Background()

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(ctx); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	if err := app.initializeBusinessLayer(); err != nil {
		return err
	}

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics, caches, Redis and locales
func (app *Application) initializeInfrastructure(ctx context.Context) error {
	var err error

	// Database
	app.DB, err = initializeDatabase(app.Config)
	if err != nil {
		return err
	}

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config)

	// Caches
	app.SessionCache, err = initializeSessionCache(ctx, app.Config)
	if err != nil {
		return err
	}
	app.UserCache, err = initializeUserCache(ctx, app.Config)
	if err != nil {
		return err
	}

	// Redis (for rate limiting)
	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(ctx, app.Config)
	if err != nil {
		return err
	}

	// Locales
	app.Bundle, err = i18n.NewBundle(app.Config.DefaultLanguage)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() error {
	var err error
	app.UserService,
		app.AuthService,
		app.Sessions,
		app.Orchestrator,
		err = initializeServices(
		app.Config,
		app.DB,
		app.UserCache,
		app.SessionCache,
		app.MetricsRecorder,
	)
	return err
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.Orchestrator,
		app.Sessions,
		app.UserService,
		app.AuthService,
		app.Bundle,
		app.MetricsRecorder,
	)

	var err error
	app.Router, err = setupRouter(
		app.Config,
		app.DB,
		app.SessionCache,
		app.HandlerSet,
		app.Sessions,
		app.Bundle,
		app.MetricsRecorder,
		app.RateLimitRedisClient,
	)
	if err != nil {
		return err
	}

	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	// Add jobs
	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Config, app.Server)
	addSessionSweepJob(m, app.SessionCache)
	addRedisClientShutdownJob(m, app.RateLimitRedisClient)
	addCacheShutdownJob(m, "session", app.SessionCache)
	addCacheShutdownJob(m, "user", app.UserCache)
	addStoreShutdownJob(m, app.DB)

	// Wait for graceful shutdown
	<-m.Done()
}
