package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/i18n"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/metrics"
	"github.com/judestp/jtb-frontend/internal/middleware"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/session"
	"github.com/judestp/jtb-frontend/internal/store"
	"github.com/judestp/jtb-frontend/internal/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionCookieName  = "jtb_session"
	healthCheckTimeout = 2 * time.Second
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	sessionCache core.Cache[models.Session],
	h handlerSet,
	repo session.Repository,
	bundle *i18n.Bundle,
	m core.Recorder,
	rateLimitRedisClient *redis.Client,
) (*gin.Engine, error) {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(middleware.RequestContext())
	r.Use(middleware.AccessLog("/health", "/metrics"), gin.Recovery())
	r.Use(metrics.HTTPMetricsMiddleware(m))

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", templates.Static())

	r.GET("/health", createHealthCheckHandler(db, sessionCache))
	setupMetricsEndpoint(r, cfg)

	setupSessionMiddleware(r, cfg)
	r.Use(middleware.Locale(bundle))
	r.Use(middleware.CSRFMiddleware())

	rateLimiters, err := setupRateLimiting(cfg, m, rateLimitRedisClient)
	if err != nil {
		return nil, err
	}

	setupAllRoutes(r, h, repo, m, rateLimiters)
	logServerStartup(cfg)

	return r, nil
}

// setupSessionMiddleware configures the signed cookie that carries the flow
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, sessionStore))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		logger.L().Info("prometheus metrics disabled")
	case cfg.MetricsToken != "":
		logger.L().Info("prometheus metrics enabled at /metrics with bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		logger.L().Info("prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	h handlerSet,
	repo session.Repository,
	m core.Recorder,
	rateLimiters rateLimitMiddlewares,
) {
	r.GET("/", h.auth.Index)

	// Sign-in flow
	r.GET("/login", h.auth.LoginPage)
	r.POST("/login", rateLimiters.login, h.auth.Login)
	r.POST("/login/otp", rateLimiters.otp, h.auth.VerifyOTP)
	r.POST("/login/reset", h.auth.Restart)
	r.GET("/logout", h.auth.Logout)

	// Password pages reachable before sign-in
	password := r.Group("/password")
	{
		password.GET("/forgot", h.password.ForgotPage)
		password.POST("/forgot", rateLimiters.forgot, h.password.Forgot)
		password.GET("/setup", h.password.SetupPage)
		password.POST("/setup", h.password.Setup)
	}

	r.GET("/language", h.language.Page)
	r.POST("/language", h.language.Set)

	// Application shell (requires a completed sign-in)
	protected := r.Group("")
	protected.Use(middleware.RequireAuth(repo, m))
	{
		protected.GET("/app", h.shell.Home)
		protected.GET("/app/users", h.shell.Users)
		protected.GET("/account/password", h.password.ChangePage)
		protected.POST("/account/password", h.password.Change)
	}

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/app/unlock", h.unlock.Page)
		admin.POST("/app/unlock", h.unlock.Execute)
	}
}

// createHealthCheckHandler reports store and session cache connectivity
func createHealthCheckHandler(db *store.Store, sessionCache core.Cache[models.Session]) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		body := gin.H{
			"status":   "healthy",
			"database": "connected",
			"cache":    "connected",
		}
		if err := db.Health(); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = "disconnected"
		}
		if err := sessionCache.Health(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["cache"] = "disconnected"
		}
		c.JSON(status, body)
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	logger.L().Info("gin mode", zap.String("mode", ginModeLogMessage[cfg.IsProduction]))
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config) {
	logger.L().Info("JTB console starting",
		zap.String("addr", cfg.ServerAddr),
		zap.String("login_url", cfg.BaseURL+"/login"),
		zap.String("auth_mode", cfg.AuthMode),
		zap.String("session_store", cfg.SessionStore),
		zap.String("default_language", cfg.DefaultLanguage),
	)
}
