package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/judestp/jtb-frontend/internal/cache"
	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/i18n"
	"github.com/judestp/jtb-frontend/internal/metrics"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerAddr:            ":8080",
		BaseURL:               "http://localhost:8080",
		ServerShutdownTimeout: time.Second,
		SessionSecret:         "test-session-secret",
		SessionMaxAge:         3600,
		SessionTTL:            time.Hour,
		JWTSecret:             "test-jwt-secret",
		JWTExpiration:         time.Hour,
		AuthMode:              config.AuthModeMock,
		OTPLength:             6,
		PasswordMinLength:     8,
		DatabaseDriver:        "sqlite",
		DatabaseDSN:           ":memory:",
		SessionStore:          config.SessionStoreMemory,
		RateLimitStore:        config.RateLimitStoreMemory,
		DefaultLanguage:       config.LanguageEnglish,
	}
}

func TestValidateAllConfiguration(t *testing.T) {
	require.NoError(t, validateAllConfiguration(testConfig()))

	cfg := testConfig()
	cfg.AuthMode = "unknown"
	err := validateAllConfiguration(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AUTH_MODE")

	cfg = testConfig()
	cfg.AuthMode = config.AuthModeHTTPAPI
	err = validateAllConfiguration(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_API_URL is required")
}

func TestValidateProductionSecrets(t *testing.T) {
	cfg := testConfig()
	cfg.SessionSecret = "session-secret-change-in-production"
	assert.NoError(t, validateProductionSecrets(cfg), "development accepts default secrets")

	cfg.IsProduction = true
	err := validateProductionSecrets(cfg)
	require.ErrorIs(t, err, errDefaultSecret)
	assert.Contains(t, err.Error(), "SESSION_SECRET")

	cfg.SessionSecret = "a-real-secret"
	cfg.JWTSecret = ""
	err = validateProductionSecrets(cfg)
	require.ErrorIs(t, err, errDefaultSecret)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.JWTSecret = "another-real-secret"
	assert.NoError(t, validateProductionSecrets(cfg))
}

func TestInitializeMetrics(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		cfg := &config.Config{MetricsEnabled: enabled}
		m := initializeMetrics(cfg)
		require.NotNil(t, m)
	}
}

func TestInitializeCachesMemory(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	sessionCache, err := initializeSessionCache(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache[models.Session]{}, sessionCache)

	userCache, err := initializeUserCache(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryCache[models.User]{}, userCache)
}

func TestInitializeRateLimitRedisClientNotNeeded(t *testing.T) {
	cfg := testConfig()
	client, err := initializeRateLimitRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, client)

	cfg.EnableRateLimit = true
	client, err = initializeRateLimitRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, client, "memory store does not dial redis")
}

func TestSetupRateLimitingDisabled(t *testing.T) {
	limiters, err := setupRateLimiting(&config.Config{EnableRateLimit: false}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, limiters.login)
	require.NotNil(t, limiters.otp)
	require.NotNil(t, limiters.forgot)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	assert.NotPanics(t, func() { limiters.login(c) })
}

func TestSetupRateLimitingMemory(t *testing.T) {
	cfg := &config.Config{
		EnableRateLimit:          true,
		RateLimitStore:           config.RateLimitStoreMemory,
		RateLimitCleanupInterval: time.Minute,
		LoginRateLimit:           5,
		OTPRateLimit:             10,
	}
	limiters, err := setupRateLimiting(cfg, metrics.NewNoopMetrics(), nil)
	require.NoError(t, err)
	require.NotNil(t, limiters.login)
	require.NotNil(t, limiters.otp)
	require.NotNil(t, limiters.forgot)
}

func TestInitializeAuthServiceHTTPAPI(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMode = config.AuthModeHTTPAPI
	cfg.AuthAPIURL = "http://auth.example.com"
	cfg.AuthAPITimeout = time.Second
	cfg.AuthAPIAuthMode = "none"

	svc, err := initializeAuthService(cfg, nil, metrics.NewNoopMetrics())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestCreateHTTPServer(t *testing.T) {
	srv := createHTTPServer(
		&config.Config{ServerAddr: ":8080"},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)
	require.NotNil(t, srv)
	assert.Equal(t, ":8080", srv.Addr)
}

func TestGinModeMap(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, ginModeMap[true])
	assert.Equal(t, gin.DebugMode, ginModeMap[false])
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := testConfig()
	m := metrics.NewNoopMetrics()

	db, err := store.New(cfg.DatabaseDriver, cfg.DatabaseDSN, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sessionCache := cache.NewMemoryCache[models.Session]()
	userCache := cache.NewMemoryCache[models.User]()

	userService, authService, repo, orchestrator, err := initializeServices(cfg, db, userCache, sessionCache, m)
	require.NoError(t, err)

	bundle, err := i18n.NewBundle(cfg.DefaultLanguage)
	require.NoError(t, err)

	h := initializeHandlers(cfg, orchestrator, repo, userService, authService, bundle, m)
	r, err := setupRouter(cfg, db, sessionCache, h, repo, bundle, m, nil)
	require.NoError(t, err)
	gin.SetMode(gin.TestMode)
	return r
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "connected", body["cache"])
}

func TestRouterServesStaticAssets(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterLoginPage(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="csrf_token"`)
	assert.NotEmpty(t, w.Header().Values("Set-Cookie"))
}

func TestRouterShellRequiresSignIn(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestRouterRejectsPostWithoutCSRFToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouterMetricsDisabled(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
