package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/judestp/jtb-frontend/internal/auth"
	"github.com/judestp/jtb-frontend/internal/cache"
	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/flow"
	"github.com/judestp/jtb-frontend/internal/i18n"
	"github.com/judestp/jtb-frontend/internal/metrics"
	"github.com/judestp/jtb-frontend/internal/middleware"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/services"
	"github.com/judestp/jtb-frontend/internal/session"
	"github.com/judestp/jtb-frontend/internal/store"
	"github.com/judestp/jtb-frontend/internal/templates"
	"github.com/judestp/jtb-frontend/internal/token"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8080"

// testApp is the console wired with the mock auth service and an
// in-memory store. It keeps cookies between requests like a browser.
type testApp struct {
	t             *testing.T
	router        *gin.Engine
	sessions      session.Repository
	authenticated atomic.Int32
	cookies       map[string]*http.Cookie
}

// testAppConfig overrides parts of the default test wiring.
type testAppConfig struct {
	recorder  core.Recorder
	otpLength int
}

func newTestApp(t *testing.T, opts ...flow.Option) *testApp {
	t.Helper()
	return newTestAppWith(t, testAppConfig{}, opts...)
}

func newTestAppWith(t *testing.T, tc testAppConfig, opts ...flow.Option) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if tc.recorder == nil {
		tc.recorder = metrics.NewNoopMetrics()
	}
	if tc.otpLength == 0 {
		tc.otpLength = 6
	}

	db, err := store.New("sqlite", ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		BaseURL:       testBaseURL,
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
	}
	m := tc.recorder
	users := services.NewUserService(db, cache.NewMemoryCache[models.User](), time.Minute)
	authSvc := auth.NewMockService(users, token.NewLocalTokenProvider(cfg), 0, tc.otpLength)
	repo := session.NewCacheRepository(cache.NewMemoryCache[models.Session]())

	app := &testApp{t: t, sessions: repo, cookies: map[string]*http.Cookie{}}
	opts = append([]flow.Option{flow.WithOTPLength(tc.otpLength)}, opts...)
	opts = append(opts, flow.WithOnAuthenticated(func(context.Context, *models.Session) {
		app.authenticated.Add(1)
	}))
	orchestrator := flow.NewOrchestrator(authSvc, repo, m, opts...)

	bundle, err := i18n.NewBundle("en")
	require.NoError(t, err)
	tmpl, err := templates.Load()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-session-secret"))))
	r.Use(middleware.Locale(bundle))

	authHandler := NewAuthHandler(orchestrator, repo, m, testBaseURL, tc.otpLength)
	passwordHandler := NewPasswordHandler(authSvc, m, 8)
	shellHandler := NewShellHandler(users, m, 10)
	unlockHandler := NewUnlockHandler(users, authSvc, m)
	languageHandler := NewLanguageHandler(bundle, testBaseURL, false)

	r.GET("/", authHandler.Index)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/login/otp", authHandler.VerifyOTP)
	r.POST("/login/reset", authHandler.Restart)
	r.GET("/logout", authHandler.Logout)
	r.GET("/password/forgot", passwordHandler.ForgotPage)
	r.POST("/password/forgot", passwordHandler.Forgot)
	r.GET("/password/setup", passwordHandler.SetupPage)
	r.POST("/password/setup", passwordHandler.Setup)
	r.GET("/language", languageHandler.Page)
	r.POST("/language", languageHandler.Set)

	protected := r.Group("", middleware.RequireAuth(repo, m))
	protected.GET("/app", shellHandler.Home)
	protected.GET("/app/users", shellHandler.Users)
	protected.GET("/account/password", passwordHandler.ChangePage)
	protected.POST("/account/password", passwordHandler.Change)

	admin := protected.Group("", middleware.RequireAdmin())
	admin.GET("/app/unlock", unlockHandler.Page)
	admin.POST("/app/unlock", unlockHandler.Execute)

	app.router = r
	return app
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	a.t.Helper()
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(a.cookies, c.Name)
			continue
		}
		a.cookies[c.Name] = c
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

// sessionCounter counts the session lifecycle calls made on the recorder.
type sessionCounter struct {
	metrics.NoopMetrics
	created atomic.Int32
	logouts atomic.Int32
	expired atomic.Int32
}

func (s *sessionCounter) RecordSessionCreated()              { s.created.Add(1) }
func (s *sessionCounter) RecordLogout(time.Duration)         { s.logouts.Add(1) }
func (s *sessionCounter) RecordSessionExpired(reason string) { s.expired.Add(1) }

// signIn completes both steps for a fixture user.
func (a *testApp) signIn(username, password string) {
	a.t.Helper()
	w := a.post("/login", url.Values{"identifier": {username}, "secret": {password}})
	require.Equal(a.t, http.StatusSeeOther, w.Code)
	w = a.post("/login/otp", url.Values{"otp": {"123456"}})
	require.Equal(a.t, http.StatusSeeOther, w.Code)
}

const (
	adminUser     = "admin@gmail.com"
	adminPassword = "123"
	taroUser      = "taro.kimura@jtb.example"
	taroPassword  = "taro-pass-2024"
)
