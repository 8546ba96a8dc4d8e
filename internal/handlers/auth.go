package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/flow"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/middleware"
	"github.com/judestp/jtb-frontend/internal/session"
	"github.com/judestp/jtb-frontend/internal/stage"
	"github.com/judestp/jtb-frontend/internal/templates"
	"github.com/judestp/jtb-frontend/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	orchestrator *flow.Orchestrator
	sessions     session.Repository
	metrics      core.Recorder
	baseURL      string
	otpLength    int
}

func NewAuthHandler(
	o *flow.Orchestrator,
	repo session.Repository,
	m core.Recorder,
	baseURL string,
	otpLength int,
) *AuthHandler {
	return &AuthHandler{
		orchestrator: o,
		sessions:     repo,
		metrics:      m,
		baseURL:      baseURL,
		otpLength:    otpLength,
	}
}

// Index sends signed-in browsers to the shell and everyone else to /login.
func (h *AuthHandler) Index(c *gin.Context) {
	f, _ := loadFlow(c)
	if f.Stages.Get() == stage.Authenticated {
		c.Redirect(http.StatusFound, "/app")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the form for the browser's current stage.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	f, sess := loadFlow(c)

	if redirectTo := c.Query("redirect"); redirectTo != "" && util.IsRedirectSafe(redirectTo, h.baseURL) {
		sess.Set(middleware.SessionRedirect, redirectTo)
	}
	if err := sess.Save(); err != nil {
		logger.L().Error("failed to save session", zap.Error(err))
	}

	switch f.Stages.Get() {
	case stage.Authenticated:
		stored, _ := sess.Get(middleware.SessionRedirect).(string)
		c.Redirect(http.StatusFound, util.SafeRedirect(stored, h.baseURL, "/app"))
	case stage.OTP:
		h.renderOTP(c, f, http.StatusOK, templates.OTPPageProps{})
	default:
		h.renderLogin(c, http.StatusOK, templates.LoginPageProps{})
	}
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, props templates.LoginPageProps) {
	props.BaseProps = baseProps(c)
	templates.Render(c, status, "login.html", props)
}

func (h *AuthHandler) renderOTP(c *gin.Context, f *flow.Flow, status int, props templates.OTPPageProps) {
	props.BaseProps = baseProps(c)
	props.Length = h.otpLength
	if s, err := h.sessions.Get(c.Request.Context(), f.Token); err == nil {
		props.Username = s.User.Username
	}
	templates.Render(c, status, "otp.html", props)
}

// statusFor maps an orchestrator error to the HTTP status of the re-rendered form.
func statusFor(err error) int {
	var verr *flow.ValidationError
	var rerr *flow.RejectedError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &rerr):
		if rerr.Reason == core.ReasonServerError {
			return http.StatusBadGateway
		}
		return http.StatusUnauthorized
	case errors.Is(err, flow.ErrSubmissionPending):
		return http.StatusConflict
	case errors.Is(err, flow.ErrSessionExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Login handles the credentials form. On success the browser is sent back
// to GET /login, which now shows the OTP form.
func (h *AuthHandler) Login(c *gin.Context) {
	f, sess := loadFlow(c)
	identifier := c.PostForm("identifier")

	_, err := h.orchestrator.Login(c.Request.Context(), f, flow.Credentials{
		Identifier: identifier,
		Secret:     c.PostForm("secret"),
	})
	if flow.IsCancelled(err) {
		c.Abort()
		return
	}
	if saveErr := saveFlow(f, sess); saveErr != nil {
		logger.L().Error("failed to save session", zap.Error(saveErr))
		middleware.RenderError(c, http.StatusInternalServerError, core.ReasonServerError.String())
		return
	}

	if err != nil {
		if errors.Is(err, flow.ErrWrongStage) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.renderLogin(c, statusFor(err), loginErrorProps(baseProps(c), identifier, err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

func loginErrorProps(base templates.BaseProps, identifier string, err error) templates.LoginPageProps {
	props := templates.LoginPageProps{Identifier: identifier}
	key := flow.ErrorKey(err)
	var verr *flow.ValidationError
	if errors.As(err, &verr) {
		props.Fields = templates.FieldErrors{verr.Field: base.ErrorText(key)}
		return props
	}
	props.Error = base.ErrorText(key)
	return props
}

// VerifyOTP handles the one-time password form.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	f, sess := loadFlow(c)

	_, err := h.orchestrator.VerifyOTP(c.Request.Context(), f, strings.TrimSpace(c.PostForm("otp")))
	if flow.IsCancelled(err) {
		c.Abort()
		return
	}

	redirectTo, _ := sess.Get(middleware.SessionRedirect).(string)
	if err == nil {
		sess.Delete(middleware.SessionRedirect)
	}
	if saveErr := saveFlow(f, sess); saveErr != nil {
		logger.L().Error("failed to save session", zap.Error(saveErr))
		middleware.RenderError(c, http.StatusInternalServerError, core.ReasonServerError.String())
		return
	}

	if err != nil {
		h.otpError(c, f, err)
		return
	}

	c.Redirect(http.StatusSeeOther, util.SafeRedirect(redirectTo, h.baseURL, "/app"))
}

func (h *AuthHandler) otpError(c *gin.Context, f *flow.Flow, err error) {
	base := baseProps(c)
	key := flow.ErrorKey(err)

	switch {
	case errors.Is(err, flow.ErrWrongStage):
		c.Redirect(http.StatusSeeOther, "/login")
		return
	case errors.Is(err, flow.ErrSessionExpired):
		h.renderLogin(c, statusFor(err), templates.LoginPageProps{Error: base.ErrorText(key)})
		return
	}

	props := templates.OTPPageProps{}
	msg := base.ErrorTextf(key, map[string]any{"Length": h.otpLength}, "otp")
	var verr *flow.ValidationError
	if errors.As(err, &verr) {
		props.Fields = templates.FieldErrors{verr.Field: msg}
	} else {
		props.Error = msg
	}
	h.renderOTP(c, f, statusFor(err), props)
}

// Restart abandons the OTP step and returns to the credentials form.
func (h *AuthHandler) Restart(c *gin.Context) {
	f, sess := loadFlow(c)
	if _, err := h.orchestrator.Reset(c.Request.Context(), f); err != nil {
		logger.L().Warn("failed to clear session on restart", zap.Error(err))
	}
	if err := saveFlow(f, sess); err != nil {
		logger.L().Error("failed to save session", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// Logout clears the session record and the cookie, then redirects to login.
func (h *AuthHandler) Logout(c *gin.Context) {
	f, _ := loadFlow(c)
	cleared, err := h.orchestrator.Reset(c.Request.Context(), f)
	if err != nil {
		logger.L().Warn("failed to clear session on logout", zap.Error(err))
	}
	if cleared != nil && cleared.Stage == stage.Authenticated {
		h.metrics.RecordLogout(time.Since(cleared.CreatedAt))
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.L().Error("failed to save session", zap.Error(err))
		middleware.RenderError(c, http.StatusInternalServerError, core.ReasonServerError.String())
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
