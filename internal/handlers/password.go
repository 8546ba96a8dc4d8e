package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/nav"
	"github.com/judestp/jtb-frontend/internal/templates"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultPasswordMinLength applies when the handler is built with 0.
const DefaultPasswordMinLength = 8

// PasswordHandler serves the reset request, first-time setup and change
// forms. Setup and change only validate input; the demo backend has no
// write path for credentials.
type PasswordHandler struct {
	auth      core.AuthService
	metrics   core.Recorder
	minLength int
}

func NewPasswordHandler(authSvc core.AuthService, m core.Recorder, minLength int) *PasswordHandler {
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}
	return &PasswordHandler{
		auth:      authSvc,
		metrics:   m,
		minLength: minLength,
	}
}

// ForgotPage renders the reset request form.
func (h *PasswordHandler) ForgotPage(c *gin.Context) {
	templates.Render(c, http.StatusOK, "password_forgot.html", templates.PasswordForgotPageProps{
		BaseProps: baseProps(c),
	})
}

// Forgot asks the auth service to send reset instructions. Unknown
// accounts get the same notice as known ones.
func (h *PasswordHandler) Forgot(c *gin.Context) {
	base := baseProps(c)
	identifier := strings.TrimSpace(c.PostForm("identifier"))
	props := templates.PasswordForgotPageProps{BaseProps: base, Identifier: identifier}

	if identifier == "" {
		props.Error = base.ErrorText("requiredUsername")
		templates.Render(c, http.StatusBadRequest, "password_forgot.html", props)
		return
	}

	result := h.auth.RequestPasswordReset(c.Request.Context(), identifier)
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}
	h.metrics.RecordPasswordResetRequest(resetResultLabel(result))

	switch {
	case result.Success, result.Reason == core.ReasonUserNotFound:
		props.Notice = base.T("passwordReset.messages.sent")
		templates.Render(c, http.StatusOK, "password_forgot.html", props)
	default:
		logger.L().Warn("password reset request failed", zap.String("reason", result.Reason.String()))
		props.Error = base.ErrorText(result.Reason.String())
		templates.Render(c, http.StatusBadGateway, "password_forgot.html", props)
	}
}

func resetResultLabel(r *core.ResetResult) string {
	if r.Success {
		return "success"
	}
	return r.Reason.String()
}

// validateNewPassword fills fields with the errors of a new password and
// its confirmation, using the ns message namespace.
func (h *PasswordHandler) validateNewPassword(
	base templates.BaseProps,
	ns, field, password, confirm string,
	fields templates.FieldErrors,
) {
	switch {
	case password == "":
		fields[field] = base.ErrorText("required", ns)
	case utf8.RuneCountInString(password) < h.minLength:
		fields[field] = base.ErrorTextf("minLength", map[string]any{"Min": h.minLength}, ns)
	}
	if confirm != password {
		fields["confirm_password"] = base.ErrorText("mismatch", ns)
	}
}

// SetupPage renders the first-time password form.
func (h *PasswordHandler) SetupPage(c *gin.Context) {
	templates.Render(c, http.StatusOK, "password_setup.html", templates.PasswordSetupPageProps{
		BaseProps: baseProps(c),
		MinLength: h.minLength,
	})
}

// Setup validates a new password and its confirmation.
func (h *PasswordHandler) Setup(c *gin.Context) {
	base := baseProps(c)
	fields := templates.FieldErrors{}
	h.validateNewPassword(base, "passwordSetup", "password",
		c.PostForm("password"), c.PostForm("confirm_password"), fields)

	props := templates.PasswordSetupPageProps{
		BaseProps: base,
		MinLength: h.minLength,
		Fields:    fields,
	}
	if len(fields) > 0 {
		templates.Render(c, http.StatusBadRequest, "password_setup.html", props)
		return
	}
	props.Saved = true
	templates.Render(c, http.StatusOK, "password_setup.html", props)
}

// ChangePage renders the password change form for the signed-in user.
func (h *PasswordHandler) ChangePage(c *gin.Context) {
	base := baseProps(c)
	templates.Render(c, http.StatusOK, "password_change.html", templates.PasswordChangePageProps{
		BaseProps:   base,
		NavbarProps: navbarProps(c, base, nav.TopManagement, ""),
		MinLength:   h.minLength,
	})
}

// Change validates the current, new and confirmation fields.
func (h *PasswordHandler) Change(c *gin.Context) {
	base := baseProps(c)
	fields := templates.FieldErrors{}
	if c.PostForm("current_password") == "" {
		fields["current_password"] = base.ErrorText("required", "passwordReset")
	}
	h.validateNewPassword(base, "passwordReset", "new_password",
		c.PostForm("new_password"), c.PostForm("confirm_password"), fields)

	props := templates.PasswordChangePageProps{
		BaseProps:   base,
		NavbarProps: navbarProps(c, base, nav.TopManagement, ""),
		MinLength:   h.minLength,
		Fields:      fields,
	}
	if len(fields) > 0 {
		templates.Render(c, http.StatusBadRequest, "password_change.html", props)
		return
	}
	props.Saved = true
	templates.Render(c, http.StatusOK, "password_change.html", props)
}
