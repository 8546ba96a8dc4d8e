package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/session"
	"github.com/judestp/jtb-frontend/internal/stage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Cookie session keys shared by the middleware and the handlers.
const (
	// SessionAuthToken is the opaque token issued at sign-in. It keys the
	// server-side session record holding the user.
	SessionAuthToken = "auth_token"
	// SessionFlowID identifies the browser's sign-in flow.
	SessionFlowID = "flow_id"
	// SessionStage is the sign-in stage of the flow.
	SessionStage = "stage"
	// SessionRedirect is where to go once the flow is authenticated.
	SessionRedirect = "redirect"
)

// RequireAuth is a middleware that requires a fully signed-in session.
// Browsers still on the login or OTP step are sent back to /login.
func RequireAuth(repo session.Repository, m core.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie := sessions.Default(c)
		token, _ := cookie.Get(SessionAuthToken).(string)
		if token == "" {
			redirectToLogin(c)
			return
		}

		sess, err := repo.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.L().Error("failed to load session", zap.Error(err))
				RenderError(c, http.StatusInternalServerError, "serverError")
				return
			}
			if st, _ := cookie.Get(SessionStage).(string); st == stage.Authenticated.String() {
				m.RecordSessionExpired("expired")
			}
			cookie.Delete(SessionAuthToken)
			cookie.Delete(SessionStage)
			_ = cookie.Save()
			redirectToLogin(c)
			return
		}

		if !sess.IsAuthenticated() {
			redirectToLogin(c)
			return
		}

		c.Set("user", &sess.User)
		c.Request = c.Request.WithContext(models.SetUserContext(c.Request.Context(), &sess.User))
		c.Next()
	}
}

// RequireAdmin is a middleware that requires the user to have admin role
// This middleware should be used after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := models.GetUserFromContext(c)
		if !user.IsAdmin() {
			logger.L().Warn("admin page denied",
				zap.String("path", c.Request.URL.Path),
				zap.String("user", logger.MaskString(models.GetUsernameFromContext(c))),
			)
			RenderError(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}
