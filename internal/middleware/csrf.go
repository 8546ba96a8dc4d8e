package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	csrfTokenKey    = "csrf_token"
	csrfFormField   = "csrf_token"
	csrfHeaderField = "X-CSRF-Token"
)

// CSRFMiddleware provides CSRF protection for state-changing operations
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		token, _ := session.Get(csrfTokenKey).(string)
		if token == "" {
			var err error
			token, err = util.RandomToken(32)
			if err != nil {
				logger.L().Error("failed to generate CSRF token", zap.Error(err))
				RenderError(c, http.StatusInternalServerError, "unexpected")
				return
			}
			session.Set(csrfTokenKey, token)
			if err := session.Save(); err != nil {
				logger.L().Error("failed to save CSRF token", zap.Error(err))
				RenderError(c, http.StatusInternalServerError, "unexpected")
				return
			}
		}

		// Make token available to templates
		c.Set(csrfTokenKey, token)

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
			submitted := c.PostForm(csrfFormField)
			if submitted == "" {
				submitted = c.GetHeader(csrfHeaderField)
			}
			if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
				logger.L().Warn("CSRF validation failed",
					zap.String("path", c.Request.URL.Path),
					zap.String("ip", c.ClientIP()),
				)
				RenderError(c, http.StatusForbidden, "csrf")
				return
			}
		}

		c.Next()
	}
}

// GetCSRFToken retrieves the CSRF token from the context
func GetCSRFToken(c *gin.Context) string {
	if token, exists := c.Get(csrfTokenKey); exists {
		if tokenStr, ok := token.(string); ok {
			return tokenStr
		}
	}
	return ""
}
