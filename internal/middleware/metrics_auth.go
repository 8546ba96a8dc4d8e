package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/judestp/jtb-frontend/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MetricsAuthMiddleware protects /metrics with a Bearer token. An empty
// token leaves the endpoint open.
func MetricsAuthMiddleware(token string) gin.HandlerFunc {
	deny := func(c *gin.Context, message string) {
		logger.L().Warn("metrics scrape rejected",
			zap.String("ip", c.ClientIP()),
			zap.String("reason", message),
		)
		c.Header("WWW-Authenticate", `Bearer realm="Metrics"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": message,
		})
	}

	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || provided == "" {
			deny(c, "Bearer token required")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			deny(c, "Invalid token")
			return
		}

		c.Next()
	}
}
