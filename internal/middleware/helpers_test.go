package middleware

import (
	"testing"

	"github.com/judestp/jtb-frontend/internal/i18n"
	"github.com/judestp/jtb-frontend/internal/templates"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tmpl, err := templates.Load()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)

	bundle, err := i18n.NewBundle("en")
	require.NoError(t, err)

	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	r.Use(Locale(bundle))
	return r
}
