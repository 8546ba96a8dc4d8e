package middleware

import (
	"github.com/judestp/jtb-frontend/internal/templates"

	"github.com/gin-gonic/gin"
)

// RenderError renders the error page with the translated message for key
// and aborts the chain.
func RenderError(c *gin.Context, status int, key string) {
	base := templates.NewBaseProps(GetCSRFToken(c), GetLocalizer(c))
	templates.Render(c, status, "error.html", templates.ErrorPageProps{
		BaseProps: base,
		Error:     base.ErrorText(key),
	})
	c.Abort()
}
