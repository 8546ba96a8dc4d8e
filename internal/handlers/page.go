package handlers

import (
	"github.com/judestp/jtb-frontend/internal/middleware"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/nav"
	"github.com/judestp/jtb-frontend/internal/templates"

	"github.com/gin-gonic/gin"
)

func baseProps(c *gin.Context) templates.BaseProps {
	return templates.NewBaseProps(middleware.GetCSRFToken(c), middleware.GetLocalizer(c))
}

// navbarProps builds the header for a signed-in page.
func navbarProps(c *gin.Context, base templates.BaseProps, top nav.TopKey, item nav.ItemKey) templates.NavbarProps {
	user := models.GetUserFromContext(c)
	return templates.NavbarProps{
		User:  user,
		Menus: nav.Build(base, top, item, user != nil && user.IsAdmin()),
	}
}
