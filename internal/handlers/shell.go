package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/middleware"
	"github.com/judestp/jtb-frontend/internal/nav"
	"github.com/judestp/jtb-frontend/internal/services"
	"github.com/judestp/jtb-frontend/internal/store"
	"github.com/judestp/jtb-frontend/internal/templates"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShellHandler serves the signed-in landing page and the user search.
type ShellHandler struct {
	users    *services.UserService
	metrics  core.Recorder
	pageSize int
}

func NewShellHandler(us *services.UserService, m core.Recorder, pageSize int) *ShellHandler {
	return &ShellHandler{users: us, metrics: m, pageSize: pageSize}
}

// Home renders the header for ?top=&item=. Items with a page of their own
// redirect there.
func (h *ShellHandler) Home(c *gin.Context) {
	top, err := nav.ParseTop(c.Query("top"))
	if err != nil {
		middleware.RenderError(c, http.StatusNotFound, "notFound")
		return
	}
	item, ok, err := nav.ParseItem(c.Query("item"))
	if err != nil || (ok && top != nav.TopManagement) {
		middleware.RenderError(c, http.StatusNotFound, "notFound")
		return
	}
	if ok && item.Path() != "" {
		c.Redirect(http.StatusFound, item.Path())
		return
	}

	base := baseProps(c)
	props := templates.ShellPageProps{
		BaseProps:   base,
		NavbarProps: navbarProps(c, base, top, item),
	}
	if ok {
		props.Selected = base.T(item.LabelID())
	}
	templates.Render(c, http.StatusOK, "shell.html", props)
}

// Users searches the directory. scope is "name" or "all" (default).
func (h *ShellHandler) Users(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	scope := c.DefaultQuery("scope", services.ScopeAll)
	if scope != services.ScopeName {
		scope = services.ScopeAll
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	params := store.NewPaginationParams(page, h.pageSize, q)

	entries, pagination, err := h.users.SearchDirectory(params, scope)
	if err != nil {
		logger.L().Error("directory search failed", zap.Error(err))
		h.metrics.RecordDatabaseQueryError("search_directory")
		middleware.RenderError(c, http.StatusInternalServerError, "serverError")
		return
	}

	base := baseProps(c)
	templates.Render(c, http.StatusOK, "users.html", templates.UserSearchPageProps{
		BaseProps:   base,
		NavbarProps: navbarProps(c, base, nav.TopManagement, nav.ItemUserID),
		PaginationProps: templates.PaginationProps{
			Pagination: pagination,
			BaseURL:    "/app/users",
			Query:      q,
		},
		Scope:    scope,
		Entries:  entries,
		Searched: q != "",
	})
}
