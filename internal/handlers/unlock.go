package handlers

import (
	"net/http"
	"strings"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/middleware"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/nav"
	"github.com/judestp/jtb-frontend/internal/services"
	"github.com/judestp/jtb-frontend/internal/store"
	"github.com/judestp/jtb-frontend/internal/templates"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const unlockSearchLimit = 20

// UnlockHandler lets administrators issue a password reset for a user.
type UnlockHandler struct {
	users   *services.UserService
	auth    core.AuthService
	metrics core.Recorder
}

func NewUnlockHandler(us *services.UserService, authSvc core.AuthService, m core.Recorder) *UnlockHandler {
	return &UnlockHandler{users: us, auth: authSvc, metrics: m}
}

// resolveTarget returns the matching users and the single one Execute
// would act on: an exact username match, or the only result.
func (h *UnlockHandler) resolveTarget(q string) ([]*models.PublicUser, *models.PublicUser, error) {
	if q == "" {
		return nil, nil, nil
	}
	users, _, err := h.users.SearchUsers(store.NewPaginationParams(1, unlockSearchLimit, q))
	if err != nil {
		return nil, nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, q) {
			return users, u, nil
		}
	}
	if len(users) == 1 {
		return users, users[0], nil
	}
	return users, nil, nil
}

func (h *UnlockHandler) props(c *gin.Context, q string) templates.UnlockPageProps {
	base := baseProps(c)
	return templates.UnlockPageProps{
		BaseProps:   base,
		NavbarProps: navbarProps(c, base, nav.TopManagement, nav.ItemUnlockPasswordReset),
		Query:       q,
	}
}

// Page searches for target users by ?q=.
func (h *UnlockHandler) Page(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	users, target, err := h.resolveTarget(q)
	if err != nil {
		logger.L().Error("user search failed", zap.Error(err))
		h.metrics.RecordDatabaseQueryError("search_users")
		middleware.RenderError(c, http.StatusInternalServerError, "serverError")
		return
	}

	props := h.props(c, q)
	props.Users = users
	props.Enabled = target != nil
	templates.Render(c, http.StatusOK, "unlock.html", props)
}

// Execute issues the reset for the resolved target.
func (h *UnlockHandler) Execute(c *gin.Context) {
	q := strings.TrimSpace(c.PostForm("q"))
	users, target, err := h.resolveTarget(q)
	if err != nil {
		logger.L().Error("user search failed", zap.Error(err))
		h.metrics.RecordDatabaseQueryError("search_users")
		middleware.RenderError(c, http.StatusInternalServerError, "serverError")
		return
	}

	props := h.props(c, q)
	props.Users = users
	if target == nil {
		props.Error = props.T("unlock.noSelection")
		templates.Render(c, http.StatusBadRequest, "unlock.html", props)
		return
	}
	props.Enabled = true

	result := h.auth.RequestPasswordReset(c.Request.Context(), target.Username)
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}
	h.metrics.RecordPasswordResetRequest(resetResultLabel(result))

	if !result.Success {
		logger.L().Warn("unlock failed",
			zap.String("target", logger.MaskString(target.Username)),
			zap.String("reason", result.Reason.String()),
		)
		status := http.StatusBadGateway
		if result.Reason == core.ReasonUserNotFound {
			status = http.StatusNotFound
		}
		props.Error = props.ErrorText(result.Reason.String())
		templates.Render(c, status, "unlock.html", props)
		return
	}

	h.users.InvalidateUserCache(target.Username)
	logger.L().Info("password reset issued",
		zap.String("target", logger.MaskString(target.Username)),
		zap.String("by", logger.MaskString(models.GetUsernameFromContext(c))),
	)
	props.Notice = props.Tf("unlock.done", "User", target.Username)
	templates.Render(c, http.StatusOK, "unlock.html", props)
}
