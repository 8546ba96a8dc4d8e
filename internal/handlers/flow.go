package handlers

import (
	"github.com/judestp/jtb-frontend/internal/flow"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/middleware"
	"github.com/judestp/jtb-frontend/internal/stage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cookieStages keeps the sign-in stage in the browser's session cookie.
// Changes are written when the handler saves the session.
type cookieStages struct {
	session sessions.Session
}

var _ stage.Store = cookieStages{}

func (s cookieStages) Get() stage.Stage {
	v, _ := s.session.Get(middleware.SessionStage).(string)
	st, err := stage.Parse(v)
	if err != nil {
		logger.L().Warn("discarding unknown stage in session", zap.Error(err))
		return stage.Login
	}
	return st
}

func (s cookieStages) Set(target stage.Stage) error {
	if err := stage.CheckTransition(s.Get(), target); err != nil {
		return err
	}
	s.session.Set(middleware.SessionStage, target.String())
	return nil
}

func (s cookieStages) Reset() {
	s.session.Set(middleware.SessionStage, stage.Login.String())
}

// loadFlow rebuilds the browser's sign-in flow from its session cookie,
// starting a new one when the cookie has none.
func loadFlow(c *gin.Context) (*flow.Flow, sessions.Session) {
	session := sessions.Default(c)

	id, _ := session.Get(middleware.SessionFlowID).(string)
	if id == "" {
		id = uuid.New().String()
		session.Set(middleware.SessionFlowID, id)
	}
	token, _ := session.Get(middleware.SessionAuthToken).(string)

	return &flow.Flow{
		ID:     id,
		Stages: cookieStages{session: session},
		Token:  token,
	}, session
}

// saveFlow writes the flow's token and stage back into the cookie.
func saveFlow(f *flow.Flow, session sessions.Session) error {
	if f.Token == "" {
		session.Delete(middleware.SessionAuthToken)
	} else {
		session.Set(middleware.SessionAuthToken, f.Token)
	}
	return session.Save()
}
