package models

import (
	"time"

	"github.com/judestp/jtb-frontend/internal/stage"
)

// Session is the server-side record of one signed-in browser.
type Session struct {
	Token     string      `json:"token"`
	User      PublicUser  `json:"user"`
	Stage     stage.Stage `json:"stage"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAuthenticated reports whether the session finished both sign-in steps
// and is still valid.
func (s *Session) IsAuthenticated() bool {
	return s.Token != "" && s.Stage == stage.Authenticated && !s.IsExpired()
}
