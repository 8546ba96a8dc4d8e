package bootstrap

import (
	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/flow"
	"github.com/judestp/jtb-frontend/internal/handlers"
	"github.com/judestp/jtb-frontend/internal/i18n"
	"github.com/judestp/jtb-frontend/internal/services"
	"github.com/judestp/jtb-frontend/internal/session"
)

const searchPageSize = 10

// handlerSet holds all HTTP handlers
type handlerSet struct {
	auth     *handlers.AuthHandler
	password *handlers.PasswordHandler
	shell    *handlers.ShellHandler
	unlock   *handlers.UnlockHandler
	language *handlers.LanguageHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	orchestrator *flow.Orchestrator,
	repo session.Repository,
	userService *services.UserService,
	authService core.AuthService,
	bundle *i18n.Bundle,
	m core.Recorder,
) handlerSet {
	return handlerSet{
		auth:     handlers.NewAuthHandler(orchestrator, repo, m, cfg.BaseURL, cfg.OTPLength),
		password: handlers.NewPasswordHandler(authService, m, cfg.PasswordMinLength),
		shell:    handlers.NewShellHandler(userService, m, searchPageSize),
		unlock:   handlers.NewUnlockHandler(userService, authService, m),
		language: handlers.NewLanguageHandler(bundle, cfg.BaseURL, cfg.IsProduction),
	}
}
