package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/judestp/jtb-frontend/internal/auth"
	"github.com/judestp/jtb-frontend/internal/client"
	"github.com/judestp/jtb-frontend/internal/config"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/flow"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/services"
	"github.com/judestp/jtb-frontend/internal/session"
	"github.com/judestp/jtb-frontend/internal/store"
	"github.com/judestp/jtb-frontend/internal/token"

	"go.uber.org/zap"
)

const userCacheTTL = 5 * time.Minute

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	userCache core.Cache[models.User],
	sessionCache core.Cache[models.Session],
	m core.Recorder,
) (*services.UserService, core.AuthService, session.Repository, *flow.Orchestrator, error) {
	userService := services.NewUserService(db, userCache, userCacheTTL)

	authService, err := initializeAuthService(cfg, userService, m)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	repo := session.NewCacheRepository(sessionCache)
	orchestrator := flow.NewOrchestrator(authService, repo, m,
		flow.WithSessionTTL(cfg.SessionTTL),
		flow.WithOTPLength(cfg.OTPLength),
		flow.WithOnAuthenticated(logAuthenticated),
	)

	return userService, authService, repo, orchestrator, nil
}

// initializeAuthService picks the sign-in backend for AUTH_MODE
func initializeAuthService(
	cfg *config.Config,
	users *services.UserService,
	m core.Recorder,
) (core.AuthService, error) {
	switch cfg.AuthMode {
	case config.AuthModeHTTPAPI:
		retryClient, err := client.NewRetryClient(client.OptionsFromConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize auth API client: %w", err)
		}
		logger.L().Info("auth backend: http api", zap.String("url", cfg.AuthAPIURL))
		return auth.NewHTTPService(cfg.AuthAPIURL, retryClient, m), nil
	default:
		logger.L().Info("auth backend: mock",
			zap.Duration("latency", cfg.MockLatency),
			zap.Int("otp_length", cfg.OTPLength),
		)
		return auth.NewMockService(users, token.NewLocalTokenProvider(cfg), cfg.MockLatency, cfg.OTPLength), nil
	}
}

// logAuthenticated is the hand-over to the application shell.
func logAuthenticated(ctx context.Context, s *models.Session) {
	logger.L().Info("session authenticated",
		zap.String("user", logger.MaskString(s.User.Username)),
		zap.String("role", s.User.Role),
		zap.Time("expires_at", s.ExpiresAt),
	)
}
