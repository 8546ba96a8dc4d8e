package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/store"
	"github.com/judestp/jtb-frontend/internal/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserLookup finds fixture users by username.
type UserLookup interface {
	GetUserByUsername(username string) (*models.User, error)
}

// TokenIssuer signs the session token returned on a successful login.
type TokenIssuer interface {
	GenerateToken(ctx context.Context, userID, username string) (*token.Result, error)
}

// Compile-time interface check.
var _ core.AuthService = (*MockService)(nil)

// MockService answers sign-in calls from the fixture table after an
// artificial delay. It never talks to a real backend.
//
// VerifyOTP is a stub: any well-formed numeric code passes. It must not be
// used where a real second factor is required.
type MockService struct {
	users   UserLookup
	tokens  TokenIssuer
	latency time.Duration
	otpCode *regexp.Regexp
}

// NewMockService creates the mock service. otpLength is the number of
// digits a code must have to pass the stub check.
func NewMockService(
	users UserLookup,
	tokens TokenIssuer,
	latency time.Duration,
	otpLength int,
) *MockService {
	return &MockService{
		users:   users,
		tokens:  tokens,
		latency: latency,
		otpCode: regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, otpLength)),
	}
}

// unknownUserHash is compared against when the identifier matches no user,
// so unknown users cost the same bcrypt work as a wrong secret.
var unknownUserHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("unknown-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("auth: generate unknown user hash: %v", err))
	}
	return hash
})

func loginFailure(reason core.Reason) *core.LoginResult {
	return &core.LoginResult{Success: false, Reason: reason}
}

// Login checks identifier and secret against the fixture table.
// Unknown users and wrong secrets report the same reason.
func (s *MockService) Login(ctx context.Context, identifier, secret string) (result *core.LoginResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("mock login panicked", zap.Any("panic", r))
			result = loginFailure(core.ReasonServerError)
		}
	}()

	if err := simulateLatency(ctx, s.latency); err != nil {
		return loginFailure(core.ReasonServerError)
	}

	user, err := s.users.GetUserByUsername(identifier)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(unknownUserHash(), []byte(secret))
			return loginFailure(core.ReasonInvalidCredentials)
		}
		logger.L().Error("user lookup failed", zap.Error(err))
		return loginFailure(core.ReasonServerError)
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(secret),
	); err != nil {
		return loginFailure(core.ReasonInvalidCredentials)
	}

	tok, err := s.tokens.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		logger.L().Error("session token generation failed", zap.Error(err))
		return loginFailure(core.ReasonServerError)
	}

	return &core.LoginResult{
		Success: true,
		User:    user.Public(),
		Token:   tok.TokenString,
	}
}

// VerifyOTP accepts any code made of exactly the configured number of digits.
func (s *MockService) VerifyOTP(ctx context.Context, code string) (result *core.OTPResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("mock otp check panicked", zap.Any("panic", r))
			result = &core.OTPResult{Reason: core.ReasonServerError}
		}
	}()

	if err := simulateLatency(ctx, s.latency); err != nil {
		return &core.OTPResult{Reason: core.ReasonServerError}
	}

	if !s.otpCode.MatchString(code) {
		return &core.OTPResult{Reason: core.ReasonInvalidOrExpiredOTP}
	}
	return &core.OTPResult{Success: true}
}

// RequestPasswordReset pretends to send reset instructions to a known user.
func (s *MockService) RequestPasswordReset(ctx context.Context, identifier string) (result *core.ResetResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("mock password reset panicked", zap.Any("panic", r))
			result = &core.ResetResult{Reason: core.ReasonServerError}
		}
	}()

	if err := simulateLatency(ctx, s.latency); err != nil {
		return &core.ResetResult{Reason: core.ReasonServerError}
	}

	if _, err := s.users.GetUserByUsername(identifier); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return &core.ResetResult{Reason: core.ReasonUserNotFound}
		}
		logger.L().Error("user lookup failed", zap.Error(err))
		return &core.ResetResult{Reason: core.ReasonServerError}
	}

	return &core.ResetResult{Success: true, Reason: core.ReasonResetSent}
}

// Name returns provider name for logging
func (s *MockService) Name() string {
	return "mock"
}
