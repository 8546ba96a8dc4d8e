package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/judestp/jtb-frontend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LocalTokenProvider issues and validates the opaque session tokens handed
// out after a successful credential check. Tokens are HS256 JWTs.
type LocalTokenProvider struct {
	config *config.Config
	now    func() time.Time
}

// NewLocalTokenProvider creates a new local token provider
func NewLocalTokenProvider(cfg *config.Config) *LocalTokenProvider {
	return &LocalTokenProvider{config: cfg, now: time.Now}
}

// GenerateToken signs a session token for the given user
func (p *LocalTokenProvider) GenerateToken(
	ctx context.Context,
	userID, username string,
) (*Result, error) {
	now := p.now()
	expiresAt := now.Add(p.config.JWTExpiration)
	sessionID := uuid.New().String()

	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"type":     TokenTypeSession,
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
		"iss":      p.config.BaseURL,
		"sub":      userID,
		"jti":      sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &Result{
		TokenString: tokenString,
		TokenType:   TokenTypeSession,
		SessionID:   sessionID,
		ExpiresAt:   expiresAt,
		Claims:      claims,
	}, nil
}

// ValidateToken verifies signature, expiry and token type
func (p *LocalTokenProvider) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*ValidationResult, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.config.JWTSecret), nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeSession {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	sessionID, _ := claims["jti"].(string)

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &ValidationResult{
		Valid:     true,
		UserID:    userID,
		Username:  username,
		SessionID: sessionID,
		ExpiresAt: time.Unix(int64(exp), 0),
		Claims:    claims,
	}, nil
}

// Name returns provider name for logging
func (p *LocalTokenProvider) Name() string {
	return "local"
}
