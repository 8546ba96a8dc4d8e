package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/judestp/jtb-frontend/internal/cache"
	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/models"
)

var (
	// ErrNotFound is returned when no live session exists for a token.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidSession is returned by Set for records that cannot be stored.
	ErrInvalidSession = errors.New("invalid session")
)

// Repository stores the auth_token and user of signed-in browsers.
type Repository interface {
	Get(ctx context.Context, token string) (*models.Session, error)
	Set(ctx context.Context, s *models.Session) error
	// Clear removes the session and returns the record it held, so callers
	// can report how long it lived. Clearing a missing token is not an error;
	// it returns (nil, nil).
	Clear(ctx context.Context, token string) (*models.Session, error)
}

// Compile-time interface check.
var _ Repository = (*CacheRepository)(nil)

// CacheRepository keeps sessions in a core.Cache keyed by token.
type CacheRepository struct {
	cache core.Cache[models.Session]
}

// NewCacheRepository creates a repository over c.
func NewCacheRepository(c core.Cache[models.Session]) *CacheRepository {
	return &CacheRepository{cache: c}
}

func (r *CacheRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	s, err := r.cache.Get(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s.IsExpired() {
		_ = r.cache.Delete(ctx, token)
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *CacheRepository) Set(ctx context.Context, s *models.Session) error {
	if s == nil || s.Token == "" {
		return fmt.Errorf("%w: missing token", ErrInvalidSession)
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: already expired", ErrInvalidSession)
	}
	if err := r.cache.Set(ctx, s.Token, *s, ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *CacheRepository) Clear(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	s, err := r.cache.Take(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}
	return &s, nil
}
