package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/judestp/jtb-frontend/internal/core"
	"github.com/judestp/jtb-frontend/internal/logger"
	"github.com/judestp/jtb-frontend/internal/models"
	"github.com/judestp/jtb-frontend/internal/store"

	"go.uber.org/zap"
)

const userCacheKeyPrefix = "user:"

// UserService reads the user and directory tables. Username lookups go
// through a cache-aside layer; the cache is optional.
type UserService struct {
	store    *store.Store
	cache    core.Cache[models.User]
	cacheTTL time.Duration
}

func NewUserService(s *store.Store, c core.Cache[models.User], cacheTTL time.Duration) *UserService {
	return &UserService{
		store:    s,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func userCacheKey(username string) string {
	return userCacheKeyPrefix + strings.ToLower(strings.TrimSpace(username))
}

// GetUserByUsername returns store.ErrRecordNotFound for unknown users.
// A cache failure falls through to the store.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	ctx := context.Background()
	key := userCacheKey(username)

	if s.cache != nil {
		if u, err := s.cache.Get(ctx, key); err == nil {
			return &u, nil
		}
	}

	u, err := s.store.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, *u, s.cacheTTL); err != nil {
			logger.L().Warn("failed to cache user", zap.String("key", key), zap.Error(err))
		}
	}
	return u, nil
}

// InvalidateUserCache drops the cached row for username.
func (s *UserService) InvalidateUserCache(username string) {
	if s.cache == nil {
		return
	}
	key := userCacheKey(username)
	if err := s.cache.Delete(context.Background(), key); err != nil {
		logger.L().Warn("failed to invalidate user cache", zap.String("key", key), zap.Error(err))
	}
}

// SearchUsers lists users matching params.Query for the unlock screen.
func (s *UserService) SearchUsers(params store.PaginationParams) ([]*models.PublicUser, store.PaginationResult, error) {
	users, page, err := s.store.ListUsersPaginated(params)
	if err != nil {
		return nil, store.PaginationResult{}, err
	}
	out := make([]*models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, page, nil
}

// Search scopes accepted by SearchDirectory.
const (
	ScopeAll  = "all"
	ScopeName = "name"
)

var ErrInvalidScope = errors.New("invalid search scope")

// SearchDirectory filters the user search table. An empty scope means ScopeAll.
func (s *UserService) SearchDirectory(
	params store.PaginationParams,
	scope string,
) ([]models.DirectoryEntry, store.PaginationResult, error) {
	switch scope {
	case "", ScopeAll:
		return s.store.SearchDirectory(params, true)
	case ScopeName:
		return s.store.SearchDirectory(params, false)
	}
	return nil, store.PaginationResult{}, ErrInvalidScope
}
