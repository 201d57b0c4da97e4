package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codezetta/internal/cache"
	"codezetta/internal/domain"
	"codezetta/internal/logger"

	"go.uber.org/zap"
)

// ErrShareSlugNotCached is returned when a slug has no cached attempt id.
var ErrShareSlugNotCached = errors.New("share slug not found in cache")

// ShareSlugCache maps public share slugs to attempt ids.
type ShareSlugCache interface {
	Put(ctx context.Context, slug, attemptID string) error
	Get(ctx context.Context, slug string) (string, error)
	Evict(ctx context.Context, slug string) error
}

type shareSlugCacheImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewShareSlugCache returns a no-op cache when c is nil.
func NewShareSlugCache(c domain.Cache, ttl time.Duration) ShareSlugCache {
	if c == nil {
		logger.Get().Warn("ShareSlugCache initialized with nil cache. Service will be no-op.")
		return &noopShareSlugCache{}
	}
	return &shareSlugCacheImpl{cache: c, ttl: ttl}
}

func (s *shareSlugCacheImpl) Put(ctx context.Context, slug, attemptID string) error {
	key := cache.ShareSlugKey(slug)
	if err := s.cache.Set(ctx, key, attemptID, s.ttl); err != nil {
		logger.Get().Error("Failed to cache share slug", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set share slug to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached share slug", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *shareSlugCacheImpl) Get(ctx context.Context, slug string) (string, error) {
	key := cache.ShareSlugKey(slug)
	attemptID, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Share slug cache miss", zap.String("key", key))
			return "", ErrShareSlugNotCached
		}
		logger.Get().Error("Failed to get share slug from cache", zap.Error(err), zap.String("key", key))
		return "", domain.NewInternalError(fmt.Sprintf("failed to get share slug from cache for key %s", key), err)
	}
	if attemptID == "" {
		return "", ErrShareSlugNotCached
	}
	return attemptID, nil
}

func (s *shareSlugCacheImpl) Evict(ctx context.Context, slug string) error {
	key := cache.ShareSlugKey(slug)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Error("Failed to evict share slug", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to delete share slug from cache for key %s", key), err)
	}
	return nil
}

type noopShareSlugCache struct{}

func (s *noopShareSlugCache) Put(ctx context.Context, slug, attemptID string) error {
	return nil
}

func (s *noopShareSlugCache) Get(ctx context.Context, slug string) (string, error) {
	return "", ErrShareSlugNotCached
}

func (s *noopShareSlugCache) Evict(ctx context.Context, slug string) error {
	return nil
}
