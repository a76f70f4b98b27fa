package adapters

import (
	"context"
	"errors"
	"time"

	"shipquickr/internal/core/cache"
	"shipquickr/internal/core/logger"
	"shipquickr/internal/features/markup/domain"
	"shipquickr/internal/features/markup/ports"

	"go.uber.org/zap"
)

const activeRuleCacheKey = "markup:active_rule"

// DefaultRuleCacheTTL bounds how stale the cached rule may be on another replica.
const DefaultRuleCacheTTL = 5 * time.Minute

// CachedMarkupRepository is a read-through cache in front of another ports.MarkupRepository.
// The absence of a rule is cached too, as JSON null.
type CachedMarkupRepository struct {
	next  ports.MarkupRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedMarkupRepository creates a new CachedMarkupRepository.
func NewCachedMarkupRepository(next ports.MarkupRepository, c cache.Cache, ttl time.Duration) *CachedMarkupRepository {
	if ttl <= 0 {
		ttl = DefaultRuleCacheTTL
	}
	return &CachedMarkupRepository{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

// Save writes through and invalidates the cached rule.
func (r *CachedMarkupRepository) Save(ctx context.Context, rule *domain.MarkupRule) error {
	if err := r.next.Save(ctx, rule); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, activeRuleCacheKey); err != nil {
		logger.Get().Warn("Failed to invalidate cached markup rule", zap.Error(err))
	}
	return nil
}

// Latest serves the rule from the cache, falling back to the wrapped repository.
func (r *CachedMarkupRepository) Latest(ctx context.Context) (*domain.MarkupRule, error) {
	var cached *domain.MarkupRule
	err := cache.GetJSON(ctx, r.cache, activeRuleCacheKey, &cached)
	switch {
	case err == nil:
		return cached, nil
	case err != nil && !errors.Is(err, cache.ErrKeyNotFound):
		logger.Get().Warn("Markup rule cache unavailable", zap.Error(err))
	}

	rule, err := r.next.Latest(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, r.cache, activeRuleCacheKey, rule, r.ttl); err != nil {
		logger.Get().Warn("Failed to cache markup rule", zap.Error(err))
	}

	return rule, nil
}
