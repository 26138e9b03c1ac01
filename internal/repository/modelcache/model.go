package modelcache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/peoplefinder/internal/domain"
)

// DefaultTTL is how long a raw model response stays cached.
const DefaultTTL = time.Hour

// cache is the consumer interface for the best-effort cache (ISP).
type cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// CachedModel caches raw filter-model responses by the literal query text.
type CachedModel struct {
	inner     domain.FilterModel
	cache     cache
	ttl       time.Duration
	cacheable func(raw string) bool
	logger    *zap.Logger
}

// New creates a caching decorator. cacheable decides whether a fresh response
// is stored; nil stores every response.
func New(
	inner domain.FilterModel,
	c cache,
	ttl time.Duration,
	cacheable func(raw string) bool,
	logger *zap.Logger,
) *CachedModel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedModel{inner: inner, cache: c, ttl: ttl, cacheable: cacheable, logger: logger}
}

// Complete returns the cached response for query or calls the inner model.
// Model errors propagate and nothing is cached.
func (m *CachedModel) Complete(ctx context.Context, query string) (string, error) {
	key := Key(query)

	if raw, ok := m.cache.Get(ctx, key); ok {
		return raw, nil
	}

	raw, err := m.inner.Complete(ctx, query)
	if err != nil {
		return "", fmt.Errorf("complete %q: %w", query, err)
	}

	if m.cacheable != nil && !m.cacheable(raw) {
		m.logger.Warn("Model response not cached", zap.String("query", query), zap.String("key", key))
		return raw, nil
	}
	m.cache.Set(ctx, key, raw, m.ttl)
	return raw, nil
}

// Key returns the cache key for a raw query. Queries are not normalized.
func Key(query string) string {
	return domain.ModelQueryKeyPrefix + query
}
