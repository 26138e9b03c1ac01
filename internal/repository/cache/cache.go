package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/peoplefinder/internal/db"
	"github.com/kailas-cloud/peoplefinder/internal/domain"
)

// Metric namespaces.
const (
	NamespaceModelQuery = "ai_query"
	NamespaceLocations  = "locations"
	namespaceOther      = "other"
)

// store is the consumer interface for the cache store (ISP).
type store interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// BestEffort is a fail-open string cache. Every store error reads as a miss
// and every failed write is dropped; both are logged.
// A nil store disables caching for the process lifetime.
type BestEffort struct {
	store   store
	prefix  string
	results *prometheus.CounterVec
	logger  *zap.Logger
}

// New creates a best-effort cache. Keys are stored under prefix.
// results is a counter vec with labels "namespace" and "result", passed explicitly.
func New(s store, prefix string, results *prometheus.CounterVec, logger *zap.Logger) *BestEffort {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BestEffort{store: s, prefix: prefix, results: results, logger: logger}
}

// Enabled reports whether a backing store is configured.
func (c *BestEffort) Enabled() bool { return c.store != nil }

// Get returns the cached value for key. ok=false on miss, error or disabled cache.
func (c *BestEffort) Get(ctx context.Context, key string) (string, bool) {
	if c.store == nil {
		return "", false
	}

	full := c.prefix + key
	v, err := c.store.Get(ctx, full)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			c.inc(key, "miss")
			return "", false
		}
		c.inc(key, "error")
		c.logger.Warn("Cache get failed", zap.String("key", full), zap.Error(err))
		return "", false
	}

	c.inc(key, "hit")
	return v, true
}

// Set stores value under key with ttl. Failures are logged and dropped.
func (c *BestEffort) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c.store == nil {
		return
	}

	full := c.prefix + key
	if err := c.store.SetWithTTL(ctx, full, value, ttl); err != nil {
		c.inc(key, "error")
		c.logger.Warn("Cache set failed", zap.String("key", full), zap.Error(err))
	}
}

// Invalidate drops keys so the next read repopulates them. Failures are
// logged and dropped. Safe on a nil or disabled cache.
func (c *BestEffort) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.store == nil || len(keys) == 0 {
		return
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.store.Del(ctx, full...); err != nil {
		c.logger.Warn("Cache invalidation failed", zap.Strings("keys", full), zap.Error(err))
	}
}

func (c *BestEffort) inc(key, result string) {
	if c.results != nil {
		c.results.WithLabelValues(namespaceOf(key), result).Inc()
	}
}

func namespaceOf(key string) string {
	switch {
	case strings.HasPrefix(key, domain.ModelQueryKeyPrefix):
		return NamespaceModelQuery
	case key == domain.DistinctLocationsKey:
		return NamespaceLocations
	default:
		return namespaceOther
	}
}
