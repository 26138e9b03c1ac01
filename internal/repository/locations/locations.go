package locations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/peoplefinder/internal/domain"
)

// DefaultTTL is how long the location universe stays cached.
const DefaultTTL = 24 * time.Hour

// source is the consumer interface for the authoritative location list (ISP).
type source interface {
	DistinctLocations(ctx context.Context) ([]string, error)
}

// cache is the consumer interface for the best-effort cache (ISP).
type cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Invalidate(ctx context.Context, keys ...string)
}

// Universe serves the distinct location values, cached as a JSON array.
// Staleness up to the TTL is accepted.
type Universe struct {
	src    source
	cache  cache
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a cached location universe.
func New(src source, c cache, ttl time.Duration, logger *zap.Logger) *Universe {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Universe{src: src, cache: c, ttl: ttl, logger: logger}
}

// Locations returns the known location values.
func (u *Universe) Locations(ctx context.Context) ([]string, error) {
	if raw, ok := u.cache.Get(ctx, domain.DistinctLocationsKey); ok {
		var locs []string
		err := json.Unmarshal([]byte(raw), &locs)
		if err == nil {
			return locs, nil
		}
		u.logger.Warn("Discarding corrupt cached locations",
			zap.String("key", domain.DistinctLocationsKey), zap.Error(err))
	}

	locs, err := u.src.DistinctLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("distinct locations: %w", err)
	}

	data, err := json.Marshal(locs)
	if err != nil {
		return nil, fmt.Errorf("marshal locations: %w", err)
	}
	u.cache.Set(ctx, domain.DistinctLocationsKey, string(data), u.ttl)
	return locs, nil
}

// Invalidate drops the cached universe. Call after the employee set changes.
func (u *Universe) Invalidate(ctx context.Context) {
	u.cache.Invalidate(ctx, domain.DistinctLocationsKey)
}
