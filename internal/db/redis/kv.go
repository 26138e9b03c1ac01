package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/peoplefinder/internal/db"
)

// Get returns the string stored at key, or db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.do(ctx, s.b().Get().Key(key).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", db.ErrKeyNotFound
		}
		return "", &db.Error{Op: db.OpGet, Err: err}
	}
	return v, nil
}

// SetWithTTL stores value at key for ttl. A ttl under one second stores
// the value without expiry.
func (s *Store) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	set := s.b().Set().Key(key).Value(value)
	cmd := set.Build()
	if ttl >= time.Second {
		cmd = set.Ex(ttl).Build()
	}
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}
