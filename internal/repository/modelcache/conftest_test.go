package modelcache

import (
	"context"
	"time"
)

type mockModel struct {
	raw   string
	err   error
	calls int
}

func (m *mockModel) Complete(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.raw, m.err
}

// memCache is an in-memory implementation of the cache consumer interface.
type memCache struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	c.data[key] = value
	c.ttls[key] = ttl
}
