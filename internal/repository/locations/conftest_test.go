package locations

import (
	"context"
	"time"
)

type mockSource struct {
	locs  []string
	err   error
	calls int
}

func (m *mockSource) DistinctLocations(_ context.Context) ([]string, error) {
	m.calls++
	return m.locs, m.err
}

type memCache struct {
	data map[string]string
	ttl  time.Duration
}

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	if c.data == nil {
		c.data = map[string]string{}
	}
	c.data[key] = value
	c.ttl = ttl
}

func (c *memCache) Invalidate(_ context.Context, keys ...string) {
	for _, k := range keys {
		delete(c.data, k)
	}
}
