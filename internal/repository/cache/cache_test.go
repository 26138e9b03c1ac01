package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/peoplefinder/internal/db"
)

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_cache_results_total"},
		[]string{"namespace", "result"},
	)
}

func TestGet_Hit(t *testing.T) {
	results := newCounter()
	ms := &mockKVStore{getFn: func(_ context.Context, key string) (string, error) {
		if key != "pf:aiQuery:java" {
			t.Errorf("key = %q", key)
		}
		return "raw", nil
	}}
	c := New(ms, "pf:", results, zap.NewNop())

	v, ok := c.Get(context.Background(), "aiQuery:java")
	if !ok || v != "raw" {
		t.Fatalf("Get() = %q, %v", v, ok)
	}
	if got := testutil.ToFloat64(results.WithLabelValues(NamespaceModelQuery, "hit")); got != 1 {
		t.Errorf("hit counter = %f", got)
	}
}

func TestGet_Miss(t *testing.T) {
	results := newCounter()
	ms := &mockKVStore{getFn: func(context.Context, string) (string, error) {
		return "", db.ErrKeyNotFound
	}}
	c := New(ms, "", results, zap.NewNop())

	if _, ok := c.Get(context.Background(), "distinct:locations"); ok {
		t.Fatal("expected miss")
	}
	if got := testutil.ToFloat64(results.WithLabelValues(NamespaceLocations, "miss")); got != 1 {
		t.Errorf("miss counter = %f", got)
	}
}

func TestGet_ErrorReadsAsMiss(t *testing.T) {
	results := newCounter()
	ms := &mockKVStore{getFn: func(context.Context, string) (string, error) {
		return "", &db.Error{Op: db.OpGet, Err: errors.New("connection refused")}
	}}
	c := New(ms, "", results, zap.NewNop())

	if _, ok := c.Get(context.Background(), "aiQuery:x"); ok {
		t.Fatal("expected miss on store error")
	}
	if got := testutil.ToFloat64(results.WithLabelValues(NamespaceModelQuery, "error")); got != 1 {
		t.Errorf("error counter = %f", got)
	}
}

func TestSet_PassesTTL(t *testing.T) {
	var gotKey string
	var gotTTL time.Duration
	ms := &mockKVStore{setFn: func(_ context.Context, key, _ string, ttl time.Duration) error {
		gotKey, gotTTL = key, ttl
		return nil
	}}
	c := New(ms, "pf:", nil, nil)

	c.Set(context.Background(), "aiQuery:q", "v", time.Hour)
	if gotKey != "pf:aiQuery:q" || gotTTL != time.Hour {
		t.Errorf("set key=%q ttl=%v", gotKey, gotTTL)
	}
}

func TestSet_ErrorSwallowed(t *testing.T) {
	results := newCounter()
	ms := &mockKVStore{setFn: func(context.Context, string, string, time.Duration) error {
		return errors.New("readonly replica")
	}}
	c := New(ms, "", results, zap.NewNop())

	c.Set(context.Background(), "aiQuery:q", "v", time.Minute)
	if got := testutil.ToFloat64(results.WithLabelValues(NamespaceModelQuery, "error")); got != 1 {
		t.Errorf("error counter = %f", got)
	}
}

func TestDisabled(t *testing.T) {
	c := New(nil, "", nil, nil)
	if c.Enabled() {
		t.Fatal("expected disabled cache")
	}
	if _, ok := c.Get(context.Background(), "aiQuery:q"); ok {
		t.Error("disabled cache must miss")
	}
	c.Set(context.Background(), "aiQuery:q", "v", time.Minute) // no panic
	c.Invalidate(context.Background(), "distinct:locations")
}

func TestInvalidate_PrefixesKeys(t *testing.T) {
	var got []string
	ms := &mockKVStore{delFn: func(_ context.Context, keys ...string) error {
		got = keys
		return nil
	}}
	c := New(ms, "pf:cache:", nil, nil)

	c.Invalidate(context.Background(), "distinct:locations", "aiQuery:all")
	if len(got) != 2 || got[0] != "pf:cache:distinct:locations" || got[1] != "pf:cache:aiQuery:all" {
		t.Errorf("deleted keys = %v", got)
	}
}

func TestInvalidate_ErrorSwallowed(t *testing.T) {
	ms := &mockKVStore{delFn: func(context.Context, ...string) error {
		return errors.New("connection reset")
	}}
	New(ms, "", nil, nil).Invalidate(context.Background(), "distinct:locations")
}

func TestInvalidate_NilCache(t *testing.T) {
	var c *BestEffort
	c.Invalidate(context.Background(), "distinct:locations")
}

func TestNamespaceOf(t *testing.T) {
	tests := map[string]string{
		"aiQuery:java developers": NamespaceModelQuery,
		"distinct:locations":      NamespaceLocations,
		"something:else":          namespaceOther,
	}
	for key, want := range tests {
		if got := namespaceOf(key); got != want {
			t.Errorf("namespaceOf(%q) = %q, want %q", key, got, want)
		}
	}
}
