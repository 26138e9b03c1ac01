package locations

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/peoplefinder/internal/domain"
)

func TestLocations_MissThenHit(t *testing.T) {
	src := &mockSource{locs: []string{"Bangalore", "Mumbai"}}
	c := &memCache{}
	u := New(src, c, 0, nil)

	for range 2 {
		locs, err := u.Locations(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(locs, []string{"Bangalore", "Mumbai"}) {
			t.Fatalf("locs = %v", locs)
		}
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v", c.ttl)
	}
	if c.data[domain.DistinctLocationsKey] != `["Bangalore","Mumbai"]` {
		t.Errorf("cached = %q", c.data[domain.DistinctLocationsKey])
	}
}

func TestLocations_CorruptCacheFallsBackToSource(t *testing.T) {
	src := &mockSource{locs: []string{"Pune"}}
	c := &memCache{data: map[string]string{domain.DistinctLocationsKey: "not json"}}
	u := New(src, c, 0, nil)

	locs, err := u.Locations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(locs, []string{"Pune"}) || src.calls != 1 {
		t.Errorf("locs=%v calls=%d", locs, src.calls)
	}
}

func TestLocations_SourceError(t *testing.T) {
	boom := errors.New("index down")
	u := New(&mockSource{err: boom}, &memCache{}, 0, nil)

	if _, err := u.Locations(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

func TestInvalidate_ReloadsFromSource(t *testing.T) {
	src := &mockSource{locs: []string{"Pune"}}
	c := &memCache{}
	u := New(src, c, 0, nil)

	if _, err := u.Locations(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src.locs = []string{"Pune", "Tokyo"}
	u.Invalidate(context.Background())

	locs, err := u.Locations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(locs, []string{"Pune", "Tokyo"}) || src.calls != 2 {
		t.Errorf("locs=%v calls=%d", locs, src.calls)
	}
}
