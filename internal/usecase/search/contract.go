package search

import (
	"context"

	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
)

// Repository defines the storage contract for employee search.
type Repository interface {
	Find(ctx context.Context, f filter.Structured, offset, limit int) ([]domemp.Employee, int, error)
}

// LocationSource returns the distinct-location universe.
type LocationSource interface {
	Locations(ctx context.Context) ([]string, error)
}

// Model turns a raw query into model text carrying a JSON block.
type Model interface {
	Complete(ctx context.Context, query string) (string, error)
}

// FilterBuilder converts a working filter into executable clauses.
type FilterBuilder interface {
	Build(working filter.Model, known []string) filter.Structured
}
