package seed

import (
	"context"

	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
)

// Repository is the storage contract for loading employees.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	Reset(ctx context.Context) error
	UpsertMany(ctx context.Context, emps []domemp.Employee) error
	Count(ctx context.Context) (int, error)
}
