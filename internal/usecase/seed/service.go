package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/logger"
)

// DefaultBatchSize is the number of employees written per round trip.
const DefaultBatchSize = 500

// Service loads employee datasets into storage.
type Service struct {
	repo      Repository
	batchSize int
}

// New creates a seed service.
func New(repo Repository) *Service {
	return &Service{repo: repo, batchSize: DefaultBatchSize}
}

// WithBatchSize configures the write batch size.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// Seed writes emps in batches and returns the indexed employee count.
// With reset, the index, its documents and the location set are dropped first.
func (s *Service) Seed(ctx context.Context, emps []domemp.Employee, reset bool) (int, error) {
	log := logger.FromContext(ctx)

	if reset {
		if err := s.repo.Reset(ctx); err != nil {
			return 0, fmt.Errorf("reset: %w", err)
		}
		log.Info("Dropped existing employee data")
	}

	if err := s.repo.EnsureIndex(ctx); err != nil {
		return 0, fmt.Errorf("ensure index: %w", err)
	}

	for start := 0; start < len(emps); start += s.batchSize {
		end := min(start+s.batchSize, len(emps))
		if err := s.repo.UpsertMany(ctx, emps[start:end]); err != nil {
			return 0, fmt.Errorf("upsert employees %d-%d: %w", start, end-1, err)
		}
		log.Debug("Wrote batch", zap.Int("from", start), zap.Int("to", end-1))
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
