package health

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/peoplefinder/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the document store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentDatabase = "database"
	ComponentCache    = "cache"
	ComponentModel    = "model"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db    Pinger
	cache Pinger
	model ModelChecker
}

// New creates a Service. cache and model can be nil.
func New(db, cache Pinger, model ModelChecker) *Service {
	return &Service{db: db, cache: cache, model: model}
}

// Check runs all component checks concurrently. A failing check never
// cancels the others.
func (s *Service) Check(ctx context.Context) Report {
	type check struct {
		name string
		run  func(context.Context) error
	}
	checks := []check{{ComponentDatabase, s.db.Ping}}
	if s.cache != nil {
		checks = append(checks, check{ComponentCache, s.cache.Ping})
	}
	if s.model != nil {
		checks = append(checks, check{ComponentModel, s.model.HealthCheck})
	}

	log := logger.FromContext(ctx)
	results := make([]CheckResult, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			results[i] = CheckOK
			if err := c.run(ctx); err != nil {
				log.Warn("Health check failed", zap.String("component", c.name), zap.Error(err))
				results[i] = CheckError
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]CheckResult, len(checks))
	for i, c := range checks {
		out[c.name] = results[i]
	}
	return Report{Status: aggregate(out), Checks: out}
}

func aggregate(checks map[string]CheckResult) Status {
	if checks[ComponentDatabase] == CheckError {
		return Unhealthy
	}
	for _, v := range checks {
		if v == CheckError {
			return Degraded
		}
	}
	return Healthy
}
