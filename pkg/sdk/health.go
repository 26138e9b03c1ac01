package peoplefinder

import (
	"context"
	"errors"
	"time"

	healthuc "github.com/kailas-cloud/peoplefinder/internal/usecase/health"
)

// Component names reported in HealthStatus.Checks.
const (
	ComponentDatabase = healthuc.ComponentDatabase
	ComponentCache    = healthuc.ComponentCache
	ComponentModel    = healthuc.ComponentModel
)

// HealthStatus is the aggregated result of the component checks.
// A failing cache or model degrades search; a failing database breaks it.
type HealthStatus struct {
	Status string          // "ok", "degraded" or "error"
	Checks map[string]bool // component → check passed
}

// Serving reports whether searches can still be answered.
func (h HealthStatus) Serving() bool {
	return h.Status != string(healthuc.Unhealthy)
}

// Health checks the employee store and, when configured, the cache and the
// model provider, concurrently.
func (c *Client) Health(ctx context.Context) (status HealthStatus) {
	start := time.Now()
	defer func() {
		var err error
		if !status.Serving() {
			err = errUnhealthy
		}
		c.obs.observe("health", start, err, "status", status.Status)
	}()

	report := c.healthSvc.Check(ctx)
	checks := make(map[string]bool, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = res == healthuc.CheckOK
	}
	return HealthStatus{Status: string(report.Status), Checks: checks}
}

var errUnhealthy = errors.New("peoplefinder: database unreachable")

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
