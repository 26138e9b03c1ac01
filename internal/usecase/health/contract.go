package health

import "context"

// Pinger checks store availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker checks filter model provider availability.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}
