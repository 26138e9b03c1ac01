package domain

import "context"

// FilterModel turns a raw query into free-form model text that is expected
// to carry one delimited JSON block.
type FilterModel interface {
	Complete(ctx context.Context, query string) (string, error)
}

// HealthChecker verifies model provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Markers delimiting the JSON object in filter model output.
const (
	ModelBlockStart = "JSON_OUTPUT_START"
	ModelBlockEnd   = "JSON_OUTPUT_END"
)
