package peoplefinder

import "github.com/kailas-cloud/peoplefinder/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrModelProviderError = domain.ErrModelProviderError
	ErrModelTimeout       = domain.ErrModelTimeout
	ErrRateLimited        = domain.ErrRateLimited
)
