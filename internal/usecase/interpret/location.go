package interpret

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xrash/smetrics"

	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
)

// DefaultLocationFloor is the minimum Jaro-Winkler score for a fuzzy match.
const DefaultLocationFloor = 0.85

// Jaro-Winkler tuning: boost threshold and common prefix length.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// Resolution steps, used as metric labels.
const (
	StepExact    = "exact"
	StepFuzzy    = "fuzzy"
	StepContains = "contains"
)

// LocationResolver maps a free-text location onto a known location value.
type LocationResolver struct {
	floor float64
	steps *prometheus.CounterVec
}

// NewLocationResolver creates a resolver. A non-positive floor uses DefaultLocationFloor.
// steps is optional and counts resolutions by step.
func NewLocationResolver(floor float64, steps *prometheus.CounterVec) *LocationResolver {
	if floor <= 0 {
		floor = DefaultLocationFloor
	}
	return &LocationResolver{floor: floor, steps: steps}
}

// Resolve returns an anchored pattern on the canonical known value for exact or
// confident fuzzy matches, otherwise a contains pattern on the trimmed candidate.
func (r *LocationResolver) Resolve(candidate string, known []string) filter.Pattern {
	c := strings.TrimSpace(candidate)

	for _, k := range known {
		if strings.EqualFold(c, k) {
			r.count(StepExact)
			return filter.NewAnchored(k)
		}
	}

	lower := strings.ToLower(c)
	best, bestScore := -1, 0.0
	for i, k := range known {
		score := smetrics.JaroWinkler(lower, strings.ToLower(k), jwBoostThreshold, jwPrefixSize)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 && bestScore >= r.floor {
		r.count(StepFuzzy)
		return filter.NewAnchored(known[best])
	}

	r.count(StepContains)
	return filter.NewContains(c)
}

func (r *LocationResolver) count(step string) {
	if r.steps != nil {
		r.steps.WithLabelValues(step).Inc()
	}
}
