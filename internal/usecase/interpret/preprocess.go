// Package interpret turns a raw search query into a structured employee filter.
package interpret

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/normalize"
)

var (
	experienceQuery = regexp.MustCompile(`^(\d+)\s*(years|yrs|year)?$`)
	skillQuery      = regexp.MustCompile(`^[a-zA-Z+.#-]+$`)
	roleQuery       = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// Preprocess classifies a query without calling the model. First match wins:
// wildcard, "<N> years", single skill-like token, letters-only role phrase.
// Anything else yields an empty filter. It never fails.
func Preprocess(query string) filter.Preprocessed {
	q := strings.ToLower(strings.TrimSpace(query))

	if q == normalize.Wildcard {
		return filter.Preprocessed{}
	}

	if m := experienceQuery.FindStringSubmatch(q); m != nil {
		years, err := strconv.Atoi(m[1])
		if err == nil {
			return filter.Preprocessed{Experience: &years}
		}
		return filter.Preprocessed{} // overflows int
	}

	if skillQuery.MatchString(q) {
		skill, ok := normalize.Skill(q)
		if !ok {
			return filter.Preprocessed{}
		}
		return filter.Preprocessed{Skills: []string{skill}}
	}

	if roleQuery.MatchString(q) {
		return filter.Preprocessed{Role: normalize.Role(q)}
	}
	return filter.Preprocessed{}
}
