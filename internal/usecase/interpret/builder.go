package interpret

import (
	"strings"

	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/normalize"
)

// Builder converts a working filter into the structured filter executed by storage.
type Builder struct {
	locations *LocationResolver
}

// NewBuilder creates a builder. A nil resolver uses the default floor.
func NewBuilder(locations *LocationResolver) *Builder {
	if locations == nil {
		locations = NewLocationResolver(DefaultLocationFloor, nil)
	}
	return &Builder{locations: locations}
}

// Build translates working into clauses. known is the distinct-location universe.
// The result may be empty.
func (b *Builder) Build(working filter.Model, known []string) filter.Structured {
	var out filter.Structured

	if loc := strings.TrimSpace(working.Location); loc != "" {
		p := b.locations.Resolve(loc, known)
		out.Location = &p
	}

	if role := strings.TrimSpace(working.Role); role != "" {
		p := filter.NewContains(role)
		out.Role = &p
	}

	if working.Experience != nil {
		e := *working.Experience
		out.Experience = &e
	}

	if working.Skills != nil {
		out.Skills = buildSkills(*working.Skills)
	}

	return out
}

func buildSkills(s filter.Skills) *filter.SkillSet {
	mode, raw := filter.AnyOf, s.Any
	if len(s.All) > 0 {
		mode, raw = filter.AllOf, s.All
	}

	patterns := make([]filter.Pattern, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		skill, ok := normalize.Skill(r)
		if !ok {
			continue
		}
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		patterns = append(patterns, filter.NewContains(skill))
		if len(patterns) == filter.MaxSkillsPerClause {
			break
		}
	}

	set, err := filter.NewSkillSet(mode, patterns)
	if err != nil {
		// nothing retained
		return nil
	}
	return &set
}
