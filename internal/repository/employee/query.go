package employee

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/peoplefinder/internal/db"
	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
)

// buildQuery translates a structured filter into an FT.SEARCH query (DIALECT 2).
//
//	anchored pattern  -> @field:{value}
//	contains pattern  -> @field:{*value*}
//	skills any        -> @skills:{*a* | *b*}
//	skills all        -> @skills:{*a*} @skills:{*b*}
//	experience        -> @experience:[lo hi]
func buildQuery(f filter.Structured) string {
	if f.IsEmpty() {
		return db.MatchAll
	}

	var parts []string
	if f.Role != nil {
		parts = append(parts, tagClause(domemp.FieldRole, tagTerm(*f.Role)))
	}
	if f.Location != nil {
		parts = append(parts, tagClause(domemp.FieldLocation, tagTerm(*f.Location)))
	}
	if f.Experience != nil {
		parts = append(parts, experienceClause(*f.Experience))
	}
	if f.Skills != nil {
		parts = append(parts, skillsClause(*f.Skills)...)
	}
	return strings.Join(parts, " ")
}

func tagClause(field string, terms ...string) string {
	return fmt.Sprintf("@%s:{%s}", field, strings.Join(terms, " | "))
}

func tagTerm(p filter.Pattern) string {
	escaped := tagEscaper.Replace(p.Value())
	if p.Kind() == filter.Anchored {
		return escaped
	}
	return "*" + escaped + "*"
}

func skillsClause(s filter.SkillSet) []string {
	patterns := s.Patterns()
	if s.Mode() == filter.AllOf {
		out := make([]string, len(patterns))
		for i, p := range patterns {
			out[i] = tagClause(domemp.FieldSkills, tagTerm(p))
		}
		return out
	}
	terms := make([]string, len(patterns))
	for i, p := range patterns {
		terms[i] = tagTerm(p)
	}
	return []string{tagClause(domemp.FieldSkills, terms...)}
}

func experienceClause(e filter.Experience) string {
	if v, ok := e.Exact(); ok {
		return fmt.Sprintf("@%s:[%d %d]", domemp.FieldExperience, v, v)
	}

	minBound := "-inf"
	maxBound := "+inf"

	if e.GT() != nil {
		minBound = fmt.Sprintf("(%d", *e.GT())
	} else if e.GTE() != nil {
		minBound = fmt.Sprintf("%d", *e.GTE())
	}

	if e.LT() != nil {
		maxBound = fmt.Sprintf("(%d", *e.LT())
	} else if e.LTE() != nil {
		maxBound = fmt.Sprintf("%d", *e.LTE())
	}

	return fmt.Sprintf("@%s:[%s %s]", domemp.FieldExperience, minBound, maxBound)
}

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	"?", "\\?",
	" ", "\\ ",
)
