package filter

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/normalize"
)

// MaxSkillsPerClause is the maximum number of skills in one skills clause.
const MaxSkillsPerClause = 32

// PatternKind selects how a pattern compares against a field value.
type PatternKind int

const (
	// Contains is a case-insensitive substring match.
	Contains PatternKind = iota
	// Anchored is a case-insensitive full-value match.
	Anchored
)

func (k PatternKind) String() string {
	if k == Anchored {
		return "anchored"
	}
	return "contains"
}

// Pattern is a case-insensitive match clause on a string field.
type Pattern struct {
	value string
	kind  PatternKind
}

// NewContains creates a substring pattern on the literal value.
func NewContains(value string) Pattern {
	return Pattern{value: strings.TrimSpace(value), kind: Contains}
}

// NewAnchored creates a full-match pattern on the literal value.
func NewAnchored(value string) Pattern {
	return Pattern{value: value, kind: Anchored}
}

// Value returns the literal (unescaped) value.
func (p Pattern) Value() string { return p.value }

// Kind returns the pattern kind.
func (p Pattern) Kind() PatternKind { return p.kind }

// Expr returns the regular expression equivalent of the pattern.
func (p Pattern) Expr() string {
	quoted := normalize.EscapePattern(p.value)
	if p.kind == Anchored {
		return "(?i)^" + quoted + "$"
	}
	return "(?i).*" + quoted + ".*"
}

// Matches reports whether s satisfies the pattern.
func (p Pattern) Matches(s string) bool {
	if p.kind == Anchored {
		return strings.EqualFold(s, p.value)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(p.value))
}

func (p Pattern) String() string {
	return fmt.Sprintf("/%s/", p.Expr())
}

// Experience is either an exact value or a numeric range on years of experience.
type Experience struct {
	exact *int
	gt    *int
	gte   *int
	lt    *int
	lte   *int
}

// ExactExperience creates an exact-match experience clause.
func ExactExperience(years int) Experience {
	return Experience{exact: &years}
}

// NewExperienceRange validates and creates a range clause.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewExperienceRange(gt, gte, lt, lte *int) (Experience, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Experience{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Experience{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Experience{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Experience{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// IsExact reports whether this is an exact-match clause.
func (e Experience) IsExact() bool { return e.exact != nil }

// Exact returns the exact value and true for exact clauses.
func (e Experience) Exact() (int, bool) {
	if e.exact == nil {
		return 0, false
	}
	return *e.exact, true
}

// GT returns the lower exclusive bound.
func (e Experience) GT() *int { return e.gt }

// GTE returns the lower inclusive bound.
func (e Experience) GTE() *int { return e.gte }

// LT returns the upper exclusive bound.
func (e Experience) LT() *int { return e.lt }

// LTE returns the upper inclusive bound.
func (e Experience) LTE() *int { return e.lte }

// Matches reports whether years satisfies the clause.
func (e Experience) Matches(years int) bool {
	if e.exact != nil {
		return years == *e.exact
	}
	if e.gt != nil && years <= *e.gt {
		return false
	}
	if e.gte != nil && years < *e.gte {
		return false
	}
	if e.lt != nil && years >= *e.lt {
		return false
	}
	if e.lte != nil && years > *e.lte {
		return false
	}
	return true
}

func (e Experience) String() string {
	if e.exact != nil {
		return fmt.Sprintf("=%d", *e.exact)
	}
	var parts []string
	if e.gt != nil {
		parts = append(parts, fmt.Sprintf(">%d", *e.gt))
	}
	if e.gte != nil {
		parts = append(parts, fmt.Sprintf(">=%d", *e.gte))
	}
	if e.lt != nil {
		parts = append(parts, fmt.Sprintf("<%d", *e.lt))
	}
	if e.lte != nil {
		parts = append(parts, fmt.Sprintf("<=%d", *e.lte))
	}
	return strings.Join(parts, ",")
}

// SkillMode selects how a skills clause combines its patterns.
type SkillMode int

const (
	// AnyOf matches when at least one pattern matches some skill.
	AnyOf SkillMode = iota
	// AllOf matches when every pattern matches some skill.
	AllOf
)

func (m SkillMode) String() string {
	if m == AllOf {
		return "all"
	}
	return "any"
}

// SkillSet is a set-membership or conjunction clause over skill patterns.
type SkillSet struct {
	mode     SkillMode
	patterns []Pattern
}

// NewSkillSet validates and creates a skills clause.
func NewSkillSet(mode SkillMode, patterns []Pattern) (SkillSet, error) {
	if len(patterns) == 0 {
		return SkillSet{}, fmt.Errorf("at least one skill pattern is required")
	}
	if len(patterns) > MaxSkillsPerClause {
		return SkillSet{}, fmt.Errorf("too many skills (max %d)", MaxSkillsPerClause)
	}
	return SkillSet{mode: mode, patterns: patterns}, nil
}

// Mode returns the combination mode.
func (s SkillSet) Mode() SkillMode { return s.mode }

// Patterns returns the skill patterns.
func (s SkillSet) Patterns() []Pattern { return s.patterns }

// Matches reports whether the skill list satisfies the clause.
func (s SkillSet) Matches(skills []string) bool {
	matchOne := func(p Pattern) bool {
		for _, sk := range skills {
			if p.Matches(sk) {
				return true
			}
		}
		return false
	}
	if s.mode == AllOf {
		for _, p := range s.patterns {
			if !matchOne(p) {
				return false
			}
		}
		return true
	}
	for _, p := range s.patterns {
		if matchOne(p) {
			return true
		}
	}
	return false
}

// Structured is the final filter handed to storage. Nil clauses are absent.
type Structured struct {
	Role       *Pattern
	Location   *Pattern
	Experience *Experience
	Skills     *SkillSet
}

// IsEmpty reports whether the filter has no clauses (matches everything).
func (f Structured) IsEmpty() bool {
	return f.Role == nil && f.Location == nil && f.Experience == nil && f.Skills == nil
}

// Matches evaluates the filter against an employee in process.
func (f Structured) Matches(e employee.Employee) bool {
	if f.Role != nil && !f.Role.Matches(e.Role()) {
		return false
	}
	if f.Location != nil && !f.Location.Matches(e.Location()) {
		return false
	}
	if f.Experience != nil && !f.Experience.Matches(e.Experience()) {
		return false
	}
	if f.Skills != nil && !f.Skills.Matches(e.Skills()) {
		return false
	}
	return true
}

// String renders the filter for logs.
func (f Structured) String() string {
	if f.IsEmpty() {
		return "{}"
	}
	var parts []string
	if f.Role != nil {
		parts = append(parts, employee.FieldRole+":"+f.Role.String())
	}
	if f.Location != nil {
		parts = append(parts, employee.FieldLocation+":"+f.Location.String())
	}
	if f.Experience != nil {
		parts = append(parts, employee.FieldExperience+":"+f.Experience.String())
	}
	if f.Skills != nil {
		ps := make([]string, len(f.Skills.patterns))
		for i, p := range f.Skills.patterns {
			ps[i] = p.String()
		}
		parts = append(parts, fmt.Sprintf("%s:%s[%s]", employee.FieldSkills, f.Skills.mode, strings.Join(ps, " ")))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
