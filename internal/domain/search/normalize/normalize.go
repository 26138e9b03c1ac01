// Package normalize maps free-text role and skill names to canonical forms.
// All functions are pure and total.
package normalize

import (
	"regexp"
	"strings"
)

// Wildcard is the literal query that matches every employee.
const Wildcard = "all"

var roleSynonyms = map[string]string{
	"software eng":      "software engineer",
	"soft eng":          "software engineer",
	"sw eng":            "software engineer",
	"swe":               "software engineer",
	"dev":               "developer",
	"developer":         "developer",
	"qa":                "qa engineer",
	"quality assurance": "qa engineer",
	"data sci":          "data scientist",
	"data scientist":    "data scientist",
}

var skillSynonyms = map[string]string{
	"python":     "Python",
	"pthon":      "Python",
	"java":       "Java",
	"c++":        "C++",
	"cpp":        "C++",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"node":       "Node.js",
}

// skillDenylist holds generic words that are never skills.
var skillDenylist = map[string]struct{}{
	"all":       {},
	"software":  {},
	"engineer":  {},
	"developer": {},
}

// Role returns the canonical lower-cased role name.
func Role(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if canonical, ok := roleSynonyms[r]; ok {
		return canonical
	}
	return r
}

// Skill returns the canonical skill name. ok is false for generic words
// that must be discarded. Unknown skills keep their original casing.
func Skill(skill string) (string, bool) {
	s := strings.TrimSpace(skill)
	lower := strings.ToLower(s)
	if _, denied := skillDenylist[lower]; denied {
		return "", false
	}
	if lower == "" {
		return "", false
	}
	if canonical, ok := skillSynonyms[lower]; ok {
		return canonical, true
	}
	return s, true
}

// EscapePattern escapes regular-expression metacharacters so s can be
// embedded in a substring pattern.
func EscapePattern(s string) string {
	return regexp.QuoteMeta(s)
}

// IsWildcard reports whether the query asks for every employee.
func IsWildcard(query string) bool {
	return strings.ToLower(strings.TrimSpace(query)) == Wildcard
}
