// Package search builds restaurant name filters from free-text keywords.
package search

import (
	"regexp"
	"strings"
)

// DefaultLimit caps the number of matches returned to the caller.
const DefaultLimit = 9

// FieldName is the restaurant attribute predicates match against.
const FieldName = "name"

// Predicate is a case-insensitive, unanchored substring match on Field.
// Pattern is already escaped and safe to hand to a regex engine.
type Predicate struct {
	Field   string
	Pattern string

	re *regexp.Regexp
}

// BuildPredicate escapes every pattern metacharacter in raw. Invalid UTF-8
// bytes are dropped first since neither RE2 nor Postgres accepts them. An
// empty keyword yields a predicate that matches everything.
func BuildPredicate(raw string) Predicate {
	pattern := regexp.QuoteMeta(strings.ToValidUTF8(strings.TrimSpace(raw), ""))
	return Predicate{
		Field:   FieldName,
		Pattern: pattern,
		re:      regexp.MustCompile("(?i)" + pattern),
	}
}

// MatchesAll reports whether the predicate places no constraint.
func (p Predicate) MatchesAll() bool {
	return p.Pattern == ""
}

// Matches evaluates the predicate against value.
func (p Predicate) Matches(value string) bool {
	re := p.re
	if re == nil {
		var err error
		if re, err = regexp.Compile("(?i)" + p.Pattern); err != nil {
			return false
		}
	}
	return re.MatchString(value)
}
