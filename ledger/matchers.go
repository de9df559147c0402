package ledger

import (
	"strings"

	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/naming"
)

// Matcher is one stage of the upsert name-matching cascade.
type Matcher struct {
	// Name identifies the stage in logs.
	Name string

	// Match reports whether a stored name and an incoming name refer to
	// the same character. Both names are non-empty.
	Match func(existing, incoming string) bool
}

// ExactMatcher matches identical names.
var ExactMatcher = Matcher{
	Name: "exact",
	Match: func(existing, incoming string) bool {
		return existing == incoming
	},
}

// ContainsMatcher matches when either name is a substring of the other.
// Comparison is case-sensitive.
var ContainsMatcher = Matcher{
	Name: "contains",
	Match: func(existing, incoming string) bool {
		return strings.Contains(existing, incoming) || strings.Contains(incoming, existing)
	},
}

// BaseNameMatcher matches when the names are equal once any parenthetical
// qualifier is stripped, so "Garb (Tamta)" matches "Garb (Level 3)".
var BaseNameMatcher = Matcher{
	Name: "base-name",
	Match: func(existing, incoming string) bool {
		base := naming.StripQualifier(existing)
		return base != "" && base == naming.StripQualifier(incoming)
	},
}

// DefaultMatchers returns the standard cascade: exact, containment, then
// qualifier-stripped equality.
func DefaultMatchers() []Matcher {
	return []Matcher{ExactMatcher, ContainsMatcher, BaseNameMatcher}
}

// findMatch returns the index of the record chosen by the first matcher stage
// with any hit, or -1. Records without a name never match.
func findMatch(matchers []Matcher, records []core.Document, incoming string) (int, string) {
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name()
	}

	for _, m := range matchers {
		for i, existing := range names {
			if existing == "" {
				continue
			}
			if m.Match(existing, incoming) {
				return i, m.Name
			}
		}
	}
	return -1, ""
}
