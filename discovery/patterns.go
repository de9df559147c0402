package discovery

import (
	"strings"

	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/naming"
)

// Prefixes tried in front of base names when probing.
var customPrefixes = []string{"custom-", "my-", "homebrew-"}

// prefixedSeedLimit caps how many seed names get prefixed variants.
const prefixedSeedLimit = 5

// spellings returns the hyphenated, underscored and concatenated filenames
// for a hyphenated base name.
func spellings(base string) []string {
	return []string{
		base + ".json",
		strings.ReplaceAll(base, "-", "_") + ".json",
		strings.ReplaceAll(base, "-", "") + ".json",
	}
}

// Candidates returns the speculative filenames probed for a category:
// three spellings of every seed name, then each custom prefix applied to the
// first five seed names. Duplicates are removed, keeping first occurrence.
func Candidates(category core.Category) []string {
	names := category.CommonNames()
	var out []string
	for _, name := range names {
		out = append(out, spellings(name)...)
	}
	limit := min(prefixedSeedLimit, len(names))
	for _, prefix := range customPrefixes {
		for _, name := range names[:limit] {
			out = append(out, prefix+name+".json")
		}
	}
	return dedupe(out)
}

// NameCandidates returns the filenames probed when resolving a single name:
// the three spellings of its slug followed by the three prefixed forms.
// A name with an empty slug has no candidates.
func NameCandidates(name string) []string {
	slug := naming.Slug(name)
	if slug == "" {
		return nil
	}
	out := spellings(slug)
	for _, prefix := range customPrefixes {
		out = append(out, prefix+slug+".json")
	}
	return dedupe(out)
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
