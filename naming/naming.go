package naming

import (
	"strings"
	"unicode"
)

// Slug normalises a display name into a lowercase, hyphenated key.
// Whitespace runs become a single hyphen, then every rune outside
// [a-z0-9-] is dropped. "Magic Missile" becomes "magic-missile".
func Slug(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	inSpace := false
	for _, r := range lower {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if isAlnum(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Compact normalises a display name to lowercase letters and digits only.
// "Magic Missile" and "magic-missile" both become "magicmissile".
func Compact(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SlugEqual reports whether a and b have the same Slug.
func SlugEqual(a, b string) bool {
	return Slug(a) == Slug(b)
}

// CompactEqual reports whether a and b have the same Compact form.
func CompactEqual(a, b string) bool {
	return Compact(a) == Compact(b)
}

// StripQualifier removes a trailing parenthetical note, returning everything
// before the first "(" with surrounding whitespace trimmed.
// "Garb (Tamta)" becomes "Garb".
func StripQualifier(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
