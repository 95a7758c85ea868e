// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when a name has no usable characters.
const Fallback = "n-a"

const separator = '-'

// Derive lowercases name, folds diacritics and collapses every run of
// non-alphanumeric characters into a single separator.
func Derive(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range norm.NFKD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if isASCIIAlnum(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteRune(separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

// WithSuffix renders the n-th candidate for base. The first attempt is base itself.
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + string(separator) + strconv.Itoa(n)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
