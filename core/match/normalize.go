package match

import (
	"regexp"
	"strings"
)

var spaceRE = regexp.MustCompile(`\s+`)

// Normalize canonicalizes a free-text identifier for matching: uppercase,
// trimmed, with internal whitespace runs collapsed to a single space.
// Equality of two normalized strings is the sole matching criterion.
func Normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return spaceRE.ReplaceAllString(s, " ")
}

// FuzzyEqual reports whether two strings match above the given similarity
// threshold after normalization. Similarity counts positionally matching
// characters over the longer length. It is not wired into the matching path;
// matching stays strictly exact.
func FuzzyEqual(a, b string, threshold float64) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	if len(na) == 0 || len(nb) == 0 {
		return false
	}
	n := len(na)
	if len(nb) < n {
		n = len(nb)
	}
	matches := 0
	for i := 0; i < n; i++ {
		if na[i] == nb[i] {
			matches++
		}
	}
	maxLen := len(na)
	if len(nb) > maxLen {
		maxLen = len(nb)
	}
	return float64(matches)/float64(maxLen) >= threshold
}
