// Package similarity compares tag names.
//
// The score is based on Levenshtein edit distance between normalized
// names. Normalization applies Unicode NFC, lower-casing and whitespace
// collapsing, so "Saúde" and "saúde" are identical while "Saúde" and
// "saude" differ by one edit.
package similarity

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize converts a name to the form used for comparison.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// Fold is Normalize with diacritics removed. It is used to explain
// differences between names, it does not affect Score.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	res, _, err := transform.String(t, s)
	if err != nil {
		res = s
	}
	return Normalize(res)
}

// Score returns similarity of two names in percents. Identical normalized
// names get 100, names without anything in common get 0.
// Score(a, b) == Score(b, a) for any a and b.
func Score(a, b string) int {
	ra := []rune(Normalize(a))
	rb := []rune(Normalize(b))
	maxLen := max(len(ra), len(rb))
	if maxLen == 0 {
		return 100
	}
	d := distance(ra, rb)
	return int(math.Round(100 * (1 - float64(d)/float64(maxLen))))
}

// Distance returns Levenshtein distance between normalized names
// counted in runes.
func Distance(a, b string) int {
	return distance([]rune(Normalize(a)), []rune(Normalize(b)))
}

// distance keeps only two rows of the dynamic programming table, the
// shorter string defines the row length.
func distance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
