// internal/textutil/similarity.go
package textutil

import "strings"

// MaxComparableLength caps the full dynamic-programming comparison. Strings
// longer than this fall back to a length-difference heuristic so that
// scanning long sentences stays bounded.
const MaxComparableLength = 50

// Distance returns a bounded-cost edit distance between a and b,
// case-insensitive. Two short circuits trade precision for cost: when the
// length ratio is below 0.5 the longer length is returned outright, and
// above MaxComparableLength only the length difference is compared.
func Distance(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 0
	}

	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	shorter, longer := la, lb
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if float64(shorter)/float64(longer) < 0.5 {
		return longer
	}
	if longer > MaxComparableLength {
		return longer - shorter
	}

	return levenshtein(a, b)
}

// Similarity returns 1 - distance/max(len(a), len(b)) in [0, 1].
// Identical strings, including two empty strings, score 1.
func Similarity(a, b string) float64 {
	la, lb := len(a), len(b)
	longer := la
	if lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longer)
}

// levenshtein is the standard two-row dynamic programming edit distance.
// Inputs are already lowercased and length-bounded by Distance.
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
