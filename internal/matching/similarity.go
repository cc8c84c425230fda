package matching

import (
	"sort"
	"strings"
	"unicode"
)

// tokenSortRatio computes a word-order-insensitive similarity score between
// two names on a 0-100 scale. Both inputs are normalized (lowercased,
// punctuation stripped, tokens sorted) before the edit distance is taken, so
// "Smith, John" and "John Smith" score 100.
func tokenSortRatio(s1, s2 string) int {
	s1 = normalizeTokens(s1)
	s2 = normalizeTokens(s2)

	if s1 == s2 {
		if s1 == "" {
			return 0
		}
		return 100
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := max(len(s1), len(s2))

	similarity := 1.0 - float64(distance)/float64(maxLen)
	return int(similarity*100 + 0.5)
}

// normalizeTokens lowercases a name, drops everything but letters, digits,
// and spaces, then sorts the remaining tokens.
func normalizeTokens(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(' ')
		}
	}
	tokens := strings.Fields(b.String())
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	len1, len2 := len(s1), len(s2)
	if len1 == 0 {
		return len2
	}
	if len2 == 0 {
		return len1
	}

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len1][len2]
}
