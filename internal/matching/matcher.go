// Package matching resolves names extracted from transcripts against a group
// roster using fuzzy string similarity.
//
// Transcripts spell names however the recorder heard them: "Jon" for "John",
// "Smith, John" for "John Smith", stray honorifics. The matcher scores every
// roster candidate with a token-sort edit-distance ratio and picks the best
// one, leaving anything below the confidence threshold flagged for manual
// review rather than guessing.
package matching

import "sort"

// DefaultThreshold is the minimum score treated as a confident match.
const DefaultThreshold = 80

// Candidate is one roster entry eligible for matching.
type Candidate struct {
	ID   int64
	Name string
}

// Suggestion pairs a candidate with its similarity score.
type Suggestion struct {
	Candidate Candidate
	Score     int
}

// Matcher scores extracted names against a roster. It is stateless and safe
// for concurrent use.
type Matcher struct {
	threshold int
}

// New returns a Matcher with the given confidence threshold (0-100). Values
// outside that range fall back to DefaultThreshold.
func New(threshold int) *Matcher {
	if threshold < 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the configured confidence threshold.
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Confident reports whether score clears the threshold.
func (m *Matcher) Confident(score int) bool {
	return score >= m.threshold
}

// Match returns the best-scoring roster candidate for name together with its
// score. Ties keep the earliest roster entry. An empty name or roster yields
// (nil, 0) without scoring anything.
func (m *Matcher) Match(name string, roster []Candidate) (*Candidate, int) {
	if name == "" || len(roster) == 0 {
		return nil, 0
	}

	var best *Candidate
	bestScore := -1
	for i := range roster {
		score := tokenSortRatio(name, roster[i].Name)
		if score > bestScore {
			best = &roster[i]
			bestScore = score
		}
	}
	if bestScore <= 0 {
		return nil, 0
	}
	return best, bestScore
}

// Suggestions returns up to n candidates ordered by descending score,
// omitting zero scores. Review tooling uses this to offer alternatives when
// a match fell below the threshold.
func (m *Matcher) Suggestions(name string, roster []Candidate, n int) []Suggestion {
	if name == "" || len(roster) == 0 || n <= 0 {
		return nil
	}

	var out []Suggestion
	for _, c := range roster {
		if score := tokenSortRatio(name, c.Name); score > 0 {
			out = append(out, Suggestion{Candidate: c, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
