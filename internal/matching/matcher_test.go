package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster(names ...string) []Candidate {
	out := make([]Candidate, len(names))
	for i, name := range names {
		out[i] = Candidate{ID: int64(i + 1), Name: name}
	}
	return out
}

func TestMatchExactNameScores100(t *testing.T) {
	m := New(DefaultThreshold)
	best, score := m.Match("John Smith", roster("John Smith", "Jane Doe"))
	require.NotNil(t, best)
	assert.Equal(t, int64(1), best.ID)
	assert.Equal(t, 100, score)
	assert.True(t, m.Confident(score))
}

func TestMatchIgnoresWordOrderAndPunctuation(t *testing.T) {
	m := New(DefaultThreshold)
	best, score := m.Match("Smith, John", roster("Jane Doe", "John Smith"))
	require.NotNil(t, best)
	assert.Equal(t, "John Smith", best.Name)
	assert.Equal(t, 100, score)
}

func TestMatchTypoClearsThreshold(t *testing.T) {
	m := New(DefaultThreshold)
	best, score := m.Match("Jon Smith", roster("John Smith", "Jane Doe"))
	require.NotNil(t, best)
	assert.Equal(t, "John Smith", best.Name)
	assert.GreaterOrEqual(t, score, DefaultThreshold)
}

func TestMatchUnrelatedNameBelowThreshold(t *testing.T) {
	m := New(DefaultThreshold)
	best, score := m.Match("Zebulon Quartermaine", roster("John Smith", "Jane Doe"))
	if best != nil {
		assert.False(t, m.Confident(score))
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	m := New(DefaultThreshold)

	best, score := m.Match("", roster("John Smith"))
	assert.Nil(t, best)
	assert.Zero(t, score)

	best, score = m.Match("John Smith", nil)
	assert.Nil(t, best)
	assert.Zero(t, score)
}

func TestMatchTieKeepsRosterOrder(t *testing.T) {
	m := New(DefaultThreshold)
	// Two identical roster names: the earlier entry wins.
	best, score := m.Match("John Smith", roster("John Smith", "John Smith"))
	require.NotNil(t, best)
	assert.Equal(t, int64(1), best.ID)
	assert.Equal(t, 100, score)
}

func TestNewRejectsOutOfRangeThreshold(t *testing.T) {
	assert.Equal(t, DefaultThreshold, New(-1).Threshold())
	assert.Equal(t, DefaultThreshold, New(101).Threshold())
	assert.Equal(t, 90, New(90).Threshold())
}

func TestSuggestionsOrderedByScore(t *testing.T) {
	m := New(DefaultThreshold)
	suggestions := m.Suggestions("John Smith", roster("Jane Doe", "John Smith", "Jon Smith"), 2)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "John Smith", suggestions[0].Candidate.Name)
	assert.Equal(t, 100, suggestions[0].Score)
	assert.GreaterOrEqual(t, suggestions[0].Score, suggestions[1].Score)
}

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "john smith", "john smith", 100},
		{"case insensitive", "JOHN SMITH", "john smith", 100},
		{"reordered", "smith john", "john smith", 100},
		{"both empty", "", "", 0},
		{"one empty", "john", "", 0},
		{"punctuation only", "!!!", "john", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenSortRatio(tt.a, tt.b))
		})
	}
}
