package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 0},
		{"one empty", "", "word", 4},
		{"identical", "heisenberg", "heisenberg", 0},
		{"single substitution", "heisenburg", "heisenberg", 1},
		{"classic kitten", "kitten", "sitting", 3},
		{"insertion", "cat", "cats", 1},
		{"deletion", "cats", "cat", 1},
		{"unicode runes", "café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestDistance_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"heisenberg", "heisenburg"},
		{"", "anything"},
		{"kitten", "sitting"},
		{"a", "abcdef"},
	}

	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]),
			"distance(%q, %q) must be symmetric", p[0], p[1])
	}
}

func TestDistance_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "heisenberg", "two words"} {
		assert.Zero(t, Distance(s, s))
	}
}

func TestScore_ExactMatchCaseInsensitive(t *testing.T) {
	result := Score("Heisenberg", "heisenberg")

	assert.True(t, result.ExactMatch)
	assert.Equal(t, 100.00, result.FinalScore)
	assert.Equal(t, 100.00, result.LevenshteinSimilarity)
}

func TestScore_TrimsWhitespace(t *testing.T) {
	result := Score("  Heisenberg ", "heisenberg")

	assert.True(t, result.ExactMatch)
	assert.Equal(t, 100.00, result.FinalScore)
}

func TestScore_EmptyInputs(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		target     string
	}{
		{"empty transcript", "", "anything"},
		{"empty target", "anything", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(tt.transcript, tt.target)

			assert.False(t, result.ExactMatch)
			assert.Zero(t, result.FinalScore)
			assert.Zero(t, result.LevenshteinSimilarity)
		})
	}
}

func TestScore_SingleSubstitution(t *testing.T) {
	// distance 1 over maxLen 10 -> 90.00
	result := Score("Heisenburg", "Heisenberg")

	assert.False(t, result.ExactMatch)
	assert.Equal(t, 90.00, result.FinalScore)
	assert.Equal(t, 90.00, result.LevenshteinSimilarity)
}

func TestScore_SubstringIsNotExactMatch(t *testing.T) {
	result := Score("the word heisenberg", "heisenberg")

	assert.False(t, result.ExactMatch)
	assert.Less(t, result.FinalScore, 100.00)
}

func TestScore_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"Heisenberg", "heisenberg"},
		{"completely different", "heisenberg"},
		{"xyz", "abcdefghij"},
		{"h", "heisenberg"},
		{"  spaced  ", "spaced"},
	}

	for _, p := range pairs {
		result := Score(p[0], p[1])

		assert.GreaterOrEqual(t, result.FinalScore, 0.00)
		assert.LessOrEqual(t, result.FinalScore, 100.00)
		assert.Equal(t, result.LevenshteinSimilarity, result.FinalScore,
			"final score must equal levenshtein similarity for %q vs %q", p[0], p[1])
	}
}
