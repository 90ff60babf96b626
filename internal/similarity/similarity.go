// Package similarity scores how closely a transcript matches an expected
// target word. Comparison is whole-string against whole-string: the target
// is a single expected word and transcripts are short, so token-level
// matching would add nothing.
package similarity

import (
	"math"
	"strings"
)

// Result holds the outcome of a similarity computation. FinalScore currently
// equals LevenshteinSimilarity; the separate field keeps the response shape
// stable if more signals get blended in later.
type Result struct {
	FinalScore            float64 `json:"final_score"`
	ExactMatch            bool    `json:"exact_match"`
	LevenshteinSimilarity float64 `json:"levenshtein_similarity"`
}

// Distance computes the Levenshtein edit distance between a and b: the
// minimum number of single-rune insertions, deletions and substitutions
// needed to turn one into the other. Symmetric in its arguments.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	matrix := make([][]int, len(rb)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(ra)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(ra); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = 1 + min(
				matrix[i-1][j-1], // substitution
				matrix[i][j-1],   // insertion
				matrix[i-1][j],   // deletion
			)
		}
	}

	return matrix[len(rb)][len(ra)]
}

// Score compares a transcript against the target word and returns a
// normalized 0-100 similarity. Both strings are trimmed and lower-cased
// first. An empty transcript or target yields the zero Result; that is a
// legitimate outcome, not an error.
//
// Scores are rounded to 2 decimal places, half away from zero.
func Score(transcript, target string) Result {
	if transcript == "" || target == "" {
		return Result{}
	}

	normT := strings.ToLower(strings.TrimSpace(transcript))
	normG := strings.ToLower(strings.TrimSpace(target))

	exact := normT == normG

	maxLen := len([]rune(normT))
	if l := len([]rune(normG)); l > maxLen {
		maxLen = l
	}

	var levScore float64
	if maxLen > 0 {
		dist := Distance(normT, normG)
		levScore = (1 - float64(dist)/float64(maxLen)) * 100
	}

	return Result{
		FinalScore:            round2(levScore),
		ExactMatch:            exact,
		LevenshteinSimilarity: round2(levScore),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
