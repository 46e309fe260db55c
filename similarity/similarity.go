// Package similarity provides a narrow string-similarity capability
// used by keyword matching. The Scorer interface keeps the underlying
// algorithm swappable; the default implementation is a normalized
// Levenshtein ratio.
package similarity

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Scorer measures similarity between two strings as a value in [0,1],
// where 1 means identical.
type Scorer interface {
	Score(a, b string) float64
}

// LevenshteinScorer scores strings by normalized edit distance,
// case-insensitively.
type LevenshteinScorer struct{}

// NewScorer returns the default Levenshtein-based scorer.
func NewScorer() Scorer {
	return LevenshteinScorer{}
}

// Score returns 1 - distance/maxLen for the lowercased inputs.
func (LevenshteinScorer) Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	score := 1 - float64(dist)/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}

// Tokens splits text into lowercase word tokens, dropping punctuation.
func Tokens(text string) []string {
	var tokens []string
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			tokens = append(tokens, sb.String())
			sb.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' {
			sb.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// BestPhraseMatch slides a window of the keyword's word count over the
// tokens and returns the best similarity between the keyword and any
// window. A multi-word keyword is compared against joined windows of
// the same length.
func BestPhraseMatch(s Scorer, keyword string, tokens []string) float64 {
	words := strings.Fields(strings.ToLower(keyword))
	if len(words) == 0 || len(tokens) == 0 {
		return 0
	}
	n := len(words)
	if n > len(tokens) {
		return s.Score(keyword, strings.Join(tokens, " "))
	}
	phrase := strings.Join(words, " ")
	best := 0.0
	for i := 0; i+n <= len(tokens); i++ {
		window := strings.Join(tokens[i:i+n], " ")
		if score := s.Score(phrase, window); score > best {
			best = score
			if best == 1 {
				break
			}
		}
	}
	return best
}
