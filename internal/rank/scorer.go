// Package rank scores sections against a persona profile and selects the
// most relevant ones across a document collection.
package rank

import (
	"unicode/utf8"

	"github.com/dgallion1/docsift/internal/persona"
)

// Weights of the three score components.
const (
	KeywordWeight = 0.5
	ContextWeight = 0.4
	LengthWeight  = 0.1
)

// Scorer computes section relevance. It is a pure function of its inputs.
type Scorer struct {
	// AllowNegativeLength keeps the raw length factor for very long text
	// instead of clamping it at zero.
	AllowNegativeLength bool
}

// Score returns 0.5*keyword + 0.4*context + 0.1*length for text, which is
// the section heading and body joined by a space.
func (s Scorer) Score(text string, p *persona.Profile) float64 {
	return KeywordWeight*KeywordScore(text, p) +
		ContextWeight*p.ContextScore(text) +
		LengthWeight*s.LengthScore(utf8.RuneCountInString(text))
}

// KeywordScore is the share of stemmed section tokens that loosely match a
// profile keyword. Text without tokens scores 0.
func KeywordScore(text string, p *persona.Profile) float64 {
	toks := persona.Stems(text)
	if len(toks) == 0 {
		return 0
	}
	matches := 0
	for _, t := range toks {
		if p.Matches(t) {
			matches++
		}
	}
	return float64(matches) / float64(len(toks))
}

// LengthScore favours text of roughly 100 to 1000 characters. Past 3000
// characters the raw factor turns negative; it is clamped to 0 unless
// AllowNegativeLength is set.
func (s Scorer) LengthScore(n int) float64 {
	chars := float64(n)
	score := min(1, chars/100) * (1 - max(0, chars-1000)/2000)
	if score < 0 && !s.AllowNegativeLength {
		return 0
	}
	return score
}
