package layout

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docsift/internal/doctree"
)

// ScoredConfig holds the weights of the multi-signal heading classifier.
type ScoredConfig struct {
	LargeRatio   float64 // Font ratio for the strong size signal (default 1.3)
	MediumRatio  float64 // Font ratio for the weak size signal (default 1.1)
	LargeBonus   int
	MediumBonus  int
	BoldBonus    int
	NumberBonus  int
	TitleBonus   int
	CapsBonus    int
	KeywordBonus int
	NoisePenalty int
	Threshold    int // Minimum total score for a heading (default 3)
	MinChars     int
	MaxChars     int

	// Keywords are section names that commonly open a heading.
	Keywords []string
}

// DefaultScoredConfig returns the standard weights.
func DefaultScoredConfig() ScoredConfig {
	return ScoredConfig{
		LargeRatio:   1.3,
		MediumRatio:  1.1,
		LargeBonus:   4,
		MediumBonus:  2,
		BoldBonus:    2,
		NumberBonus:  3,
		TitleBonus:   2,
		CapsBonus:    1,
		KeywordBonus: 1,
		NoisePenalty: -5,
		Threshold:    3,
		MinChars:     3,
		MaxChars:     200,
		Keywords: []string{
			"introduction", "background", "overview", "summary", "abstract",
			"conclusion", "methodology", "methods", "results", "discussion",
			"references", "appendix", "acknowledgements", "related work",
			"evaluation", "table of contents", "revision history",
		},
	}
}

var (
	numberedRe   = regexp.MustCompile(`^\d+[.)]\s+|^\d+(?:\.\d+)+\.?\s+`)
	titleCaseRe  = regexp.MustCompile(`^[A-Z][\p{L}\p{N}'&/-]*(?:\s+[A-Z][\p{L}\p{N}'&/-]*)*:?$`)
	numericRe    = regexp.MustCompile(`^[\d\s.,/-]+$`)
	levelOneRe   = regexp.MustCompile(`^\d+\.\s`)
	levelTwoRe   = regexp.MustCompile(`^\d+\.\d+\s`)
	levelThreeRe = regexp.MustCompile(`^\d+\.\d+\.\d+\s`)
)

// ScoredClassifier accumulates independent heading signals against a fixed
// threshold and assigns a level from size ratio and numbering depth. It uses
// document-wide font statistics.
type ScoredClassifier struct {
	config ScoredConfig
}

// NewScoredClassifier creates a classifier with default weights.
func NewScoredClassifier() *ScoredClassifier {
	return &ScoredClassifier{config: DefaultScoredConfig()}
}

// NewScoredClassifierWithConfig creates a classifier with custom weights.
func NewScoredClassifierWithConfig(config ScoredConfig) *ScoredClassifier {
	return &ScoredClassifier{config: config}
}

func (c *ScoredClassifier) Scope() StatsScope { return ScopeDocument }

func (c *ScoredClassifier) Classify(line doctree.Line, stats FontStats) doctree.ClassifiedLine {
	text := strings.TrimSpace(line.Text)
	n := utf8.RuneCountInString(text)
	if n < c.config.MinChars || n > c.config.MaxChars {
		return contentLine(line)
	}

	ratio := stats.Ratio(line.MaxFontSize())
	if c.Score(text, ratio, line.IsBold()) < c.config.Threshold {
		return contentLine(line)
	}
	return headingLine(line, levelFor(text, ratio))
}

// Score returns the accumulated heading score of a line's text.
func (c *ScoredClassifier) Score(text string, ratio float64, bold bool) int {
	score := 0
	switch {
	case ratio >= c.config.LargeRatio:
		score += c.config.LargeBonus
	case ratio >= c.config.MediumRatio:
		score += c.config.MediumBonus
	}
	if bold {
		score += c.config.BoldBonus
	}
	if numberedRe.MatchString(text) {
		score += c.config.NumberBonus
	}
	if titleCaseRe.MatchString(text) {
		score += c.config.TitleBonus
	}
	if isAllCaps(text) && len(strings.Fields(text)) >= 2 {
		score += c.config.CapsBonus
	}
	lower := strings.ToLower(text)
	for _, kw := range c.config.Keywords {
		if strings.Contains(lower, kw) {
			score += c.config.KeywordBonus
			break
		}
	}
	if numericRe.MatchString(text) || lower == "page" || lower == "continued" {
		score += c.config.NoisePenalty
	}
	return score
}

// levelFor combines a size-based level score with numbering depth.
// Score 3 maps to H1, 2 to H2, anything lower to H3.
func levelFor(text string, ratio float64) doctree.Level {
	score := 1
	switch {
	case ratio >= 1.5:
		score = 3
	case ratio >= 1.2:
		score = 2
	}

	switch {
	case levelThreeRe.MatchString(text):
		score = 1
	case levelTwoRe.MatchString(text):
		if score > 2 {
			score = 2
		}
	case levelOneRe.MatchString(text):
		if score < 3 {
			score = 3
		}
	}

	switch {
	case score >= 3:
		return doctree.H1
	case score == 2:
		return doctree.H2
	default:
		return doctree.H3
	}
}

// isAllCaps reports whether text has letters and none of them are lower case.
func isAllCaps(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				return false
			}
			letters++
		}
	}
	return letters > 0
}
