package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docsift/internal/doctree"
)

// RatioConfig holds the thresholds of the single-pass classifier.
type RatioConfig struct {
	HeadingRatio float64 // Line size must exceed avg*HeadingRatio (default 1.1)
	H1MaxRatio   float64 // Size >= page max*H1MaxRatio is H1 (default 0.9)
	H2Ratio      float64 // Size >= avg*H2Ratio is H2 (default 1.3)
	MaxChars     int     // Headings are shorter than this (default 200)
	MaxWords     int     // Headings have at most this many words (default 15)
}

// DefaultRatioConfig returns the standard thresholds.
func DefaultRatioConfig() RatioConfig {
	return RatioConfig{
		HeadingRatio: 1.1,
		H1MaxRatio:   0.9,
		H2Ratio:      1.3,
		MaxChars:     200,
		MaxWords:     15,
	}
}

// RatioClassifier tests size ratios directly against page-level statistics,
// with no score accumulation. A heading is larger than the page average,
// short, and does not end like a sentence.
type RatioClassifier struct {
	config RatioConfig
}

// NewRatioClassifier creates a classifier with default thresholds.
func NewRatioClassifier() *RatioClassifier {
	return &RatioClassifier{config: DefaultRatioConfig()}
}

// NewRatioClassifierWithConfig creates a classifier with custom thresholds.
func NewRatioClassifierWithConfig(config RatioConfig) *RatioClassifier {
	return &RatioClassifier{config: config}
}

func (c *RatioClassifier) Scope() StatsScope { return ScopePage }

func (c *RatioClassifier) Classify(line doctree.Line, stats FontStats) doctree.ClassifiedLine {
	text := strings.TrimSpace(line.Text)
	size := line.MaxFontSize()

	isHeading := size > stats.Avg*c.config.HeadingRatio &&
		utf8.RuneCountInString(text) < c.config.MaxChars &&
		!strings.HasSuffix(text, ".") &&
		len(strings.Fields(text)) <= c.config.MaxWords
	if !isHeading {
		return contentLine(line)
	}

	switch {
	case size >= stats.Max*c.config.H1MaxRatio:
		return headingLine(line, doctree.H1)
	case size >= stats.Avg*c.config.H2Ratio:
		return headingLine(line, doctree.H2)
	default:
		return headingLine(line, doctree.H3)
	}
}
