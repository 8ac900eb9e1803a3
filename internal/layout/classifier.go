package layout

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docsift/internal/doctree"
)

// Classifier decides whether a line is a heading and at which level.
// Implementations are pure: the same line and stats always give the same result.
type Classifier interface {
	// Scope is the span the caller must compute FontStats over.
	Scope() StatsScope
	Classify(line doctree.Line, stats FontStats) doctree.ClassifiedLine
}

// Strategy names accepted by ClassifierFor.
const (
	StrategyScored = "scored"
	StrategyRatio  = "ratio"
)

// ClassifierFor returns the named strategy.
func ClassifierFor(name string) (Classifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StrategyScored:
		return NewScoredClassifier(), nil
	case StrategyRatio:
		return NewRatioClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier strategy: %q", name)
	}
}

func contentLine(line doctree.Line) doctree.ClassifiedLine {
	return doctree.ClassifiedLine{
		Text:     line.Text,
		Kind:     doctree.Content,
		Page:     line.Page,
		FontSize: line.MaxFontSize(),
	}
}

func headingLine(line doctree.Line, level doctree.Level) doctree.ClassifiedLine {
	c := contentLine(line)
	c.Kind = doctree.Heading
	c.Level = level
	return c
}
