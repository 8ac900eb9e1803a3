// Package chunker groups classified lines into heading-led sections and
// trims section bodies into short excerpts.
package chunker

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/dgallion1/docsift/internal/doctree"
)

// Config controls grouping and refinement.
type Config struct {
	MinSectionChars int // Bodies shorter than this (after trimming) are dropped.
	MaxSentences    int // Sentences kept in a refined excerpt.
	KeepWholeUpTo   int // Bodies with this many sentences or fewer are kept whole.
	MaxRefinedChars int // Excerpts longer than this are cut and marked with Ellipsis.
}

// Ellipsis marks a truncated excerpt.
const Ellipsis = "..."

// DefaultConfig returns the standard grouping and refinement settings.
func DefaultConfig() Config {
	return Config{
		MinSectionChars: 50,
		MaxSentences:    5,
		KeepWholeUpTo:   3,
		MaxRefinedChars: 500,
	}
}

// GroupSections walks s in document order. Every heading opens a section and
// following content lines are space-joined into its body. Lines before the
// first heading belong to no section. Index numbering starts at start and
// counts only surviving sections.
func GroupSections(s *doctree.Structure, start int, cfg Config) []doctree.Section {
	if cfg.MinSectionChars <= 0 {
		cfg.MinSectionChars = 50
	}

	var out []doctree.Section
	var heading *doctree.ClassifiedLine
	var body []string
	index := start

	flush := func() {
		if heading == nil {
			return
		}
		text := strings.TrimSpace(strings.Join(body, " "))
		if utf8.RuneCountInString(text) >= cfg.MinSectionChars {
			out = append(out, doctree.Section{
				Document: s.Name,
				Title:    strings.TrimSpace(heading.Text),
				Body:     text,
				Page:     heading.Page,
				Index:    index,
			})
			index++
		}
	}

	for i := range s.Lines {
		line := &s.Lines[i]
		if line.IsHeading() {
			flush()
			heading = line
			body = body[:0]
			continue
		}
		if heading != nil {
			body = append(body, strings.TrimSpace(line.Text))
		}
	}
	flush()
	return out
}

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerErr  error
)

// SplitSentences splits text with the English punkt model. The model is
// loaded on first use.
func SplitSentences(text string) ([]string, error) {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerErr = english.NewSentenceTokenizer(nil)
	})
	if tokenizerErr != nil {
		return nil, fmt.Errorf("load sentence model: %w", tokenizerErr)
	}

	var out []string
	for _, s := range tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// Refine builds the excerpt shown for a top section: the first MaxSentences
// sentences when the body has more than KeepWholeUpTo, else the whole body,
// cut to MaxRefinedChars characters plus Ellipsis.
func Refine(body string, cfg Config) (string, error) {
	if cfg.MaxSentences <= 0 {
		cfg.MaxSentences = 5
	}
	if cfg.MaxRefinedChars <= 0 {
		cfg.MaxRefinedChars = 500
	}

	sents, err := SplitSentences(body)
	if err != nil {
		return "", err
	}

	excerpt := body
	if len(sents) > cfg.KeepWholeUpTo {
		n := min(cfg.MaxSentences, len(sents))
		excerpt = strings.Join(sents[:n], " ")
	}
	return Truncate(excerpt, cfg.MaxRefinedChars), nil
}

// Truncate cuts s to max characters and appends Ellipsis when it was longer.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + Ellipsis
}
