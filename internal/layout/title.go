package layout

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docsift/internal/doctree"
)

// TitleConfig controls title resolution.
type TitleConfig struct {
	MinMetadataChars int     // Metadata titles must be longer than this (default 3)
	LeadingLines     int     // How many leading lines may supply a heading title (default 3)
	LargeFontRatio   float64 // Share of the first page's max size that counts as title text (default 0.9)
	MinChars         int
	MaxChars         int
}

// DefaultTitleConfig returns the standard resolution settings.
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		MinMetadataChars: 3,
		LeadingLines:     3,
		LargeFontRatio:   0.9,
		MinChars:         3,
		MaxChars:         200,
	}
}

// TitleResolver picks a document title from the first source that yields one:
// metadata, a leading heading line, then the largest text on page one.
type TitleResolver struct {
	config TitleConfig
}

// NewTitleResolver creates a resolver with default settings.
func NewTitleResolver() *TitleResolver {
	return &TitleResolver{config: DefaultTitleConfig()}
}

// Resolve returns the title, or "" when no source qualifies.
func (r *TitleResolver) Resolve(metadata string, lines []doctree.ClassifiedLine, firstPage []doctree.Glyph) string {
	if t := strings.TrimSpace(metadata); utf8.RuneCountInString(t) > r.config.MinMetadataChars {
		return t
	}

	for i, l := range lines {
		if i >= r.config.LeadingLines {
			break
		}
		if !l.IsHeading() {
			continue
		}
		t := strings.TrimSpace(l.Text)
		n := utf8.RuneCountInString(t)
		if n > r.config.MinChars && n < r.config.MaxChars {
			return t
		}
	}

	if t := r.largestText(firstPage); t != "" {
		return t
	}
	return ""
}

// largestText concatenates the first-page glyphs set in (near) the largest
// size, in reading order, with whitespace collapsed.
func (r *TitleResolver) largestText(glyphs []doctree.Glyph) string {
	var max float64
	for _, g := range glyphs {
		if sizeOf(g) > max {
			max = sizeOf(g)
		}
	}
	if max == 0 {
		return ""
	}

	var large []doctree.Glyph
	for _, g := range glyphs {
		if sizeOf(g) >= max*r.config.LargeFontRatio {
			large = append(large, g)
		}
	}
	sort.SliceStable(large, func(i, j int) bool {
		ti, tj := roundTop(large[i].Top), roundTop(large[j].Top)
		if ti != tj {
			return ti < tj
		}
		return large[i].X0 < large[j].X0
	})

	var buf strings.Builder
	for i, g := range large {
		if i > 0 && roundTop(g.Top) != roundTop(large[i-1].Top) {
			buf.WriteByte(' ')
		}
		buf.WriteString(g.Text)
	}
	title := strings.Join(strings.Fields(buf.String()), " ")
	n := utf8.RuneCountInString(title)
	if n < r.config.MinChars || n > r.config.MaxChars {
		return ""
	}
	return title
}

func sizeOf(g doctree.Glyph) float64 {
	if g.Size <= 0 {
		return DefaultFontSize
	}
	return g.Size
}
