package doctree

import "strings"

// Glyph is one rendered character with its font metadata and position.
type Glyph struct {
	Text     string
	Size     float64 // Font size in points; 0 means unknown
	FontName string
	X0       float64
	Top      float64 // Distance from the top of the page
	Page     int     // 1-based
}

// Line is a run of glyphs sharing a vertical band on one page, left to right.
type Line struct {
	Glyphs []Glyph
	Text   string
	Top    float64 // Rounded to one decimal
	Page   int
}

// MaxFontSize returns the largest glyph size on the line.
func (l Line) MaxFontSize() float64 {
	var max float64
	for _, g := range l.Glyphs {
		if g.Size > max {
			max = g.Size
		}
	}
	return max
}

// IsBold reports whether any glyph uses a bold face.
func (l Line) IsBold() bool {
	for _, g := range l.Glyphs {
		if IsBoldFont(g.FontName) {
			return true
		}
	}
	return false
}

// IsBoldFont checks a font name for weight markers ("Arial-BoldMT", "Helvetica-Black").
func IsBoldFont(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "bold") ||
		strings.Contains(name, "black") ||
		strings.Contains(name, "heavy")
}

// Kind is the structural role of a line.
type Kind int

const (
	Content Kind = iota
	Heading
)

func (k Kind) String() string {
	if k == Heading {
		return "heading"
	}
	return "content"
}

// Level is a heading level. H3 is the deepest bucket.
type Level int

const (
	LevelNone Level = iota
	H1
	H2
	H3
)

func (l Level) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	default:
		return ""
	}
}

// ClassifiedLine is a line with its kind and, for headings, a level.
type ClassifiedLine struct {
	Text     string
	Kind     Kind
	Level    Level
	Page     int
	FontSize float64
}

// IsHeading reports whether the line was classified as a heading.
func (c ClassifiedLine) IsHeading() bool { return c.Kind == Heading }

// Block is a structural unit from a markup-aware source. Exactly which
// optional fields are set depends on the source format.
type Block struct {
	Header    bool           // Source marked this block as a heading
	HTML      *string        // Raw heading markup, e.g. "<h2>Scope</h2>"
	Hierarchy map[int]string // Section level -> heading text
	Text      *string        // Plain text
	Page      int
}

// Document is what a parser hands to the structure extractor: either a
// glyph stream per page (PDF) or a block sequence (markup formats).
type Document struct {
	Name          string
	MetadataTitle string
	Pages         [][]Glyph // Index i holds page i+1; nil when the page failed to decode
	Blocks        []Block
	PageErrors    []error // Decode failures of individual pages
}

// HasGlyphs reports whether the document came from a glyph source.
func (d *Document) HasGlyphs() bool { return d.Pages != nil }

// Structure is the classified line sequence of one document in document order.
type Structure struct {
	Name  string
	Title string
	Lines []ClassifiedLine
}

// Headings returns only the heading lines.
func (s *Structure) Headings() []ClassifiedLine {
	var out []ClassifiedLine
	for _, l := range s.Lines {
		if l.IsHeading() {
			out = append(out, l)
		}
	}
	return out
}

// Section is a heading plus the body text that follows it.
type Section struct {
	Document string
	Title    string
	Body     string
	Page     int
	Index    int // Encounter order across the whole collection
	Score    float64
}
