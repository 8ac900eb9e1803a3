// Package layout turns positioned glyphs into classified lines: line
// assembly, font statistics, heading classification and title resolution.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/dgallion1/docsift/internal/doctree"
)

// DefaultFontSize is assumed for glyphs that carry no size.
const DefaultFontSize = 12.0

// AssembleLines groups the glyphs of one page into lines keyed by their top
// coordinate rounded to one decimal. Lines come back top to bottom, each
// sorted left to right. Lines whose text is blank are dropped.
func AssembleLines(glyphs []doctree.Glyph) []doctree.Line {
	if len(glyphs) == 0 {
		return nil
	}

	groups := make(map[float64][]doctree.Glyph)
	var tops []float64
	for _, g := range glyphs {
		if g.Size <= 0 {
			g.Size = DefaultFontSize
		}
		top := roundTop(g.Top)
		if _, ok := groups[top]; !ok {
			tops = append(tops, top)
		}
		groups[top] = append(groups[top], g)
	}
	sort.Float64s(tops)

	lines := make([]doctree.Line, 0, len(tops))
	for _, top := range tops {
		row := groups[top]
		sort.SliceStable(row, func(i, j int) bool { return row[i].X0 < row[j].X0 })

		var buf strings.Builder
		for _, g := range row {
			buf.WriteString(g.Text)
		}
		text := strings.TrimSpace(buf.String())
		if text == "" {
			continue
		}
		lines = append(lines, doctree.Line{
			Glyphs: row,
			Text:   text,
			Top:    top,
			Page:   row[0].Page,
		})
	}
	return lines
}

func roundTop(v float64) float64 {
	return math.Round(v*10) / 10
}
