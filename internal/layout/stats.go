package layout

import "github.com/dgallion1/docsift/internal/doctree"

// StatsScope says over which span font statistics are computed.
type StatsScope int

const (
	ScopeDocument StatsScope = iota
	ScopePage
)

// FontStats holds glyph-level font size statistics for one scope. Values are
// computed once and never updated while lines of that scope are classified.
type FontStats struct {
	Avg float64
	Max float64
}

// ComputeStats averages every glyph size across the given lines. An empty
// input falls back to the default size so ratios stay at 1.
func ComputeStats(lines []doctree.Line) FontStats {
	var sum, max float64
	n := 0
	for _, l := range lines {
		for _, g := range l.Glyphs {
			size := g.Size
			if size <= 0 {
				size = DefaultFontSize
			}
			sum += size
			if size > max {
				max = size
			}
			n++
		}
	}
	if n == 0 {
		return FontStats{Avg: DefaultFontSize, Max: DefaultFontSize}
	}
	return FontStats{Avg: sum / float64(n), Max: max}
}

// Ratio returns size relative to the average, guarding against a zero average.
func (s FontStats) Ratio(size float64) float64 {
	avg := s.Avg
	if avg <= 0 {
		avg = DefaultFontSize
	}
	return size / avg
}
