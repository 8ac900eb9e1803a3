package layout

import (
	"testing"

	"github.com/dgallion1/docsift/internal/doctree"
)

// glyphRun splits text into one glyph per character, advancing x by width.
func glyphRun(text string, x, top, size float64, font string, page int) []doctree.Glyph {
	var out []doctree.Glyph
	for _, r := range text {
		out = append(out, doctree.Glyph{
			Text:     string(r),
			Size:     size,
			FontName: font,
			X0:       x,
			Top:      top,
			Page:     page,
		})
		x += size * 0.5
	}
	return out
}

func TestAssembleLines_GroupsByRoundedTop(t *testing.T) {
	glyphs := []doctree.Glyph{
		{Text: "c", X0: 30, Top: 100.04, Size: 12, Page: 1},
		{Text: "a", X0: 10, Top: 99.96, Size: 12, Page: 1},
		{Text: "b", X0: 20, Top: 100.01, Size: 12, Page: 1},
	}
	lines := AssembleLines(glyphs)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "abc" {
		t.Errorf("expected text %q, got %q", "abc", lines[0].Text)
	}
	if lines[0].Top != 100.0 {
		t.Errorf("expected top 100.0, got %v", lines[0].Top)
	}
}

func TestAssembleLines_TopToBottomOrder(t *testing.T) {
	var glyphs []doctree.Glyph
	glyphs = append(glyphs, glyphRun("second", 10, 200, 12, "Times", 1)...)
	glyphs = append(glyphs, glyphRun("first", 10, 100, 12, "Times", 1)...)
	glyphs = append(glyphs, glyphRun("third", 10, 300, 12, "Times", 1)...)

	lines := AssembleLines(glyphs)
	want := []string{"first", "second", "third"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, lines[i].Text)
		}
		if lines[i].Page != 1 {
			t.Errorf("line[%d]: expected page 1, got %d", i, lines[i].Page)
		}
	}
}

func TestAssembleLines_DropsBlankLines(t *testing.T) {
	glyphs := []doctree.Glyph{
		{Text: " ", X0: 10, Top: 50, Size: 12},
		{Text: "  ", X0: 20, Top: 50, Size: 12},
		{Text: "x", X0: 10, Top: 70, Size: 12},
	}
	lines := AssembleLines(glyphs)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "x" {
		t.Errorf("expected %q, got %q", "x", lines[0].Text)
	}
}

func TestAssembleLines_EmptyPage(t *testing.T) {
	if lines := AssembleLines(nil); len(lines) != 0 {
		t.Errorf("expected 0 lines for empty page, got %d", len(lines))
	}
}

func TestAssembleLines_MissingSizeDefaults(t *testing.T) {
	lines := AssembleLines([]doctree.Glyph{{Text: "a", Top: 10}, {Text: "b", X0: 5, Top: 10}})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if got := lines[0].MaxFontSize(); got != DefaultFontSize {
		t.Errorf("expected default size %v, got %v", DefaultFontSize, got)
	}
}

func TestComputeStats(t *testing.T) {
	lines := AssembleLines(append(
		glyphRun("ab", 0, 10, 10, "", 1),
		glyphRun("cd", 0, 20, 20, "", 1)...,
	))
	stats := ComputeStats(lines)
	if stats.Avg != 15 {
		t.Errorf("expected avg 15, got %v", stats.Avg)
	}
	if stats.Max != 20 {
		t.Errorf("expected max 20, got %v", stats.Max)
	}

	empty := ComputeStats(nil)
	if empty.Avg != DefaultFontSize || empty.Max != DefaultFontSize {
		t.Errorf("expected default stats for empty input, got %+v", empty)
	}
}
