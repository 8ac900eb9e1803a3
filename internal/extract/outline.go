package extract

import "github.com/dgallion1/docsift/internal/doctree"

// OutlineEntry is one heading in an outline.
type OutlineEntry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the outline-mode result for one document.
type Outline struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// NewOutline lists the headings of s in document order.
func NewOutline(s *doctree.Structure) Outline {
	out := EmptyOutline()
	if s == nil {
		return out
	}
	out.Title = s.Title
	for _, h := range s.Headings() {
		out.Outline = append(out.Outline, OutlineEntry{
			Level: h.Level.String(),
			Text:  h.Text,
			Page:  h.Page,
		})
	}
	return out
}

// EmptyOutline is the fallback written when a document cannot be processed.
// Outline is non-nil so it serializes as [].
func EmptyOutline() Outline {
	return Outline{Title: "", Outline: []OutlineEntry{}}
}
