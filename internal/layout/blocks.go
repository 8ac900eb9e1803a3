package layout

import (
	"html"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dgallion1/docsift/internal/doctree"
)

var stripPolicy = bluemonday.StrictPolicy()

// BlockText returns the visible text of a block: markup with tags stripped,
// else plain text, else the deepest hierarchy entry.
func BlockText(b doctree.Block) string {
	switch {
	case b.HTML != nil:
		return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(*b.HTML)))
	case b.Text != nil:
		return strings.TrimSpace(*b.Text)
	case len(b.Hierarchy) > 0:
		return strings.TrimSpace(b.Hierarchy[maxKey(b.Hierarchy)])
	}
	return ""
}

// BlockLevel assigns a heading level to a header block. Markup wins over
// section hierarchy, which wins over text patterns. Tags deeper than h3
// collapse into H3.
func BlockLevel(b doctree.Block) doctree.Level {
	if b.HTML != nil {
		markup := strings.ToLower(*b.HTML)
		switch {
		case strings.Contains(markup, "<h1"):
			return doctree.H1
		case strings.Contains(markup, "<h2"):
			return doctree.H2
		case strings.Contains(markup, "<h3"):
			return doctree.H3
		case strings.Contains(markup, "<h4"), strings.Contains(markup, "<h5"), strings.Contains(markup, "<h6"):
			return doctree.H3
		}
	}

	if len(b.Hierarchy) > 0 {
		switch minKey(b.Hierarchy) {
		case 1:
			return doctree.H1
		case 2:
			return doctree.H2
		default:
			return doctree.H3
		}
	}

	text := BlockText(b)
	if text == "" {
		return doctree.H2
	}
	switch {
	case levelOneRe.MatchString(text):
		return doctree.H1
	case levelTwoRe.MatchString(text):
		return doctree.H2
	case levelThreeRe.MatchString(text):
		return doctree.H3
	}
	if isAllCaps(text) || len(strings.Fields(text)) <= 3 {
		return doctree.H1
	}
	return doctree.H2
}

// ClassifyBlocks converts blocks into classified lines. Header blocks with
// two characters of text or fewer are dropped.
func ClassifyBlocks(blocks []doctree.Block) []doctree.ClassifiedLine {
	var out []doctree.ClassifiedLine
	for _, b := range blocks {
		text := BlockText(b)
		if b.Header {
			if len([]rune(text)) <= 2 {
				continue
			}
			out = append(out, doctree.ClassifiedLine{
				Text:  text,
				Kind:  doctree.Heading,
				Level: BlockLevel(b),
				Page:  pageOrFirst(b.Page),
			})
			continue
		}
		if text == "" {
			continue
		}
		out = append(out, doctree.ClassifiedLine{
			Text: text,
			Kind: doctree.Content,
			Page: pageOrFirst(b.Page),
		})
	}
	return out
}

func pageOrFirst(p int) int {
	if p <= 0 {
		return 1
	}
	return p
}

func minKey(m map[int]string) int {
	keys := sortedKeys(m)
	return keys[0]
}

func maxKey(m map[int]string) int {
	keys := sortedKeys(m)
	return keys[len(keys)-1]
}

func sortedKeys(m map[int]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
