package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docsift/internal/doctree"
)

// MarkdownParser handles Markdown files using goldmark. Headings are rendered
// to HTML so their level travels as markup, like HTML sources.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &doctree.Document{Name: filename}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *ast.Heading:
			var buf bytes.Buffer
			if err := md.Renderer().Render(&buf, src, n); err != nil {
				return nil, fmt.Errorf("render heading: %w", err)
			}
			markup := strings.TrimSpace(buf.String())
			doc.Blocks = append(doc.Blocks, doctree.Block{Header: true, HTML: &markup, Page: 1})
		case *ast.ThematicBreak:
			continue
		default:
			if t := extractText(n, src); t != "" {
				doc.Blocks = append(doc.Blocks, textBlock(t, 1))
			}
		}
	}
	return doc, nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// (code, raw HTML) contribute their source lines; everything else recurses.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	switch node := n.(type) {
	case *ast.Text:
		buf.Write(node.Segment.Value(src))
		if node.HardLineBreak() || node.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		return buf.String()
	case *ast.String:
		return string(node.Value)
	}

	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		part := extractText(c, src)
		if c.Type() == ast.TypeBlock {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
		}
		buf.WriteString(part)
	}
	if n.Type() == ast.TypeBlock {
		return strings.TrimSpace(buf.String())
	}
	return buf.String()
}
