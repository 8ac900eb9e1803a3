package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docsift/internal/doctree"
	"github.com/dgallion1/docsift/internal/layout"
)

func TestHTMLParser_Blocks(t *testing.T) {
	input := `<html><head><title>Field Guide</title><style>p{}</style></head>
<body>
<nav><p>Home | About</p></nav>
<h1>Field Guide</h1>
<p>An <em>introductory</em> paragraph.</p>
<h2 id="scope">Scope &amp; Goals</h2>
<ul><li>first item</li><li>second item</li></ul>
<h5>Fine Print</h5>
<script>var x = 1;</script>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.MetadataTitle != "Field Guide" {
		t.Errorf("expected metadata title %q, got %q", "Field Guide", doc.MetadataTitle)
	}

	lines := layout.ClassifyBlocks(doc.Blocks)
	want := []struct {
		text  string
		level doctree.Level
	}{
		{"Field Guide", doctree.H1},
		{"An introductory paragraph.", doctree.LevelNone},
		{"Scope & Goals", doctree.H2},
		{"first item", doctree.LevelNone},
		{"second item", doctree.LevelNone},
		{"Fine Print", doctree.H3},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %+v", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i].Text != w.text || lines[i].Level != w.level {
			t.Errorf("line[%d]: expected %q %v, got %q %v", i, w.text, w.level, lines[i].Text, lines[i].Level)
		}
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"a.pdf", false},
		{"a.PDF", false},
		{"b.md", false},
		{"c.htm", false},
		{"d.docx", false},
		{"e.txt", false},
		{"f.csv", true},
		{"noext", true},
	}
	for _, tc := range tests {
		_, err := ForFile(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tc.name, tc.wantErr, err)
		}
		if !tc.wantErr && !IsSupportedExtension(tc.name) {
			t.Errorf("%s: expected supported extension", tc.name)
		}
	}
}

func TestPDFParser_Garbage(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.Parse(strings.NewReader("not a pdf at all"), "broken.pdf"); err == nil {
		t.Error("expected error for non-PDF bytes")
	}
}
