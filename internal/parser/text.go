package parser

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docsift/internal/doctree"
)

// textHeadingRe matches a numbered heading line such as "2. Scope" or "1.3 Data".
var textHeadingRe = regexp.MustCompile(`^\d+(?:\.\d+)*\.?\s+\S`)

// TextParser handles plain text files. Paragraphs are separated by blank
// lines and form feeds start a new page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &doctree.Document{Name: filename}
	page := 1
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		para := strings.Join(current, "\n")
		if len(current) == 1 && looksLikeHeading(para) {
			t := strings.TrimSpace(para)
			doc.Blocks = append(doc.Blocks, doctree.Block{Header: true, Text: &t, Page: page})
		} else {
			doc.Blocks = append(doc.Blocks, textBlock(para, page))
		}
		current = current[:0]
	}

	for scanner.Scan() {
		line := scanner.Text()
		for strings.Contains(line, "\f") {
			before, after, _ := strings.Cut(line, "\f")
			if strings.TrimSpace(before) != "" {
				current = append(current, before)
			}
			flush()
			page++
			line = after
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// looksLikeHeading accepts short numbered lines and all-caps lines.
func looksLikeHeading(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 3 || len(s) > 120 || strings.HasSuffix(s, ".") {
		return false
	}
	if textHeadingRe.MatchString(s) {
		return true
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
