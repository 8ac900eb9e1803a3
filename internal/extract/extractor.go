// Package extract turns parsed documents into classified line structures
// and renders outlines.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/docsift/internal/doctree"
	"github.com/dgallion1/docsift/internal/layout"
	"github.com/dgallion1/docsift/internal/parser"
)

// Options tunes an Extractor. The zero value keeps every line and skips
// latency tracking.
type Options struct {
	// MinLineChars drops assembled glyph lines shorter than this many
	// characters before classification.
	MinLineChars int
	Stats        *Stats
	Logger       *slog.Logger
}

// Extractor builds a Structure per document with one classifier strategy.
// It holds no per-document state and is safe for concurrent use.
type Extractor struct {
	classifier   layout.Classifier
	titles       *layout.TitleResolver
	minLineChars int
	stats        *Stats
	log          *slog.Logger
}

// NewExtractor creates an extractor around the given classifier.
func NewExtractor(classifier layout.Classifier, opts Options) *Extractor {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{
		classifier:   classifier,
		titles:       layout.NewTitleResolver(),
		minLineChars: opts.MinLineChars,
		stats:        opts.Stats,
		log:          log,
	}
}

// ExtractFile parses and classifies the file at path. The file is closed
// before returning.
func (e *Extractor) ExtractFile(path string) (*doctree.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return e.ExtractReader(f, filepath.Base(path))
}

// ExtractReader parses r with the parser registered for name's extension.
func (e *Extractor) ExtractReader(r io.Reader, name string) (*doctree.Structure, error) {
	start := time.Now()

	p, err := parser.ForFile(name)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(r, name)
	if err != nil {
		err = fmt.Errorf("parse %s: %w", name, err)
		e.record(name, start, err)
		return nil, err
	}
	s := e.Extract(doc)
	e.record(name, start, nil)
	return s, nil
}

func (e *Extractor) record(name string, start time.Time, err error) {
	if e.stats != nil {
		e.stats.Record(name, time.Since(start), err)
	}
}

// Extract classifies an already parsed document. Failed or empty pages
// contribute no lines.
func (e *Extractor) Extract(doc *doctree.Document) *doctree.Structure {
	for _, perr := range doc.PageErrors {
		e.log.Warn("page skipped", "document", doc.Name, "error", perr)
	}

	s := &doctree.Structure{Name: doc.Name}
	if !doc.HasGlyphs() {
		s.Lines = layout.ClassifyBlocks(doc.Blocks)
		s.Title = e.titles.Resolve(doc.MetadataTitle, s.Lines, nil)
		return s
	}

	pages := make([][]doctree.Line, len(doc.Pages))
	var all []doctree.Line
	for i, glyphs := range doc.Pages {
		if len(glyphs) == 0 {
			continue
		}
		pages[i] = layout.AssembleLines(glyphs)
		all = append(all, pages[i]...)
	}

	// Statistics are fixed for the whole scope before any line is classified.
	docStats := layout.ComputeStats(all)
	for _, lines := range pages {
		stats := docStats
		if e.classifier.Scope() == layout.ScopePage {
			stats = layout.ComputeStats(lines)
		}
		for _, line := range lines {
			if utf8.RuneCountInString(strings.TrimSpace(line.Text)) < e.minLineChars {
				continue
			}
			s.Lines = append(s.Lines, e.classifier.Classify(line, stats))
		}
	}

	var firstPage []doctree.Glyph
	if len(doc.Pages) > 0 {
		firstPage = doc.Pages[0]
	}
	s.Title = e.titles.Resolve(doc.MetadataTitle, s.Lines, firstPage)
	return s
}
