package parser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/unicode/norm"

	"github.com/dgallion1/docsift/internal/doctree"
)

// defaultPageHeight is US Letter, used when a page has no readable MediaBox.
const defaultPageHeight = 792.0

// PDFParser reads the positioned glyph stream of every page plus the
// metadata title.
type PDFParser struct {
	// SpaceGapRatio is the horizontal gap, as a fraction of font size, above
	// which a space glyph is inserted between two glyphs. Default 0.2.
	SpaceGapRatio float64
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// ledongthuc/pdf needs a ReaderAt+size, so the whole file is buffered.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := openPDF(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	doc := &doctree.Document{
		Name:  filename,
		Pages: make([][]doctree.Glyph, 0),
	}
	doc.MetadataTitle = metadataTitle(data)
	if doc.MetadataTitle == "" {
		doc.MetadataTitle = trailerTitle(reader)
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		glyphs, err := p.pageGlyphs(reader, i)
		if err != nil {
			doc.PageErrors = append(doc.PageErrors, err)
		}
		doc.Pages = append(doc.Pages, glyphs)
	}
	return doc, nil
}

// openPDF guards against decoder panics on damaged cross-reference tables.
func openPDF(data []byte) (reader *pdflib.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf decoder panic: %v", rec)
		}
	}()
	return pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
}

// pageGlyphs decodes one page. A malformed page yields no glyphs and an
// error; it never aborts the document.
func (p *PDFParser) pageGlyphs(reader *pdflib.Reader, pageNum int) (glyphs []doctree.Glyph, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			glyphs = nil
			err = fmt.Errorf("page %d: pdf decoder panic: %v", pageNum, rec)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}
	height := pageHeight(page)

	ratio := p.SpaceGapRatio
	if ratio <= 0 {
		ratio = 0.2
	}

	var prev *pdflib.Text
	for _, t := range page.Content().Text {
		t := t
		if prev != nil && needsSpace(*prev, t, ratio) {
			glyphs = append(glyphs, doctree.Glyph{
				Text:     " ",
				Size:     t.FontSize,
				FontName: t.Font,
				X0:       prev.X + prev.W,
				Top:      height - t.Y,
				Page:     pageNum,
			})
		}
		glyphs = append(glyphs, doctree.Glyph{
			Text:     norm.NFKC.String(t.S),
			Size:     t.FontSize,
			FontName: t.Font,
			X0:       t.X,
			Top:      height - t.Y,
			Page:     pageNum,
		})
		prev = &t
	}
	return glyphs, nil
}

// needsSpace reports a word gap between consecutive glyphs on one baseline.
func needsSpace(prev, cur pdflib.Text, ratio float64) bool {
	if isBlank(prev.S) || isBlank(cur.S) {
		return false
	}
	size := cur.FontSize
	if size <= 0 {
		size = 12
	}
	if math.Abs(prev.Y-cur.Y) > size*0.5 {
		return false
	}
	gap := cur.X - (prev.X + prev.W)
	return gap > size*ratio
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

func pageHeight(page pdflib.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return defaultPageHeight
}

// metadataTitle reads the document information dictionary through pdfcpu.
func metadataTitle(data []byte) (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil || ctx == nil || ctx.XRefTable == nil {
		return ""
	}
	return strings.TrimSpace(ctx.Title)
}

// trailerTitle is the fallback when pdfcpu rejects the file.
func trailerTitle(reader *pdflib.Reader) (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	return strings.TrimSpace(reader.Trailer().Key("Info").Key("Title").Text())
}
