package rank

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/dgallion1/docsift/internal/chunker"
	"github.com/dgallion1/docsift/internal/doctree"
	"github.com/dgallion1/docsift/internal/persona"
)

// TimestampLayout is ISO-8601 with microseconds and no zone.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Config controls selection sizes and excerpt refinement.
type Config struct {
	TopSections    int // Sections listed in extracted_sections
	TopSubsections int // Leading sections that also get an excerpt
	Chunker        chunker.Config
	Scorer         Scorer
}

// DefaultConfig returns the standard top-5 / top-3 selection.
func DefaultConfig() Config {
	return Config{
		TopSections:    5,
		TopSubsections: 3,
		Chunker:        chunker.DefaultConfig(),
	}
}

// Ranker groups, scores and selects sections across documents.
type Ranker struct {
	config Config
	now    func() time.Time
}

// NewRanker creates a ranker. A non-positive TopSections or a negative
// TopSubsections falls back to the default; zero TopSubsections means no
// excerpts.
func NewRanker(config Config) *Ranker {
	def := DefaultConfig()
	if config.TopSections <= 0 {
		config.TopSections = def.TopSections
	}
	if config.TopSubsections < 0 {
		config.TopSubsections = def.TopSubsections
	}
	return &Ranker{config: config, now: time.Now}
}

// WithClock replaces the timestamp source.
func (r *Ranker) WithClock(now func() time.Time) *Ranker {
	r.now = now
	return r
}

// Sections groups every structure into sections and scores them. The result
// is in encounter order: document order, then position within the document.
func (r *Ranker) Sections(structures []*doctree.Structure, p *persona.Profile) []doctree.Section {
	var all []doctree.Section
	for _, s := range structures {
		if s == nil {
			continue
		}
		secs := chunker.GroupSections(s, len(all), r.config.Chunker)
		for i := range secs {
			secs[i].Score = r.config.Scorer.Score(secs[i].Title+" "+secs[i].Body, p)
		}
		all = append(all, secs...)
	}
	return all
}

// SectionCount returns how many sections of s survive the length filter.
func (r *Ranker) SectionCount(s *doctree.Structure) int {
	if s == nil {
		return 0
	}
	return len(chunker.GroupSections(s, 0, r.config.Chunker))
}

// Rank builds the ranking result for the given structures. inputDocuments
// is echoed into the metadata as requested, including documents that could
// not be read.
func (r *Ranker) Rank(inputDocuments []string, structures []*doctree.Structure, p *persona.Profile) (*Result, error) {
	sections := r.Sections(structures, p)
	sortSections(sections)

	top := sections[:min(r.config.TopSections, len(sections))]

	res := &Result{
		Metadata: Metadata{
			InputDocuments:      append([]string{}, inputDocuments...),
			Persona:             p.Persona,
			JobToBeDone:         p.Job,
			ProcessingTimestamp: r.now().Format(TimestampLayout),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(top)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, min(r.config.TopSubsections, len(top))),
	}

	for i, sec := range top {
		res.ExtractedSections = append(res.ExtractedSections, ExtractedSection{
			Document:       sec.Document,
			SectionTitle:   sec.Title,
			ImportanceRank: i + 1,
			PageNumber:     sec.Page,
		})
		if i >= r.config.TopSubsections {
			continue
		}
		text, err := chunker.Refine(sec.Body, r.config.Chunker)
		if err != nil {
			return nil, fmt.Errorf("refine %q: %w", sec.Title, err)
		}
		res.SubsectionAnalysis = append(res.SubsectionAnalysis, SubsectionAnalysis{
			Document:    sec.Document,
			RefinedText: text,
			PageNumber:  sec.Page,
		})
	}
	return res, nil
}

// sortSections orders by descending score; equal scores keep encounter order.
func sortSections(sections []doctree.Section) {
	slices.SortFunc(sections, func(a, b doctree.Section) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}
