// Package pipeline runs the batch modes: an outline per document of a
// directory, and a persona-ranked digest of a described collection.
package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/docsift/internal/chunker"
	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/extract"
	"github.com/dgallion1/docsift/internal/layout"
	"github.com/dgallion1/docsift/internal/rank"
)

// Runner executes batch runs. Documents are processed one at a time.
type Runner struct {
	cfg   config.Config
	log   *slog.Logger
	stats *extract.Stats
	now   func() time.Time
}

// NewRunner creates a runner. stats may be nil.
func NewRunner(cfg config.Config, stats *extract.Stats, log *slog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log, stats: stats, now: time.Now}
}

// Extractor builds the structure extractor for a mode, honouring the
// configured classifier and minimum line length.
func Extractor(cfg config.Config, mode config.Mode, stats *extract.Stats, log *slog.Logger) (*extract.Extractor, error) {
	classifier, err := layout.ClassifierFor(cfg.ClassifierFor(mode))
	if err != nil {
		return nil, err
	}
	return extract.NewExtractor(classifier, extract.Options{
		MinLineChars: cfg.MinLineCharsFor(mode),
		Stats:        stats,
		Logger:       log,
	}), nil
}

// Ranker builds the section ranker from configuration.
func Ranker(cfg config.Config) *rank.Ranker {
	rc := rank.DefaultConfig()
	rc.TopSections = cfg.TopSections
	rc.TopSubsections = cfg.TopSubsections
	rc.Chunker = chunker.Config{
		MinSectionChars: cfg.MinSectionChars,
		MaxSentences:    rc.Chunker.MaxSentences,
		KeepWholeUpTo:   rc.Chunker.KeepWholeUpTo,
		MaxRefinedChars: cfg.MaxRefinedChars,
	}
	rc.Scorer = rank.Scorer{AllowNegativeLength: cfg.AllowNegativeLength}
	return rank.NewRanker(rc)
}

func (r *Runner) newReport(mode config.Mode) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Mode:      string(mode),
		StartedAt: r.now(),
		Documents: []DocumentResult{},
	}
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
