package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/doctree"
	"github.com/dgallion1/docsift/internal/persona"
	"github.com/dgallion1/docsift/internal/rank"
)

// OutputFile is the ranking result written to output_dir.
const OutputFile = "output.json"

// DocumentDirs are the input_dir subdirectories searched for a collection
// document, in order.
var DocumentDirs = []string{"", "PDFs"}

// RankCollection reads the descriptor in input_dir, ranks the sections of
// its documents for the described persona and writes output.json. A missing
// or invalid descriptor is fatal and nothing is written. Missing or
// unreadable documents are skipped.
func (r *Runner) RankCollection(ctx context.Context) (*rank.Result, *Report, error) {
	report := r.newReport(config.ModeRank)
	log := r.log.With("run_id", report.RunID, "mode", report.Mode)

	desc, err := LoadDescriptor(r.cfg.InputDir)
	if err != nil {
		log.Error("cannot load collection descriptor", "input_dir", r.cfg.InputDir, "error", err)
		return nil, report, err
	}

	ext, err := Extractor(r.cfg, config.ModeRank, r.stats, log)
	if err != nil {
		return nil, report, err
	}
	profile := persona.NewProfile(desc.Persona.Role, desc.JobToBeDone.Task)
	log.Info("rank run started",
		"documents", len(desc.Documents),
		"persona", desc.Persona.Role,
		"archetype", profile.Archetype,
		"keywords", len(profile.Keywords()),
	)

	ranker := Ranker(r.cfg).WithClock(r.now)

	var structures []*doctree.Structure
	for _, name := range desc.Filenames() {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		docLog := log.With("document", name)

		path, err := r.resolveDocument(name)
		if err != nil {
			docLog.Warn("document not found, skipping")
			report.add(DocumentResult{Filename: name, Status: StatusSkipped, Error: err.Error()})
			continue
		}
		s, err := ext.ExtractFile(path)
		if err != nil {
			docLog.Warn("extraction failed, document contributes no sections", "error", err)
			report.add(DocumentResult{Filename: name, Status: StatusFailed, Error: err.Error()})
			continue
		}
		// Sections are keyed by the name the descriptor used.
		s.Name = name
		structures = append(structures, s)
		report.add(DocumentResult{
			Filename: name,
			Status:   StatusCompleted,
			Title:    s.Title,
			Headings: len(s.Headings()),
			Sections: ranker.SectionCount(s),
		})
	}

	result, err := ranker.Rank(desc.Filenames(), structures, profile)
	if err != nil {
		return nil, report, err
	}

	out := filepath.Join(r.cfg.OutputDir, OutputFile)
	if err := writeJSON(out, result); err != nil {
		return nil, report, err
	}
	report.Output = out
	report.Duration = time.Since(report.StartedAt)
	log.Info("rank run finished",
		"output", out,
		"sections", len(result.ExtractedSections),
		"skipped", report.Count(StatusSkipped),
		"failed", report.Count(StatusFailed),
		"duration_ms", report.Duration.Milliseconds(),
	)
	return result, report, nil
}

func (r *Runner) resolveDocument(name string) (string, error) {
	for _, dir := range DocumentDirs {
		path := filepath.Join(r.cfg.InputDir, dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%s: %w", name, fs.ErrNotExist)
}
