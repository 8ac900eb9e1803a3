package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/extract"
	"github.com/dgallion1/docsift/internal/parser"
)

// OutlineDir writes <output_dir>/<stem>.json for every supported file in
// input_dir, in name order. A document that fails gets the empty outline;
// only directory-level problems are returned as errors.
func (r *Runner) OutlineDir(ctx context.Context) (*Report, error) {
	report := r.newReport(config.ModeOutline)
	log := r.log.With("run_id", report.RunID, "mode", report.Mode)

	ext, err := Extractor(r.cfg, config.ModeOutline, r.stats, log)
	if err != nil {
		return nil, err
	}

	names, err := supportedFiles(r.cfg.InputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	log.Info("outline run started", "input_dir", r.cfg.InputDir, "documents", len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		docLog := log.With("document", name)
		res := DocumentResult{Filename: name, Status: StatusCompleted}

		outline := extract.EmptyOutline()
		s, err := ext.ExtractFile(filepath.Join(r.cfg.InputDir, name))
		if err != nil {
			docLog.Warn("extraction failed, writing empty outline", "error", err)
			res.Status = StatusFailed
			res.Error = err.Error()
		} else {
			outline = extract.NewOutline(s)
			res.Title = outline.Title
			res.Headings = len(outline.Outline)
		}

		out := filepath.Join(r.cfg.OutputDir, outputName(name))
		if err := writeJSON(out, outline); err != nil {
			docLog.Error("write outline failed", "error", err)
			res.Status = StatusFailed
			res.Error = err.Error()
		} else {
			docLog.Info("outline written", "output", out, "headings", res.Headings)
		}
		report.add(res)
	}

	report.Output = r.cfg.OutputDir
	report.Duration = time.Since(report.StartedAt)
	log.Info("outline run finished",
		"completed", report.Count(StatusCompleted),
		"failed", report.Count(StatusFailed),
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, nil
}

// supportedFiles lists the regular files in dir that a parser handles,
// sorted by name.
func supportedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// outputName maps "report.pdf" to "report.json".
func outputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
}
