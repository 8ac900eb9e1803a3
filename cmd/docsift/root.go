package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsift/internal/config"
	"github.com/dgallion1/docsift/internal/extract"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Document structure extraction and persona-driven section ranking",
	Long: `docsift recovers the heading structure of documents from their layout
and ranks their sections for a reader persona.

Modes:
  - outline: one {"title","outline"} JSON per document of a directory
  - rank:    one ranked digest of a collection described by input.json
  - serve:   the same operations over HTTP on uploaded files`,
	Version:      GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./docsift.yaml when present)",
	)
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
}

// batchFlags registers the settings shared by the batch modes.
func batchFlags(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().String("input-dir", d.InputDir, "directory holding the input documents")
	cmd.Flags().String("output-dir", d.OutputDir, "directory the JSON results are written to")
	cmd.Flags().String("classifier", d.Classifier, "line classifier: scored or ratio (default depends on the mode)")
	cmd.Flags().Int("min-line-chars", d.MinLineChars, "ignore lines shorter than this (-1 uses the mode default)")
}

// setup loads and validates the configuration and builds the logger.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, newLogger(cfg.LogLevel), nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

// newStats is the latency window shared by every extraction of a process.
func newStats() *extract.Stats {
	return extract.NewStats(0)
}
