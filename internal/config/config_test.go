package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InputDir != "/app/input" || cfg.OutputDir != "/app/output" {
		t.Errorf("unexpected dirs: %q %q", cfg.InputDir, cfg.OutputDir)
	}
	if cfg.TopSections != 5 || cfg.TopSubsections != 3 {
		t.Errorf("expected 5/3 selection, got %d/%d", cfg.TopSections, cfg.TopSubsections)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docsift.yaml")
	yaml := "input_dir: /from/file\noutput_dir: /from/file/out\nclassifier: ratio\ntop_sections: 7\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCSIFT_OUTPUT_DIR", "/from/env")
	t.Setenv("DOCSIFT_LOG_LEVEL", "DEBUG")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("input-dir", "", "")
	flags.Int("top-sections", 5, "")
	flags.String("unrelated", "", "")
	if err := flags.Parse([]string{"--input-dir", "/from/flag"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InputDir != "/from/flag" {
		t.Errorf("expected flag to win, got %q", cfg.InputDir)
	}
	if cfg.OutputDir != "/from/env" {
		t.Errorf("expected env to beat file, got %q", cfg.OutputDir)
	}
	if cfg.TopSections != 7 {
		t.Errorf("expected unset flag to leave file value, got %d", cfg.TopSections)
	}
	if cfg.Classifier != "ratio" {
		t.Errorf("expected classifier from file, got %q", cfg.Classifier)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected normalized log level, got %q", cfg.LogLevel)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad classifier", func(c *Config) { c.Classifier = "neural" }},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"zero top sections", func(c *Config) { c.TopSections = 0 }},
		{"subsections above sections", func(c *Config) { c.TopSubsections = 6 }},
		{"zero refined chars", func(c *Config) { c.MaxRefinedChars = 0 }},
		{"zero upload limit", func(c *Config) { c.MaxUploadBytes = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestModeDefaults(t *testing.T) {
	cfg := Default()
	if got := cfg.ClassifierFor(ModeOutline); got != ClassifierScored {
		t.Errorf("expected scored for outline, got %q", got)
	}
	if got := cfg.ClassifierFor(ModeRank); got != ClassifierRatio {
		t.Errorf("expected ratio for rank, got %q", got)
	}
	if got := cfg.MinLineCharsFor(ModeOutline); got != 0 {
		t.Errorf("expected 0 for outline, got %d", got)
	}
	if got := cfg.MinLineCharsFor(ModeRank); got != 10 {
		t.Errorf("expected 10 for rank, got %d", got)
	}

	cfg.Classifier = ClassifierScored
	cfg.MinLineChars = 4
	if cfg.ClassifierFor(ModeRank) != ClassifierScored || cfg.MinLineCharsFor(ModeRank) != 4 {
		t.Error("expected explicit settings to override mode defaults")
	}
}
