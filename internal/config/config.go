// Package config loads docsift settings from defaults, an optional YAML
// file, DOCSIFT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Mode selects which pipeline a setting is resolved for.
type Mode string

const (
	ModeOutline Mode = "outline"
	ModeRank    Mode = "rank"
)

// Classifier strategy names. They match the layout package strategies.
const (
	ClassifierScored = "scored"
	ClassifierRatio  = "ratio"
)

type Config struct {
	InputDir  string `mapstructure:"input_dir"`
	OutputDir string `mapstructure:"output_dir"`

	// Classification. Empty classifier and negative min_line_chars mean
	// "use the mode default".
	Classifier   string `mapstructure:"classifier"`
	MinLineChars int    `mapstructure:"min_line_chars"`

	// Ranking
	TopSections         int  `mapstructure:"top_sections"`
	TopSubsections      int  `mapstructure:"top_subsections"`
	MinSectionChars     int  `mapstructure:"min_section_chars"`
	MaxRefinedChars     int  `mapstructure:"max_refined_chars"`
	AllowNegativeLength bool `mapstructure:"allow_negative_length"`

	// HTTP server
	Port           string `mapstructure:"port"`
	APIKey         string `mapstructure:"api_key"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`

	LogLevel string `mapstructure:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		InputDir:        "/app/input",
		OutputDir:       "/app/output",
		Classifier:      "",
		MinLineChars:    -1,
		TopSections:     5,
		TopSubsections:  3,
		MinSectionChars: 50,
		MaxRefinedChars: 500,
		Port:            "8090",
		MaxUploadBytes:  52428800, // 50MB
		LogLevel:        "info",
	}
}

// Load resolves the configuration. cfgFile may be empty, in which case
// ./docsift.yaml is read when present. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("input_dir", d.InputDir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("classifier", d.Classifier)
	v.SetDefault("min_line_chars", d.MinLineChars)
	v.SetDefault("top_sections", d.TopSections)
	v.SetDefault("top_subsections", d.TopSubsections)
	v.SetDefault("min_section_chars", d.MinSectionChars)
	v.SetDefault("max_refined_chars", d.MaxRefinedChars)
	v.SetDefault("allow_negative_length", d.AllowNegativeLength)
	v.SetDefault("port", d.Port)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("log_level", d.LogLevel)

	// Environment variables with DOCSIFT_ prefix
	v.SetEnvPrefix("DOCSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("docsift")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Try to read config file (not required unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !knownKeys[key] {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return Config{}, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Classifier = strings.ToLower(strings.TrimSpace(cfg.Classifier))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return cfg, nil
}

// knownKeys are the settings a flag may override; other flags are ignored.
var knownKeys = map[string]bool{
	"input_dir": true, "output_dir": true, "classifier": true, "min_line_chars": true,
	"top_sections": true, "top_subsections": true, "min_section_chars": true,
	"max_refined_chars": true, "allow_negative_length": true, "port": true,
	"api_key": true, "max_upload_bytes": true, "log_level": true,
}

// Validate checks enumerations and bounds.
func (c Config) Validate() error {
	switch c.Classifier {
	case "", ClassifierScored, ClassifierRatio:
	default:
		return fmt.Errorf("classifier must be %q or %q, got %q", ClassifierScored, ClassifierRatio, c.Classifier)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.TopSections <= 0 {
		return fmt.Errorf("top_sections must be positive, got %d", c.TopSections)
	}
	if c.TopSubsections < 0 || c.TopSubsections > c.TopSections {
		return fmt.Errorf("top_subsections must be between 0 and top_sections, got %d", c.TopSubsections)
	}
	if c.MinSectionChars < 0 {
		return fmt.Errorf("min_section_chars must not be negative, got %d", c.MinSectionChars)
	}
	if c.MaxRefinedChars <= 0 {
		return fmt.Errorf("max_refined_chars must be positive, got %d", c.MaxRefinedChars)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// ClassifierFor returns the configured strategy, or the mode default:
// scored for outlines, ratio for ranking.
func (c Config) ClassifierFor(mode Mode) string {
	if c.Classifier != "" {
		return c.Classifier
	}
	if mode == ModeRank {
		return ClassifierRatio
	}
	return ClassifierScored
}

// MinLineCharsFor returns the configured minimum line length, or the mode
// default: 0 for outlines, 10 for ranking.
func (c Config) MinLineCharsFor(mode Mode) int {
	if c.MinLineChars >= 0 {
		return c.MinLineChars
	}
	if mode == ModeRank {
		return 10
	}
	return 0
}
