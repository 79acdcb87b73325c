// Package config defines the configuration types for reindent.
// These are plain data structures; loading and layering lives in
// internal/configloader.
package config

import (
	"strings"

	"github.com/yaklabco/reindent/pkg/indent"
)

// OutputFormat specifies how formatting results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// LanguageConfig overrides indentation settings for one language.
// Nil fields inherit from Config.Indent.
type LanguageConfig struct {
	IndentSize *int  `yaml:"indent_size,omitempty"`
	TabSize    *int  `yaml:"tab_size,omitempty"`
	UseTabs    *bool `yaml:"use_tabs,omitempty"`
	SmartTabs  *bool `yaml:"smart_tabs,omitempty"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the root configuration structure for reindent.
type Config struct {
	// Indent holds the indentation settings shared by all languages.
	Indent indent.Options `yaml:"indent"`

	// Languages contains per-language overrides keyed by language name.
	Languages map[string]LanguageConfig `yaml:"languages,omitempty"`

	// KeepBlankLines is the maximum number of consecutive blank lines kept.
	KeepBlankLines int `yaml:"keep_blank_lines"`

	// FinalNewline terminates formatted files with a line break.
	FinalNewline bool `yaml:"final_newline"`

	// Include contains glob patterns files must match to be formatted.
	Include []string `yaml:"include,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups"`

	// LogLevel is the logging level: debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-"`

	// Check reports files that would change without writing them.
	Check bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// DefaultKeepBlankLines is the default for Config.KeepBlankLines.
const DefaultKeepBlankLines = 2

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Indent:         indent.DefaultOptions(),
		Languages:      make(map[string]LanguageConfig),
		KeepBlankLines: DefaultKeepBlankLines,
		FinalNewline:   true,
		Format:         FormatText,
		Jobs:           0, // 0 means use GOMAXPROCS
	}
}

// IndentOptions implements indent.OptionsProvider. Language overrides are
// matched case-insensitively.
func (c *Config) IndentOptions(language string) indent.Options {
	opts := c.Indent
	for name, override := range c.Languages {
		if !strings.EqualFold(name, language) {
			continue
		}
		if override.IndentSize != nil {
			opts.IndentSize = *override.IndentSize
		}
		if override.TabSize != nil {
			opts.TabSize = *override.TabSize
		}
		if override.UseTabs != nil {
			opts.UseTabs = *override.UseTabs
		}
		if override.SmartTabs != nil {
			opts.SmartTabs = *override.SmartTabs
		}
	}
	return opts.Normalize()
}
