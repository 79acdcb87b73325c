package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/lang"
)

// maxIndentWidth bounds indent_size and tab_size.
const maxIndentWidth = 32

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "languages.brace.indent_size").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown languages).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// knownLogLevels lists valid log_level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks a configuration against the languages of lang.DefaultRegistry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lang.DefaultRegistry)
}

// ValidateWithRegistry checks a configuration for errors and warnings.
// Language overrides are resolved against registry.
func ValidateWithRegistry(cfg *config.Config, registry *lang.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateWidth(result, "indent.indent_size", cfg.Indent.IndentSize)
	validateWidth(result, "indent.tab_size", cfg.Indent.TabSize)
	if cfg.Indent.SmartTabs && !cfg.Indent.UseTabs {
		result.addWarning("indent.smart_tabs", true, "smart_tabs has no effect unless use_tabs is set")
	}

	if cfg.KeepBlankLines < 0 {
		result.addError("keep_blank_lines", cfg.KeepBlankLines, "keep_blank_lines must be >= 0")
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: text, diff, summary", cfg.Format)
	}

	if cfg.LogLevel != "" && !IsValidLogLevel(cfg.LogLevel) {
		result.addError("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: %s", cfg.LogLevel, strings.Join(knownLogLevels, ", "))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Write && cfg.Check {
		result.addError("write", true, "write and check are mutually exclusive")
	}

	validateLanguages(cfg, registry, result)
	validatePatterns(result, "include", cfg.Include)
	validatePatterns(result, "ignore", cfg.Ignore)

	return result
}

// validateWidth accepts 0 (use the default) up to maxIndentWidth.
func validateWidth(result *ValidationResult, field string, width int) {
	if width < 0 || width > maxIndentWidth {
		result.addError(field, width, "must be between 0 and %d (0 means default)", maxIndentWidth)
	}
}

// validateLanguages checks per-language overrides against the registry.
func validateLanguages(cfg *config.Config, registry *lang.Registry, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Languages))
	for name := range cfg.Languages {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		override := cfg.Languages[name]
		field := "languages." + name

		language, ok := registry.Get(name)
		switch {
		case !ok:
			result.addWarning(field, name, "unknown language %q; it will be ignored", name)
		case !strings.EqualFold(language.Name, name):
			result.addWarning(field, name,
				"%q is an alias; overrides apply to language %q only when keyed by that name", name, language.Name)
		}

		if override.IndentSize != nil {
			validateWidth(result, field+".indent_size", *override.IndentSize)
		}
		if override.TabSize != nil {
			validateWidth(result, field+".tab_size", *override.TabSize)
		}
	}
}

// validatePatterns checks that glob patterns are valid doublestar patterns.
func validatePatterns(result *ValidationResult, field string, patterns []string) {
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			result.addError(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return f.IsValid()
}

// IsValidLogLevel returns true if level names a known log level.
func IsValidLogLevel(level string) bool {
	return slices.Contains(knownLogLevels, strings.ToLower(level))
}
