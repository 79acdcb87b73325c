package configloader

import (
	"maps"

	"github.com/yaklabco/reindent/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// It is used for the CLI layer, where only flags the user set are non-zero:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans only ever switch on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Indent.IndentSize != 0 {
		result.Indent.IndentSize = override.Indent.IndentSize
	}
	if override.Indent.TabSize != 0 {
		result.Indent.TabSize = override.Indent.TabSize
	}
	if override.Indent.UseTabs {
		result.Indent.UseTabs = true
	}
	if override.Indent.SmartTabs {
		result.Indent.SmartTabs = true
	}
	if override.KeepBlankLines != 0 {
		result.KeepBlankLines = override.KeepBlankLines
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans: false is the zero value, so only true overrides.
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Languages = mergeLanguages(base.Languages, override.Languages)

	if override.Include != nil {
		result.Include = override.Include
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeLanguages deep merges per-language overrides field by field.
func mergeLanguages(base, override map[string]config.LanguageConfig) map[string]config.LanguageConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.LanguageConfig, len(base)+len(override))
	maps.Copy(result, base)

	for name, val := range override {
		existing, ok := result[name]
		if !ok {
			result[name] = val
			continue
		}
		result[name] = mergeLanguageConfig(existing, val)
	}

	return result
}

// mergeLanguageConfig merges one language's overrides; set fields in
// override win.
func mergeLanguageConfig(base, override config.LanguageConfig) config.LanguageConfig {
	result := base

	if override.IndentSize != nil {
		result.IndentSize = override.IndentSize
	}
	if override.TabSize != nil {
		result.TabSize = override.TabSize
	}
	if override.UseTabs != nil {
		result.UseTabs = override.UseTabs
	}
	if override.SmartTabs != nil {
		result.SmartTabs = override.SmartTabs
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
