package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/lang/brace"
)

// newRepo creates a temp directory that looks like a VCS root so the
// upward config search stops there.
func newRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolated(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func testRegistry() *lang.Registry {
	registry := lang.NewRegistry()
	registry.Register(brace.Language())
	return registry
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newRepo(t)))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".reindent.yml"), `
indent:
  indent_size: 2
keep_blank_lines: 1
languages:
  brace:
    use_tabs: true
ignore:
  - "vendor/**"
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 2, cfg.Indent.IndentSize)
	assert.Equal(t, 4, cfg.Indent.TabSize, "keys absent from the file keep their defaults")
	assert.Equal(t, 1, cfg.KeepBlankLines)
	assert.True(t, cfg.FinalNewline)
	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	assert.True(t, cfg.IndentOptions(brace.Name).UseTabs)
	assert.Equal(t, []string{filepath.Join(dir, ".reindent.yml")}, result.LoadedFrom)
}

func TestLoad_UpwardSearch(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".reindent.yaml"), "indent:\n  tab_size: 8\n")
	sub := filepath.Join(dir, "src", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	assert.Equal(t, 8, result.Config.Indent.TabSize)
	assert.Equal(t, filepath.Join(dir, ".reindent.yaml"), result.Paths.Project)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".reindent.yml"), "indent:\n  indent_size: 3\n")
	repo := filepath.Join(dir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)

	assert.Empty(t, result.Paths.Project)
	assert.Equal(t, 4, result.Config.Indent.IndentSize)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".reindent.yml"), `
indent:
  indent_size: 2
languages:
  brace:
    tab_size: 2
`)
	explicit := filepath.Join(dir, "ci", "reindent.yml")
	writeFile(t, explicit, `
keep_blank_lines: 0
languages:
  brace:
    use_tabs: true
`)

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 2, cfg.Indent.IndentSize)
	assert.Equal(t, 0, cfg.KeepBlankLines)

	braceOpts := cfg.IndentOptions(brace.Name)
	assert.Equal(t, 2, braceOpts.TabSize, "language overrides merge field by field")
	assert.True(t, braceOpts.UseTabs)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".reindent.yml"), "")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultKeepBlankLines, result.Config.KeepBlankLines)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown key",
			content: "indent_width: 2\n",
			wantErr: "field indent_width not found",
		},
		{
			name:    "cli only key",
			content: "write: true\n",
			wantErr: "field write not found",
		},
		{
			name:    "malformed yaml",
			content: "indent: [\n",
			wantErr: "parse YAML",
		},
		{
			name:    "negative indent",
			content: "indent:\n  indent_size: -1\n",
			wantErr: "indent.indent_size",
		},
		{
			name:    "bad glob",
			content: "ignore:\n  - \"[a-\"\n",
			wantErr: "invalid glob pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newRepo(t)
			writeFile(t, filepath.Join(dir, ".reindent.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ValidationErrorType(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".reindent.yml"), "keep_blank_lines: -2\n")

	_, err := Load(context.Background(), isolated(dir))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "keep_blank_lines", validationErr.Field)
	assert.Equal(t, -2, validationErr.Value)
}

func TestLoad_Environment(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"REINDENT_INDENT_SIZE":   "3",
		"REINDENT_USE_TABS":      "true",
		"REINDENT_FINAL_NEWLINE": "false",
		"REINDENT_IGNORE":        "vendor/**, build/** ,",
		"REINDENT_FORMAT":        "diff",
	}

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".reindent.yml"), "indent:\n  indent_size: 2\n")

	opts := isolated(dir)
	opts.IgnoreEnv = false
	opts.LookupEnv = func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 3, cfg.Indent.IndentSize, "environment beats project config")
	assert.True(t, cfg.Indent.UseTabs)
	assert.False(t, cfg.FinalNewline)
	assert.Equal(t, []string{"vendor/**", "build/**"}, cfg.Ignore)
	assert.Equal(t, config.FormatDiff, cfg.Format)
}

func TestLoad_EnvironmentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad bool",
			env:     map[string]string{"REINDENT_USE_TABS": "sometimes"},
			wantErr: "invalid boolean for REINDENT_USE_TABS",
		},
		{
			name:    "bad int",
			env:     map[string]string{"REINDENT_JOBS": "many"},
			wantErr: "invalid integer for REINDENT_JOBS",
		},
		{
			name:    "bad format",
			env:     map[string]string{"REINDENT_FORMAT": "json"},
			wantErr: "invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolated(newRepo(t))
			opts.IgnoreEnv = false
			opts.LookupEnv = func(key string) (string, bool) {
				value, ok := tt.env[key]
				return value, ok
			}

			_, err := Load(context.Background(), opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".reindent.yml"), "indent:\n  indent_size: 2\nkeep_blank_lines: 1\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Indent: config.NewConfig().Indent,
		Write:  true,
		Jobs:   3,
	}
	opts.CLIConfig.Indent.IndentSize = 8

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 8, cfg.Indent.IndentSize)
	assert.Equal(t, 1, cfg.KeepBlankLines, "unset CLI fields keep file values")
	assert.True(t, cfg.Write)
	assert.Equal(t, 3, cfg.Jobs)
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".reindent.yml"), `
languages:
  cobol:
    indent_size: 2
  java:
    indent_size: 2
`)

	opts := isolated(dir)
	opts.Registry = testRegistry()
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `unknown language "cobol"`)
	assert.Contains(t, result.Warnings[1], `"java" is an alias`)
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(newRepo(t)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestMergeLanguages(t *testing.T) {
	t.Parallel()

	two, four := 2, 4
	yes := true

	base := map[string]config.LanguageConfig{
		"brace":    {IndentSize: &two, TabSize: &four},
		"markdown": {IndentSize: &four},
	}
	override := map[string]config.LanguageConfig{
		"brace": {UseTabs: &yes, TabSize: &two},
		"other": {SmartTabs: &yes},
	}

	merged := mergeLanguages(base, override)

	require.Len(t, merged, 3)
	assert.Equal(t, 2, *merged["brace"].IndentSize)
	assert.Equal(t, 2, *merged["brace"].TabSize)
	assert.True(t, *merged["brace"].UseTabs)
	assert.Equal(t, 4, *merged["markdown"].IndentSize)
	assert.True(t, *merged["other"].SmartTabs)
	assert.Nil(t, mergeLanguages(nil, nil))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	first := config.NewConfig()
	second := &config.Config{KeepBlankLines: 5, Include: []string{"src/**"}}
	third := &config.Config{Format: config.FormatSummary, Check: true}

	merged := MergeAll(first, second, third)
	assert.Equal(t, 5, merged.KeepBlankLines)
	assert.Equal(t, []string{"src/**"}, merged.Include)
	assert.Equal(t, config.FormatSummary, merged.Format)
	assert.True(t, merged.Check)
	assert.Equal(t, 4, merged.Indent.IndentSize)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		modify     func(*config.Config)
		wantFields []string
		wantWarn   int
	}{
		{
			name:   "defaults",
			modify: func(*config.Config) {},
		},
		{
			name:       "wide indent",
			modify:     func(c *config.Config) { c.Indent.IndentSize = 40 },
			wantFields: []string{"indent.indent_size"},
		},
		{
			name:       "bad log level",
			modify:     func(c *config.Config) { c.LogLevel = "loud" },
			wantFields: []string{"log_level"},
		},
		{
			name:   "log level is case insensitive",
			modify: func(c *config.Config) { c.LogLevel = "DEBUG" },
		},
		{
			name:       "negative jobs",
			modify:     func(c *config.Config) { c.Jobs = -1 },
			wantFields: []string{"jobs"},
		},
		{
			name: "write and check",
			modify: func(c *config.Config) {
				c.Write = true
				c.Check = true
			},
			wantFields: []string{"write"},
		},
		{
			name: "language widths",
			modify: func(c *config.Config) {
				bad := 99
				c.Languages["brace"] = config.LanguageConfig{TabSize: &bad}
			},
			wantFields: []string{"languages.brace.tab_size"},
		},
		{
			name: "include pattern",
			modify: func(c *config.Config) {
				c.Include = []string{"src/**/*.c", "{a,b"}
			},
			wantFields: []string{"include[1]"},
		},
		{
			name:     "smart tabs without tabs",
			modify:   func(c *config.Config) { c.Indent.SmartTabs = true },
			wantWarn: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.modify(cfg)

			result := ValidateWithRegistry(cfg, testRegistry())

			fields := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			if len(tt.wantFields) == 0 {
				assert.True(t, result.Valid(), "unexpected errors: %v", result.AllMessages())
			} else {
				assert.Equal(t, tt.wantFields, fields)
			}
			assert.Len(t, result.Warnings, tt.wantWarn)
		})
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.KeepBlankLines = -1

	result := ValidateWithFile(cfg, ".reindent.yml")
	require.False(t, result.Valid())
	assert.Equal(t, ".reindent.yml: keep_blank_lines: keep_blank_lines must be >= 0", result.Errors[0].Error())
	assert.Equal(t, []string{"error: " + result.Errors[0].Error()}, result.AllMessages())
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "REINDENT_INDENT_SIZE", GetEnvVarName("indent.indent_size"))
	assert.Empty(t, GetEnvVarName("nope"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "REINDENT_KEEP_BLANK_LINES")
}

func TestParseSliceValue(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseSliceValue(""))
	assert.Equal(t, []string{"a", "b"}, parseSliceValue(" a ,, b "))
}
