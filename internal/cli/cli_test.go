package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/reindent/internal/cli"
	"github.com/yaklabco/reindent/internal/configloader"
	"github.com/yaklabco/reindent/pkg/runner"
)

func newTestRoot() *cobra.Command {
	return cli.NewRootCommand(cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	})
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newTestRoot()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := newTestRoot()
	require.NotNil(t, cmd)

	assert.Equal(t, "reindent", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := newTestRoot()

	for _, name := range []string{"format", "indent", "languages", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}
}

func TestFormatCommandFlags(t *testing.T) {
	t.Parallel()

	formatCmd, _, err := newTestRoot().Find([]string{"format"})
	require.NoError(t, err)

	expectedFlags := []string{
		"write", "check", "diff", "format", "jobs", "include", "ignore",
		"indent-size", "tab-size", "use-tabs", "keep-blank-lines",
		"backup", "no-backups", "verbose", "range", "stdin-filename",
	}
	for _, name := range expectedFlags {
		assert.NotNil(t, formatCmd.Flags().Lookup(name), "flag --%s", name)
	}

	assert.Contains(t, formatCmd.Aliases, "fmt")
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := newTestRoot()

	for _, name := range []string{"debug", "log-level", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag --%s", name)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		want   int
		silent bool
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "changes", err: cli.ErrChangesFound, want: cli.ExitChanges, silent: true},
		{name: "failed files", err: cli.ErrFilesFailed, want: cli.ExitFilesFailed, silent: true},
		{name: "usage", err: errors.Join(errors.New("bad flag"), cli.ErrInvalidUsage), want: cli.ExitInvalidUsage},
		{name: "config", err: cli.ErrConfig, want: cli.ExitConfigError},
		{name: "validation", err: &configloader.ValidationError{Field: "jobs", Message: "must not be negative"}, want: cli.ExitConfigError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
			assert.Equal(t, tt.silent, cli.IsSilent(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	changed := &runner.Result{Stats: runner.Stats{FilesChanged: 1}}
	failed := &runner.Result{Stats: runner.Stats{FilesChanged: 1, FilesErrored: 1}}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(changed, false))
	assert.Equal(t, cli.ExitChanges, cli.ExitCodeFromResult(changed, true))
	assert.Equal(t, cli.ExitFilesFailed, cli.ExitCodeFromResult(failed, true))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "test-version")
	assert.Contains(t, stdout, "test-commit")
	assert.Contains(t, stdout, "test-date")
}

func TestFormatCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	messy := writeFile(t, dir, "A.java", "class A {\nint x;\n}\n")
	writeFile(t, dir, "B.java", "class B {\n    int y;\n}\n")

	stdout, _, err := execute(t, "", "format", "--check", dir)
	require.ErrorIs(t, err, cli.ErrChangesFound)
	assert.Equal(t, cli.ExitChanges, cli.ExitCode(err))

	assert.Contains(t, stdout, "would reformat")
	assert.Contains(t, stdout, "A.java")
	assert.NotContains(t, stdout, "B.java")

	content, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, "class A {\nint x;\n}\n", string(content), "--check must not write")
}

func TestFormatWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "A.java", "class A {\nint x;\n}\n")

	stdout, _, err := execute(t, "", "format", "--write", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "reformatted")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class A {\n    int x;\n}\n", string(content))

	_, _, err = execute(t, "", "format", "--check", dir)
	require.NoError(t, err)
}

func TestFormatWriteAndCheckConflict(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "format", "--write", "--check", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestFormatStdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr error
	}{
		{
			name:  "whole text",
			args:  []string{"format", "-", "--stdin-filename", "Main.java"},
			stdin: "class A {\nint x;\n}\n",
			want:  "class A {\n    int x;\n}\n",
		},
		{
			name:  "empty range",
			args:  []string{"format", "-", "--stdin-filename", "f.c", "--range", "0:0"},
			stdin: "void f() {\nint a;\n}",
			want:  "void f() {\nint a;\n}",
		},
		{
			name:  "unknown language passes through",
			args:  []string{"format", "-", "--stdin-filename", "notes.unknownext"},
			stdin: "  anything\n",
			want:  "  anything\n",
		},
		{
			name:    "check reports changes",
			args:    []string{"format", "-", "--stdin-filename", "Main.java", "--check"},
			stdin:   "class A {\nint x;\n}\n",
			wantErr: cli.ErrChangesFound,
		},
		{
			name:    "write is rejected",
			args:    []string{"format", "-", "--write"},
			stdin:   "int x;\n",
			wantErr: cli.ErrInvalidUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, tt.stdin, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestFormatStdinDiff(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "class A {\nint x;\n}\n", "format", "-", "--stdin-filename", "Main.java", "--diff")
	require.NoError(t, err)

	assert.Contains(t, stdout, "--- a/Main.java")
	assert.Contains(t, stdout, "+    int x;")
}

func TestFormatRangeErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.c", "int x;\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing colon", args: []string{"format", "--range", "12", path}},
		{name: "not a number", args: []string{"format", "--range", "a:b", path}},
		{name: "reversed", args: []string{"format", "--range", "5:2", path}},
		{name: "negative", args: []string{"format", "--range", "-1:2", path}},
		{name: "several files", args: []string{"format", "--range", "0:2", path, path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", tt.args...)
			require.ErrorIs(t, err, cli.ErrInvalidUsage)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
		})
	}
}

func TestFormatRangeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "f.c", "void f() {\nint a;\nint b;\n}\n")

	// The range covers "int b;" only.
	stdout, _, err := execute(t, "", "format", "--range", "17:24", path)
	require.NoError(t, err)
	assert.Equal(t, "void f() {\nint a;\n    int b;\n}\n", stdout)
}

func TestIndentCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "f.c", "void f() {\nint a;\nint b;\n}\n")

	stdout, _, err := execute(t, "", "indent", "--line", "3", path)
	require.NoError(t, err)
	assert.Equal(t, "void f() {\nint a;\n    int b;\n}\n", stdout)

	_, _, err = execute(t, "", "indent", "--line", "3", "--write", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "void f() {\nint a;\n    int b;\n}\n", string(content))
}

func TestIndentCommandErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "f.c", "int x;\n")

	_, _, err := execute(t, "", "indent", path)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, _, err = execute(t, "", "indent", "--line", "40", path)
	require.ErrorIs(t, err, runner.ErrLineOutOfRange)
}

func TestLanguagesCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "languages", "--names")
	require.NoError(t, err)
	assert.Equal(t, []string{"brace", "markdown"}, strings.Fields(stdout))

	stdout, _, err = execute(t, "", "languages")
	require.NoError(t, err)
	assert.Contains(t, stdout, "brace")
	assert.Contains(t, stdout, ".java")
	assert.Contains(t, stdout, "markdown")
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "reindent.yml")

	stdout, _, err := execute(t, "", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "created configuration file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# reindent configuration")
	assert.Contains(t, string(content), "Known languages: brace, markdown")

	_, _, err = execute(t, "", "init", "--output", path)
	require.ErrorIs(t, err, cli.ErrInvalidUsage)

	_, _, err = execute(t, "", "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "--log-level", "loud", "version")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestUnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "format", "--no-such-flag")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "format", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "reindent format [paths...]")
	assert.Contains(t, stdout, "--stdin-filename")
	assert.Contains(t, stdout, "Global Flags:")
	assert.NotContains(t, stdout, "\x1b[", "help must not be colored when writing to a buffer")
}
