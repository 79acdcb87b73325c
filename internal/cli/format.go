package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/internal/ui/pretty"
	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/fsutil"
	"github.com/yaklabco/reindent/pkg/runner"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// stdinPath is the path argument that reads source from standard input.
const stdinPath = "-"

type formatFlags struct {
	format        string
	diff          bool
	verbose       bool
	useTabs       bool
	backup        bool
	include       []string
	ignore        []string
	span          string
	stdinFilename string
}

func newFormatCommand(global *globalFlags) *cobra.Command {
	var cfg config.Config
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:     "format [paths...]",
		Aliases: []string{"fmt"},
		Short:   "Reformat whitespace and indentation",
		Long:    formatLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, global, &cfg, flags)
		},
	}

	addFormatFlags(cmd, &cfg, flags)

	return cmd
}

const formatLongDescription = `Reformat the whitespace and indentation of source files.

By default, formats every file of a known language in the current directory
and its subdirectories and reports the files that would change. Nothing is
written unless --write is given.

Examples:
  reindent format                      # Report files that need formatting
  reindent format --write src/         # Rewrite files under src in place
  reindent format --check              # Exit 1 if any file needs formatting
  reindent format --diff Main.java     # Show what would change
  reindent format --range 120:480 a.c  # Format part of one file
  cat a.c | reindent format - --stdin-filename a.c`

func runFormat(cmd *cobra.Command, args []string, global *globalFlags, cli *config.Config, flags *formatFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if cli.Write && cli.Check {
		return fmt.Errorf("%w: --write and --check cannot be combined", ErrInvalidUsage)
	}

	if cmd.Flags().Changed("format") {
		cli.Format = config.OutputFormat(flags.format)
	}
	if flags.diff {
		cli.Format = config.FormatDiff
	}
	cli.Indent.UseTabs = flags.useTabs
	cli.Backups.Enabled = flags.backup
	cli.Include = flags.include
	cli.Ignore = flags.ignore

	cfg, err := global.loadConfig(cmd, cli)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Jobs,
	)

	styles := global.styles(cmd)

	if len(args) == 1 && args[0] == stdinPath {
		return formatStdin(cmd, cfg, flags, styles)
	}
	if flags.span != "" {
		if len(args) != 1 {
			return fmt.Errorf("%w: --range needs exactly one file", ErrInvalidUsage)
		}
		span, err := parseRange(flags.span)
		if err != nil {
			return err
		}
		return formatSingle(cmd, cfg, args[0], runner.Source{Range: &span}, styles)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	result, err := runner.Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		IncludeGlobs: cfg.Include,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("format run failed: %w", err)
	}

	logger.Debug("format run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	if err := report(cmd.OutOrStdout(), styles, cfg, result, flags.verbose); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, cfg.Check) {
	case ExitFilesFailed:
		return ErrFilesFailed
	case ExitChanges:
		return ErrChangesFound
	default:
		return nil
	}
}

// report writes the run result in the configured output format.
func report(out io.Writer, styles *pretty.Styles, cfg *config.Config, result *runner.Result, verbose bool) error {
	var builder strings.Builder

	for _, outcome := range result.Files {
		if cfg.Format == config.FormatDiff && outcome.Diff != "" {
			builder.WriteString(styles.FormatDiff(outcome.Diff))
		}
		if cfg.Format != config.FormatSummary || outcome.Error != nil {
			builder.WriteString(styles.FormatOutcome(outcome, verbose))
		}
	}

	if cfg.Format == config.FormatSummary {
		builder.WriteString(styles.FormatSummary(result.Stats))
	} else {
		builder.WriteString(styles.FormatSummaryOneLine(result.Stats, cfg.Check))
	}

	_, err := io.WriteString(out, builder.String())
	return err
}

// formatStdin formats standard input and writes the result to stdout.
func formatStdin(cmd *cobra.Command, cfg *config.Config, flags *formatFlags, styles *pretty.Styles) error {
	if cfg.Write {
		return fmt.Errorf("%w: --write cannot be used with standard input", ErrInvalidUsage)
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read standard input: %w", err)
	}

	path := flags.stdinFilename
	if path == "" {
		path = "stdin"
	}

	src := runner.Source{Path: path, Text: string(content)}
	if flags.span != "" {
		span, err := parseRange(flags.span)
		if err != nil {
			return err
		}
		src.Range = &span
	}

	result, err := runner.FormatSource(cmd.Context(), runner.Options{Config: cfg, Logger: logging.FromContext(cmd.Context())}, src)
	if err != nil {
		return err
	}
	return emitSource(cmd.OutOrStdout(), styles, cfg, result)
}

// formatSingle formats one file restricted by src and writes it back with
// --write, otherwise prints the result.
func formatSingle(cmd *cobra.Command, cfg *config.Config, path string, src runner.Source, styles *pretty.Styles) error {
	ctx := cmd.Context()

	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return err
	}
	src.Path = path
	src.Text = string(content)

	result, err := runner.FormatSource(ctx, runner.Options{Config: cfg, Logger: logging.FromContext(ctx)}, src)
	if err != nil {
		return err
	}
	if result.Skipped {
		logging.FromContext(ctx).Warn("no formatter for file", logging.FieldPath, path, logging.FieldLanguage, result.Language)
	}

	if !cfg.Write {
		return emitSource(cmd.OutOrStdout(), styles, cfg, result)
	}
	if !result.Changed {
		return nil
	}

	if cfg.Backups.Enabled && !cfg.NoBackups {
		if _, _, err := fsutil.Backup(ctx, snap, content); err != nil {
			return err
		}
	}
	if err := fsutil.WriteIfUnchanged(ctx, snap, []byte(result.Text)); err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), styles.FormatOutcome(runner.FileOutcome{
		Path:    path,
		Changed: true,
		Written: true,
	}, false))
	return err
}

// emitSource prints the formatted text, or its diff for --diff. With
// --check nothing but the exit status reports a change.
func emitSource(out io.Writer, styles *pretty.Styles, cfg *config.Config, result *runner.SourceResult) error {
	if cfg.Check {
		if result.Changed {
			return ErrChangesFound
		}
		return nil
	}

	text := result.Text
	if cfg.Format == config.FormatDiff {
		text = styles.FormatDiff(result.Diff)
	}
	_, err := io.WriteString(out, text)
	return err
}

// parseRange parses "start:end" byte offsets.
func parseRange(value string) (syntax.TextRange, error) {
	startText, endText, ok := strings.Cut(value, ":")
	if !ok {
		return syntax.TextRange{}, fmt.Errorf("%w: range %q must be start:end", ErrInvalidUsage, value)
	}

	start, startErr := strconv.Atoi(strings.TrimSpace(startText))
	end, endErr := strconv.Atoi(strings.TrimSpace(endText))
	if err := errors.Join(startErr, endErr); err != nil {
		return syntax.TextRange{}, fmt.Errorf("%w: range %q: %w", ErrInvalidUsage, value, err)
	}
	if start < 0 || end < start {
		return syntax.TextRange{}, fmt.Errorf("%w: range %q must satisfy 0 <= start <= end", ErrInvalidUsage, value)
	}

	return syntax.NewTextRange(start, end), nil
}

func addFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write formatted files in place")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "exit 1 if any file needs formatting, write nothing")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff of every change (same as --format diff)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, diff, summary")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns files must match")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&cfg.Indent.IndentSize, "indent-size", 0, "columns per indent level (0 = from config)")
	cmd.Flags().IntVar(&cfg.Indent.TabSize, "tab-size", 0, "columns per tab (0 = from config)")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent with tabs")
	cmd.Flags().IntVar(&cfg.KeepBlankLines, "keep-blank-lines", 0, "maximum consecutive blank lines (0 = from config)")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "back up files before writing them")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "never back up files, even when the config enables it")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list unchanged and skipped files")
	cmd.Flags().StringVar(&flags.span, "range", "", "format only the byte range start:end of a single file")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "", "file name used to detect the language of standard input")

}
