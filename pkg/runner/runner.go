package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/format"
	"github.com/yaklabco/reindent/pkg/fsutil"
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/textedit"
)

// Runner formats files with one shared Driver. Every file gets its own tree,
// so a tree is only ever touched by the goroutine that parsed it.
type Runner struct {
	registry *lang.Registry
	cfg      *config.Config
	driver   *format.Driver
	logger   *log.Logger
	workDir  string
}

// Run discovers files under opts.Paths and formats them concurrently.
// It returns one FileOutcome per discovered file, in path order, and
// aggregate stats.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	r := newRunner(opts, workDir)
	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))
	r.logger.Debug("formatting files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	// Each worker owns one slot, so outcomes come back in discovery order.
	outcomes := make([]FileOutcome, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				outcomes[i] = FileOutcome{Path: path, RelPath: relativeTo(workDir, path), Error: err}
				return nil
			}
			outcomes[i] = r.processFile(groupCtx, path)
			return nil
		})
	}
	_ = group.Wait() // Workers report failures through their outcome.

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func newRunner(opts Options, workDir string) *Runner {
	cfg := opts.effectiveConfig()
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	driverOpts := []format.Option{
		format.WithLogger(logger),
		format.WithKeepBlankLines(cfg.KeepBlankLines),
	}
	if cfg.FinalNewline {
		driverOpts = append(driverOpts, format.WithPostProcessor(format.EnsureFinalNewline{}))
	}

	registry := opts.effectiveRegistry()
	return &Runner{
		registry: registry,
		cfg:      cfg,
		driver:   format.NewDriver(registry, cfg, driverOpts...),
		logger:   logger,
		workDir:  workDir,
	}
}

// processFile runs the per-file pipeline: read, detect, format, diff and,
// when writing, back up and write.
func (r *Runner) processFile(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path, RelPath: relativeTo(r.workDir, path)}

	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	language, ok := r.registry.ForFile(path, content)
	if !ok {
		outcome.Skipped = true
		return outcome
	}
	outcome.Language = language.Name
	if !language.HasFormatter() {
		outcome.Skipped = true
		return outcome
	}

	before := string(content)
	file := format.NewFile(outcome.RelPath, language, before)
	if err := r.driver.FormatWholeFile(ctx, file); err != nil {
		outcome.Error = fmt.Errorf("format %s: %w", outcome.RelPath, err)
		return outcome
	}

	after := file.Text()
	if after == before {
		return outcome
	}
	outcome.Changed = true

	diff, err := textedit.UnifiedDiff(outcome.RelPath, before, after)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Diff = diff

	if !r.cfg.Write {
		return outcome
	}

	if r.cfg.Backups.Enabled && !r.cfg.NoBackups {
		backupPath, _, err := fsutil.Backup(ctx, snap, content)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.BackupPath = backupPath
	}
	if err := fsutil.WriteIfUnchanged(ctx, snap, []byte(after)); err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Written = true

	r.logger.Debug("wrote file", logging.FieldPath, outcome.RelPath, logging.FieldLanguage, language.Name)
	return outcome
}
