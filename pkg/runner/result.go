package runner

// FileOutcome is the result of formatting one file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// RelPath is Path relative to the working directory, used in output.
	RelPath string

	// Language is the detected language name, empty when unknown.
	Language string

	// Skipped is set when the language is unknown or has no formatter.
	Skipped bool

	// Changed reports whether formatting changed the text.
	Changed bool

	// Written reports whether the formatted text was written back.
	Written bool

	// BackupPath is the backup written before the file was overwritten.
	BackupPath string

	// Diff is the unified diff of the change, empty when unchanged.
	Diff string

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files formatted without error.
	FilesProcessed int

	// FilesSkipped is the number of files without a formatter.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesChanged is the number of files whose text formatting changed.
	FilesChanged int

	// FilesWritten is the number of files written back.
	FilesWritten int

	// FilesByLanguage maps language names to processed file counts.
	FilesByLanguage map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any file would change or did change.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		FilesByLanguage: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.FilesByLanguage[outcome.Language]++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
