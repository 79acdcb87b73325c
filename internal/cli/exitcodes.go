package cli

import (
	"errors"

	"github.com/yaklabco/reindent/internal/configloader"
	"github.com/yaklabco/reindent/pkg/runner"
)

// Exit codes for reindent.
const (
	// ExitSuccess indicates successful execution with nothing to reformat.
	ExitSuccess = 0

	// ExitChanges indicates --check found files that need formatting.
	ExitChanges = 1

	// ExitFilesFailed indicates some files could not be formatted.
	ExitFilesFailed = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrChangesFound is returned by --check when files need formatting.
	ErrChangesFound = errors.New("files need formatting")

	// ErrFilesFailed is returned when at least one file failed to format.
	ErrFilesFailed = errors.New("some files could not be formatted")

	// ErrInvalidUsage marks errors caused by bad arguments or flags.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code of a run.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitFilesFailed
	case check && result.HasChanges():
		return ExitChanges
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesFound):
		return ExitChanges
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err is only an exit status signal that should
// not be logged.
func IsSilent(err error) bool {
	return errors.Is(err, ErrChangesFound) || errors.Is(err, ErrFilesFailed)
}
