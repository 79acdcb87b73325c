// Package runner formats many files concurrently.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/lang"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered during directory walks. Defaults to every extension the
	// registry knows.
	Extensions []string

	// IncludeGlobs are doublestar patterns files must match, relative to
	// WorkingDir. Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are doublestar patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Registry resolves file languages. Defaults to lang.DefaultRegistry.
	Registry *lang.Registry

	// Logger receives per-file debug output and formatting failures.
	Logger *log.Logger
}

// effectiveRegistry returns the registry to use, defaulting if nil.
func (o Options) effectiveRegistry() *lang.Registry {
	if o.Registry == nil {
		return lang.DefaultRegistry
	}
	return o.Registry
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	var exts []string
	for _, language := range o.effectiveRegistry().Languages() {
		exts = append(exts, language.Extensions...)
	}
	return exts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// effectiveConfig returns the configuration, defaulting if nil.
func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
