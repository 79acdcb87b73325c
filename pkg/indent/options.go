// Package indent computes and renders indentation.
//
// Indentation is exchanged as an encoded integer, level*Factor + spaces, where
// level counts indent units and spaces counts the extra columns that do not
// form a whole unit. Nothing in this package returns an error: degenerate
// input degrades to an indent of 0.
package indent

// Factor packs an indent level and a space count into one integer.
const Factor = 10000

// WalkLimit bounds the backward walk of Calculator.Compute.
// Past this many hops the walk gives up and reports 0.
const WalkLimit = 450

// Default sizes used when an option is left at zero.
const (
	DefaultIndentSize = 4
	DefaultTabSize    = 4
)

// Options controls how indentation is measured and rendered.
type Options struct {
	// IndentSize is the width of one indent unit in columns.
	IndentSize int `yaml:"indent_size"`

	// TabSize is the width of a tab character in columns.
	TabSize int `yaml:"tab_size"`

	// UseTabs renders indentation with tab characters.
	UseTabs bool `yaml:"use_tabs"`

	// SmartTabs renders indent units with tabs and alignment with spaces.
	// Only meaningful with UseTabs.
	SmartTabs bool `yaml:"smart_tabs"`
}

// DefaultOptions returns four-column space indentation.
func DefaultOptions() Options {
	return Options{
		IndentSize: DefaultIndentSize,
		TabSize:    DefaultTabSize,
	}
}

// Normalize replaces unusable sizes with defaults.
func (o Options) Normalize() Options {
	if o.IndentSize <= 0 {
		o.IndentSize = DefaultIndentSize
	}
	if o.TabSize <= 0 {
		o.TabSize = DefaultTabSize
	}
	return o
}

// OptionsProvider supplies indentation settings per language.
type OptionsProvider interface {
	IndentOptions(language string) Options
}

// Fixed is an OptionsProvider returning the same options for every language.
type Fixed Options

// IndentOptions implements OptionsProvider.
func (f Fixed) IndentOptions(string) Options {
	return Options(f).Normalize()
}
