package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/reindent/pkg/format"
	"github.com/yaklabco/reindent/pkg/syntax"
	"github.com/yaklabco/reindent/pkg/textedit"
)

// ErrLineOutOfRange is returned when Source.Line is not a line of the text.
var ErrLineOutOfRange = errors.New("line out of range")

// Source is one in-memory text to format, such as standard input or a
// single file restricted to a range.
type Source struct {
	// Path names the text for language detection and diff headers.
	Path string

	// Text is the content to format.
	Text string

	// Range restricts formatting to part of the text. Nil formats all of it.
	Range *syntax.TextRange

	// Line, when positive, reindents only that 1-based line.
	// It takes precedence over Range.
	Line int
}

// SourceResult is the outcome of FormatSource.
type SourceResult struct {
	// Language is the detected language name, empty when unknown.
	Language string

	// Skipped is set when the language is unknown or has no formatter;
	// Text is then the input unchanged.
	Skipped bool

	// Text is the formatted text.
	Text string

	// Changed reports whether formatting changed the text.
	Changed bool

	// Diff is the unified diff of the change, empty when unchanged.
	Diff string

	// Caret is the offset of the first non-blank character of Line after
	// reindenting, or -1 when Line was not set.
	Caret int
}

// FormatSource formats src with the configuration, registry and logger of
// opts. Paths and globs in opts are ignored.
func FormatSource(ctx context.Context, opts Options, src Source) (*SourceResult, error) {
	r := newRunner(opts, "")
	result := &SourceResult{Text: src.Text, Caret: -1}

	language, ok := r.registry.ForFile(src.Path, []byte(src.Text))
	if !ok {
		result.Skipped = true
		return result, nil
	}
	result.Language = language.Name
	if !language.HasFormatter() {
		result.Skipped = true
		return result, nil
	}

	file := format.NewFile(src.Path, language, src.Text)
	switch {
	case src.Line > 0:
		start := syntax.LineStart(file.Document.Lines(), src.Line)
		if start < 0 {
			return nil, fmt.Errorf("%w: %d", ErrLineOutOfRange, src.Line)
		}
		caret, err := r.driver.AdjustLineIndent(ctx, file, start)
		if err != nil {
			return nil, fmt.Errorf("indent line %d of %s: %w", src.Line, src.Path, err)
		}
		result.Caret = caret
	case src.Range != nil:
		if err := r.driver.ProcessText(ctx, file, src.Range.StartOffset, src.Range.EndOffset); err != nil {
			return nil, fmt.Errorf("format %s: %w", src.Path, err)
		}
	default:
		if err := r.driver.FormatWholeFile(ctx, file); err != nil {
			return nil, fmt.Errorf("format %s: %w", src.Path, err)
		}
	}

	result.Text = file.Text()
	if result.Text == src.Text {
		return result, nil
	}
	result.Changed = true

	diff, err := textedit.UnifiedDiff(src.Path, src.Text, result.Text)
	if err != nil {
		return nil, err
	}
	result.Diff = diff
	return result, nil
}
