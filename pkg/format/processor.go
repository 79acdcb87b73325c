package format

import (
	"context"
	"strings"

	"github.com/yaklabco/reindent/pkg/syntax"
)

// PreProcessor adjusts the range about to be formatted.
type PreProcessor interface {
	PreProcess(file *File, r syntax.TextRange) syntax.TextRange
}

// PostProcessor runs after the formatter and returns the range it leaves
// behind for the next post-processor.
type PostProcessor interface {
	PostProcess(ctx context.Context, file *File, r syntax.TextRange) (syntax.TextRange, error)
}

// PreProcessorFunc adapts a function to the PreProcessor interface.
type PreProcessorFunc func(file *File, r syntax.TextRange) syntax.TextRange

// PreProcess implements PreProcessor.
func (f PreProcessorFunc) PreProcess(file *File, r syntax.TextRange) syntax.TextRange {
	return f(file, r)
}

// PostProcessorFunc adapts a function to the PostProcessor interface.
type PostProcessorFunc func(ctx context.Context, file *File, r syntax.TextRange) (syntax.TextRange, error)

// PostProcess implements PostProcessor.
func (f PostProcessorFunc) PostProcess(ctx context.Context, file *File, r syntax.TextRange) (syntax.TextRange, error) {
	return f(ctx, file, r)
}

// ExpandToLines widens a range to whole lines so partially selected lines
// are reindented as a whole.
type ExpandToLines struct{}

// PreProcess implements PreProcessor.
func (ExpandToLines) PreProcess(file *File, r syntax.TextRange) syntax.TextRange {
	lines := file.Document.Lines()
	if len(lines) == 0 {
		return r
	}

	expanded := r
	if line := file.Document.LineAt(r.StartOffset); line > 0 {
		expanded.StartOffset = lines[line-1].StartOffset
	}
	if line := file.Document.LineAt(r.EndOffset); line > 0 {
		expanded.EndOffset = lines[line-1].NewlineStart
	}
	return expanded
}

// EnsureFinalNewline terminates a non-empty file with a line break when the
// formatted range reaches its end.
type EnsureFinalNewline struct{}

// PostProcess implements PostProcessor.
func (EnsureFinalNewline) PostProcess(_ context.Context, file *File, r syntax.TextRange) (syntax.TextRange, error) {
	length := file.Root.TextLength()
	if length == 0 || r.EndOffset < length {
		return r, nil
	}

	fix := change{text: "\n"}
	if last := syntax.LastLeaf(file.Root); last.IsWhitespace() {
		text := strings.TrimRight(last.LeafText(), " \t")
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if text == last.LeafText() {
			return r, nil
		}
		fix = change{space: last, text: text}
	}

	if err := file.applyChanges([]change{fix}); err != nil {
		return r, err
	}
	r.EndOffset = file.Root.TextLength()
	return r, nil
}
