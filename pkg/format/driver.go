package format

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/pkg/codeedit"
	"github.com/yaklabco/reindent/pkg/indent"
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// Driver runs the formatting pipeline.
type Driver struct {
	registry       *lang.Registry
	settings       indent.OptionsProvider
	logger         *log.Logger
	pre            []PreProcessor
	post           []PostProcessor
	keepBlankLines int
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger formatting failures are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPreProcessor appends a pre-processor.
func WithPreProcessor(p PreProcessor) Option {
	return func(d *Driver) {
		d.pre = append(d.pre, p)
	}
}

// WithPostProcessor appends a post-processor.
func WithPostProcessor(p PostProcessor) Option {
	return func(d *Driver) {
		d.post = append(d.post, p)
	}
}

// WithKeepBlankLines sets how many consecutive blank lines survive formatting.
func WithKeepBlankLines(n int) Option {
	return func(d *Driver) {
		if n >= 0 {
			d.keepBlankLines = n
		}
	}
}

// NewDriver creates a Driver. A nil registry means lang.DefaultRegistry and
// nil settings mean indent.DefaultOptions for every language.
func NewDriver(registry *lang.Registry, settings indent.OptionsProvider, opts ...Option) *Driver {
	if registry == nil {
		registry = lang.DefaultRegistry
	}
	if settings == nil {
		settings = indent.Fixed(indent.DefaultOptions())
	}

	driver := &Driver{
		registry:       registry,
		settings:       settings,
		logger:         logging.Default(),
		keepBlankLines: DefaultKeepBlankLines,
	}
	for _, opt := range opts {
		opt(driver)
	}
	return driver
}

// Process formats node and returns it, or the node that replaced it.
func (d *Driver) Process(ctx context.Context, file *File, node *syntax.Node) (*syntax.Node, error) {
	r := node.TextRange()
	return d.ProcessRange(ctx, file, node, r.StartOffset, r.EndOffset)
}

// ProcessRange formats [start, end) of the tree holding node and returns
// node. If formatting detached node, the node of the same type now covering
// its start offset is returned instead; when there is none the anchor is lost
// and a fatal edit error is returned.
func (d *Driver) ProcessRange(ctx context.Context, file *File, node *syntax.Node, start, end int) (*syntax.Node, error) {
	if err := ctx.Err(); err != nil {
		return node, err
	}

	language := d.languageOf(file, node)
	if !language.HasFormatter() {
		return node, nil
	}

	anchorType := node.Type
	marker := file.Document.CreateMarker(node.StartOffset())
	defer marker.Dispose()

	r := syntax.NewTextRange(start, end).Clamp(file.Root.TextLength())
	if err := d.run(ctx, file, language, r, rangeOptions{}); err != nil {
		return node, err
	}

	if syntax.Root(node) == file.Root {
		return node, nil
	}
	return recoverAnchor(file, node, anchorType, marker.Offset())
}

// ProcessText commits the document and formats [start, end) of file.
func (d *Driver) ProcessText(ctx context.Context, file *File, start, end int) error {
	return d.processText(ctx, file, start, end, rangeOptions{})
}

// FormatWholeFile commits the document and formats all of file.
func (d *Driver) FormatWholeFile(ctx context.Context, file *File) error {
	return d.processText(ctx, file, 0, file.Document.Len(), rangeOptions{})
}

// FormatWithoutLeadingWhitespace formats [start, end) of file but keeps the
// whitespace in front of the first token of the range.
func (d *Driver) FormatWithoutLeadingWhitespace(ctx context.Context, file *File, start, end int) error {
	return d.processText(ctx, file, start, end, rangeOptions{keepLeading: true})
}

// FormatAroundRange formats the whitespace touching [start, end), typically
// a freshly inserted node, without reindenting the rest of the file.
func (d *Driver) FormatAroundRange(ctx context.Context, file *File, start, end int) error {
	return d.processText(ctx, file, start, end, rangeOptions{boundariesOnly: true})
}

// AdjustLineIndent reindents the line holding offset. It returns the offset
// of the first non-blank character of the line when offset was inside the
// line's indentation, otherwise offset moved through the edit.
func (d *Driver) AdjustLineIndent(ctx context.Context, file *File, offset int) (int, error) {
	if err := ctx.Err(); err != nil {
		return offset, err
	}
	file.Commit()

	doc := file.Document
	line := doc.LineAt(offset)
	if line == 0 {
		return offset, nil
	}
	lineStart := syntax.LineStart(doc.Lines(), line)
	inIndent := strings.TrimLeft(doc.Text()[lineStart:offset], " \t") == ""

	marker := doc.CreateMarker(offset)
	defer marker.Dispose()

	if err := d.processText(ctx, file, lineStart, lineStart, rangeOptions{}); err != nil {
		return offset, err
	}
	if !inIndent {
		return marker.Offset(), nil
	}

	text := doc.Text()
	lineStart = syntax.LineStart(doc.Lines(), doc.LineAt(marker.Offset()))
	return lineStart + len(text[lineStart:]) - len(strings.TrimLeft(text[lineStart:], " \t")), nil
}

func (d *Driver) processText(ctx context.Context, file *File, start, end int, opts rangeOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if file.Commit() {
		d.logger.Debug("re-parsed file from document", logging.FieldPath, file.Path)
	}

	if !file.Language.HasFormatter() {
		return nil
	}

	r := syntax.NewTextRange(start, end).Clamp(file.Root.TextLength())
	return d.run(ctx, file, file.Language, r, opts)
}

// run is the pipeline shared by every entry point.
func (d *Driver) run(ctx context.Context, file *File, language *lang.Language, r syntax.TextRange, opts rangeOptions) error {
	for _, p := range d.pre {
		r = p.PreProcess(file, r)
	}

	engine := &Engine{
		registry:       d.registry,
		calc:           indent.New(d.settings.IndentOptions(language.Name)),
		keepBlankLines: d.keepBlankLines,
		logger:         d.logger,
	}
	model := language.Builder.Build(file.Root)
	before := file.Root.TextLength()

	if _, err := engine.Format(file, model, r, opts); err != nil {
		if !errors.Is(err, ErrOperationFailed) {
			return err
		}
		d.logger.Error("formatting failed", logging.FieldPath, file.Path, logging.FieldRange, r, logging.FieldError, err)
	}
	r.EndOffset = max(r.StartOffset, r.EndOffset+file.Root.TextLength()-before)

	for _, p := range d.post {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, err := p.PostProcess(ctx, file, r)
		if err != nil {
			if !errors.Is(err, ErrOperationFailed) {
				return err
			}
			d.logger.Error("post-processing failed", logging.FieldPath, file.Path, logging.FieldError, err)
			continue
		}
		r = next
	}
	return nil
}

func (d *Driver) languageOf(file *File, node *syntax.Node) *lang.Language {
	if language, ok := d.registry.ForNode(node); ok {
		return language
	}
	return file.Language
}

// recoverAnchor finds the node that took the place of a detached anchor: the
// closest ancestor of the leaf at offset with the anchor's type.
func recoverAnchor(file *File, anchor *syntax.Node, anchorType *syntax.TokenType, offset int) (*syntax.Node, error) {
	for cur := syntax.LeafAt(file.Root, offset); cur != nil; cur = cur.Parent {
		if cur.Type == anchorType {
			return cur, nil
		}
	}
	return nil, &codeedit.FatalEditError{Op: "format", Node: anchor, Err: codeedit.ErrAnchorLost}
}
