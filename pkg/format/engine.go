package format

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/reindent/pkg/block"
	"github.com/yaklabco/reindent/pkg/indent"
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// DefaultKeepBlankLines is the number of blank lines kept between tokens.
const DefaultKeepBlankLines = 2

// Engine derives whitespace from a formatting model. It only ever rewrites
// whitespace: the non-whitespace text of a file is never changed.
type Engine struct {
	registry       *lang.Registry
	calc           *indent.Calculator
	keepBlankLines int
	logger         *log.Logger
}

// rangeOptions controls one Engine run.
type rangeOptions struct {
	// keepLeading leaves the whitespace at the start of the range alone.
	keepLeading bool

	// boundariesOnly restricts the run to the leaves touching either end of
	// the range.
	boundariesOnly bool
}

func (o rangeOptions) skip(start, end int, r syntax.TextRange) bool {
	if !o.boundariesOnly {
		return false
	}
	touches := func(offset int) bool { return start <= offset && offset <= end }
	return !touches(r.StartOffset) && !touches(r.EndOffset)
}

// Format rewrites the whitespace of file within r according to model and
// clears the reformat marks of the leaves in r. It returns the number of
// whitespace edits made.
func (e *Engine) Format(file *File, model *block.Block, r syntax.TextRange, opts rangeOptions) (int, error) {
	levels := block.Levels(model)

	var changes []change
	var marked []*syntax.Node
	pos := 0
	for leaf := range file.Root.Leaves() {
		start := pos
		pos += len(leaf.LeafText())

		if start > r.EndOffset {
			break
		}
		if pos < r.StartOffset || opts.skip(start, pos, r) {
			continue
		}
		if leaf.Meta.ReformatBefore {
			marked = append(marked, leaf)
		}
		if insideInjection(leaf) {
			continue
		}

		if leaf.IsWhitespace() {
			if opts.keepLeading && start <= r.StartOffset {
				continue
			}
			if text, ok := e.whitespace(leaf, levels); ok {
				changes = append(changes, change{space: leaf, text: text})
			}
			continue
		}

		if text, ok := e.missing(leaf, levels); ok && start >= r.StartOffset {
			changes = append(changes, change{before: leaf, text: text})
		}
	}

	if err := file.applyChanges(changes); err != nil {
		return 0, err
	}
	for _, leaf := range marked {
		leaf.Meta.ReformatBefore = false
	}

	e.logger.Debug("formatted range", "range", r, "edits", len(changes))
	return len(changes), nil
}

// whitespace computes the replacement text of a whitespace leaf. ok is false
// when the leaf is already right.
func (e *Engine) whitespace(space *syntax.Node, levels map[*syntax.Node]int) (string, bool) {
	text := space.LeafText()
	prev := syntax.PrevLeaf(space)
	next := syntax.NextLeaf(space)
	breaks := syntax.BlankLines(text)
	newline := lineSeparator(text)

	var want string
	switch {
	case prev == nil:
		want = ""
	case next == nil:
		if breaks > 0 {
			want = newline
		}
	default:
		spacing := e.registry.SpacingBetween(prev, next)
		if breaks == 0 && spacing == lang.SpacingLineBreak {
			breaks = 1
		}
		if breaks == 0 {
			want = text
			if spacing == lang.SpacingSpace && (space.Meta.ReformatBefore || next.Meta.ReformatBefore || space.Meta.Generated) {
				want = " "
			}
			break
		}

		level, known := levels[next]
		if !known {
			return "", false
		}
		breaks = min(breaks, e.keepBlankLines+1)
		want = strings.Repeat(newline, breaks) + e.calc.Fill(indent.Indent{Level: level})
	}

	return want, want != text
}

// missing computes the whitespace to insert in front of a leaf that directly
// follows another non-whitespace leaf, when the language requires some.
func (e *Engine) missing(leaf *syntax.Node, levels map[*syntax.Node]int) (string, bool) {
	prev := syntax.PrevLeaf(leaf)
	if prev == nil || prev.IsWhitespace() || insideInjection(prev) {
		return "", false
	}

	switch e.registry.SpacingBetween(prev, leaf) {
	case lang.SpacingSpace:
		return " ", true
	case lang.SpacingLineBreak:
		return "\n" + e.calc.Fill(indent.Indent{Level: levels[leaf]}), true
	default:
		return "", false
	}
}

func insideInjection(n *syntax.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.IsInjection() {
			return true
		}
	}
	return false
}

func lineSeparator(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
