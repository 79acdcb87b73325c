package codeedit

import (
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// Reconcile fixes up the whitespace between two leaves that became adjacent
// through an edit. left is nil at the start of the file and right is nil at
// its end. It returns the leaf now on the left side of the boundary.
//
// The rules, in order:
//   - no right leaf: nothing to do
//   - no left leaf: right is marked to reformat before
//   - left is a dangling trailing whitespace and normalizeTrailing is set:
//     left is detached and right takes over as the left side
//   - both whitespace: they are merged, the side with strictly more line
//     breaks wins, left wins equal nonzero counts and texts without line
//     breaks are concatenated
//   - exactly one whitespace, left not whitespace or forced: that whitespace
//     is replaced by a fresh copy marked to reformat
//   - no whitespace: a mandatory space or line break is inserted, otherwise
//     right is marked to reformat before
func (e *Editor) Reconcile(left, right *syntax.Node, forceReformat, normalizeTrailing bool) *syntax.Node {
	if right == nil {
		return left
	}

	right.Meta.ReformatBefore = false
	if left == nil {
		right.Meta.ReformatBefore = true
		return right
	}

	leftSpace := left.IsWhitespace()
	rightSpace := right.IsWhitespace()

	switch {
	case leftSpace && left.Next == nil && normalizeTrailing:
		if left.Parent != nil {
			syntax.RemoveChild(left.Parent, left)
		}
		e.Reconcile(nil, right, false, false)
		return right

	case leftSpace && rightSpace:
		return e.merge(left, right, forceReformat)

	case leftSpace != rightSpace && (!leftSpace || forceReformat):
		if rightSpace {
			e.freeze(right)
			return left
		}
		return e.freeze(left)

	case !leftSpace && !rightSpace:
		e.separate(left, right)
	}

	return left
}

// merge collapses two adjacent whitespace leaves into one and returns the survivor.
func (e *Editor) merge(left, right *syntax.Node, forceReformat bool) *syntax.Node {
	leftText := left.LeafText()
	rightText := right.LeafText()
	leftBreaks := syntax.BlankLines(leftText)
	rightBreaks := syntax.BlankLines(rightText)

	merged := leftText
	rightWins := false
	switch {
	case leftBreaks == 0 && rightBreaks == 0:
		merged = leftText + rightText
	case rightBreaks > leftBreaks:
		merged = rightText
		rightWins = true
	}

	if right.Parent != nil {
		syntax.RemoveChild(right.Parent, right)
	}

	if !rightWins && !forceReformat && merged == leftText {
		return left
	}

	fresh := syntax.NewWhitespace(merged)
	fresh.Meta = left.Meta
	fresh.Meta.ReformatBefore = forceReformat
	if left.Parent != nil {
		syntax.ReplaceChild(left.Parent, left, fresh)
	}

	e.logger.Debug("merged whitespace", "left", leftText, "right", rightText, "result", merged)
	return fresh
}

// freeze replaces a whitespace leaf with a fresh copy marked for reformatting.
func (e *Editor) freeze(space *syntax.Node) *syntax.Node {
	fresh := syntax.NewWhitespace(space.LeafText())
	fresh.Meta = space.Meta
	fresh.Meta.ReformatBefore = true
	if space.Parent != nil {
		syntax.ReplaceChild(space.Parent, space, fresh)
	}
	return fresh
}

// separate inserts the whitespace the language requires between two adjacent
// non-whitespace leaves, or marks right for the formatter. Leaves that are
// not adjacent are left alone.
func (e *Editor) separate(left, right *syntax.Node) {
	if syntax.NextLeaf(left) != right {
		return
	}

	spacing := e.registry.SpacingBetween(left, right)
	if !spacing.Mandatory() || right.Parent == nil {
		right.Meta.ReformatBefore = true
		return
	}

	text := " "
	if spacing == lang.SpacingLineBreak {
		calc := e.calculator(left)
		text = "\n" + calc.Render(calc.Compute(left, false))
	}

	space := syntax.NewWhitespace(text)
	space.Meta.Generated = true
	syntax.InsertBefore(syntax.OutermostStart(right, left), space)

	e.logger.Debug("inserted mandatory whitespace", "spacing", spacing, "left", left, "right", right)
}
