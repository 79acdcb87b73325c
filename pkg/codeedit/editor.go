// Package codeedit edits syntax trees while keeping their whitespace well formed.
//
// Every operation wraps a raw tree primitive from package syntax with the
// bookkeeping edits need: the indentation of moved nodes is captured before
// they move, foreign-language injections are refused unless approved, and
// the whitespace at both boundaries of the edited range is reconciled so that
// no two whitespace leaves end up adjacent.
//
// Editors are not safe for concurrent use on the same tree.
package codeedit

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/pkg/indent"
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// Editor performs whitespace-aware tree edits.
type Editor struct {
	registry *lang.Registry
	settings indent.OptionsProvider
	logger   *log.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Editor. A nil registry means lang.DefaultRegistry and nil
// settings mean indent.DefaultOptions for every language.
func New(registry *lang.Registry, settings indent.OptionsProvider, opts ...Option) *Editor {
	if registry == nil {
		registry = lang.DefaultRegistry
	}
	if settings == nil {
		settings = indent.Fixed(indent.DefaultOptions())
	}

	editor := &Editor{
		registry: registry,
		settings: settings,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(editor)
	}
	return editor
}

// AddChild inserts child under parent before anchorBefore (nil appends).
func (e *Editor) AddChild(parent, child, anchorBefore *syntax.Node) (*syntax.Node, error) {
	return e.AddChildren(parent, child, child, anchorBefore)
}

// AddChildren inserts the sibling chain first..last under parent before
// anchorBefore and reconciles the whitespace at both ends. It returns the
// first inserted node, or the leaf that took its place when it was a
// whitespace leaf merged or refreshed during reconciliation.
//
// When anchorBefore is a comment preceded by whitespace, the range goes in
// front of that whitespace so the comment keeps its leading spacing.
func (e *Editor) AddChildren(parent, first, last, anchorBefore *syntax.Node) (*syntax.Node, error) {
	if parent == nil || first == nil {
		return first, nil
	}

	nodes := syntax.Range(first, last)
	if err := checkInjections("add", nodes...); err != nil {
		return nil, err
	}
	for _, node := range nodes {
		e.saveIndent(node)
	}

	if anchorBefore != nil && anchorBefore.IsComment() && anchorBefore.Prev.IsWhitespace() {
		anchorBefore = anchorBefore.Prev
	}

	last = nodes[len(nodes)-1]
	syntax.AddRange(parent, first, last, anchorBefore)

	if firstLeaf := syntax.FirstLeaf(first); firstLeaf != nil {
		prevLeaf := syntax.PrevLeaf(first)
		survivor := e.Reconcile(prevLeaf, firstLeaf, isFormattingRequired(prevLeaf, first), false)
		if first.Parent == nil {
			first = successor(survivor)
		}
		if last.Parent == nil {
			last = successor(survivor)
		}
	}

	if lastLeaf := syntax.LastLeaf(last); lastLeaf != nil {
		survivor := e.Reconcile(lastLeaf, syntax.NextLeaf(lastLeaf), true, false)
		if first.Parent == nil {
			first = survivor
		}
	}

	return first, nil
}

// RemoveChild removes child from parent.
func (e *Editor) RemoveChild(parent, child *syntax.Node) error {
	return e.RemoveChildren(parent, child, child)
}

// RemoveChildren removes the sibling chain first..last from parent and
// reconciles the leaves that become adjacent.
func (e *Editor) RemoveChildren(parent, first, last *syntax.Node) error {
	if parent == nil || first == nil {
		return nil
	}

	nodes := syntax.Range(first, last)
	if err := checkInjections("remove", nodes...); err != nil {
		return err
	}

	last = nodes[len(nodes)-1]
	trailing := last.TextRange().EndOffset == parent.TextRange().EndOffset
	force := needToForceReformat(parent, first, last)
	e.saveIndent(first)

	prevLeaf := syntax.PrevLeaf(first)
	nextLeaf := syntax.NextLeaf(last)
	syntax.RemoveRange(parent, first, last)

	e.Reconcile(prevLeaf, nextLeaf, force, trailing)
	return nil
}

// ReplaceChild replaces oldChild with newChild and reconciles both boundaries.
func (e *Editor) ReplaceChild(parent, oldChild, newChild *syntax.Node) error {
	if parent == nil || oldChild == nil || newChild == nil || oldChild.Parent != parent {
		return nil
	}

	if err := checkInjections("replace", oldChild, newChild); err != nil {
		return err
	}
	e.saveIndent(oldChild)
	e.saveIndent(newChild)

	oldHadLeaves := syntax.FirstLeaf(oldChild) != nil
	prevToken := syntax.PrevLeaf(oldChild)
	syntax.ReplaceChild(parent, oldChild, newChild)

	firstLeaf := syntax.FirstLeaf(newChild)
	if firstLeaf == nil {
		if oldHadLeaves && prevToken == nil && newChild.Next.IsWhitespace() {
			syntax.RemoveChild(parent, newChild.Next)
		}
		e.Reconcile(prevToken, syntax.NextLeaf(newChild), isFormattingRequired(prevToken, newChild), false)
		return nil
	}

	prevLeaf := syntax.PrevLeaf(newChild)
	survivor := e.Reconcile(prevLeaf, firstLeaf, isFormattingRequired(prevLeaf, newChild), false)

	// A whitespace replacement is detached when it was merged or refreshed.
	anchor := newChild
	if anchor.Parent == nil {
		anchor = successor(survivor)
	}
	nextLeaf := syntax.NextLeaf(anchor)
	if nextLeaf != nil && !syntax.ContainsLineBreak(nextLeaf.LeafText()) {
		e.Reconcile(syntax.PrevLeaf(nextLeaf), nextLeaf, false, false)
	}
	return nil
}

// successor returns the leaf that took the place of a whitespace leaf
// detached while being reconciled with its left neighbour. survivor is the
// left side returned by Reconcile: the merged whitespace itself, or the
// non-whitespace leaf in front of a refreshed copy.
func successor(survivor *syntax.Node) *syntax.Node {
	if survivor.IsWhitespace() {
		return survivor
	}
	return syntax.NextLeaf(survivor)
}

// saveIndent captures the current indentation of a node about to move,
// unless it is generated or already captured.
func (e *Editor) saveIndent(node *syntax.Node) {
	if node == nil || node.Meta.Generated || node.Meta.HasOldIndent() {
		return
	}
	node.Meta.SetOldIndent(e.calculator(node).Compute(node, false))
}

func (e *Editor) calculator(node *syntax.Node) *indent.Calculator {
	return indent.New(e.settings.IndentOptions(node.Language()))
}

// isFormattingRequired reports whether prevLeaf, or one of its ancestors,
// is the previous sibling of first or of an ancestor of first covering the
// same text range.
func isFormattingRequired(prevLeaf, first *syntax.Node) bool {
	if prevLeaf == nil || first == nil {
		return false
	}

	firstRange := first.TextRange()
	for node := first; node != nil; node = node.Parent {
		if node != first && !node.TextRange().Equal(firstRange) {
			break
		}
		for cur := prevLeaf; cur != nil; cur = cur.Parent {
			if cur.Next == node {
				return true
			}
		}
	}
	return false
}

// needToForceReformat reports whether removing first..last from parent must
// force the boundary to be reformatted: the range does not start the parent,
// or it makes up all of the parent's non-blank text and the same holds for
// the parent within its own parent.
func needToForceReformat(parent, first, last *syntax.Node) bool {
	if parent == nil || first.StartOffset() != parent.StartOffset() {
		return true
	}

	var removed strings.Builder
	for _, node := range syntax.Range(first, last) {
		removed.WriteString(node.Text())
	}

	if len(strings.TrimSpace(parent.Text())) != len(strings.TrimSpace(removed.String())) {
		return false
	}
	return needToForceReformat(parent.Parent, parent, parent)
}
