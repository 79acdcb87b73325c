package codeedit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/reindent/pkg/syntax"
)

// ErrNotWhitespace is returned by SplitWhitespace for non-whitespace leaves.
var ErrNotWhitespace = errors.New("node is not a whitespace leaf")

// CreateLineFeed returns a detached, generated "\n" whitespace leaf.
func CreateLineFeed() *syntax.Node {
	leaf := syntax.NewWhitespace("\n")
	leaf.Meta.Generated = true
	return leaf
}

// SplitWhitespace splits a whitespace leaf at offset (relative to the leaf)
// and inserts marker between the halves. Empty halves are dropped. The tree
// is only stable again once the marker is removed with RemoveChild.
func SplitWhitespace(leaf *syntax.Node, offset int, marker *syntax.Node) error {
	if !leaf.IsWhitespace() {
		return fmt.Errorf("split %s: %w", leaf, ErrNotWhitespace)
	}
	text := leaf.LeafText()
	if offset < 0 || offset > len(text) {
		return fmt.Errorf("split %s: offset %d out of range [0, %d]", leaf, offset, len(text))
	}
	if leaf.Parent == nil {
		return fmt.Errorf("split %s: leaf is detached", leaf)
	}

	var parts []*syntax.Node
	if offset > 0 {
		before := syntax.NewWhitespace(text[:offset])
		before.Meta = leaf.Meta
		parts = append(parts, before)
	}
	parts = append(parts, marker)
	if offset < len(text) {
		parts = append(parts, syntax.NewWhitespace(text[offset:]))
	}

	parent := leaf.Parent
	anchor := leaf.Next
	syntax.RemoveChild(parent, leaf)
	first, last := syntax.Chain(parts...)
	syntax.AddRange(parent, first, last, anchor)
	return nil
}

// IsLineToBeIndented reports whether the line containing offset starts with
// indentation a formatter may change: only spaces and tabs precede offset on
// its line, and the line does not start inside a multi-line token such as a
// block comment or a string.
func IsLineToBeIndented(root *syntax.Node, offset int) bool {
	if root == nil || offset < 0 || offset > root.TextLength() {
		return false
	}

	text := root.Text()
	lineStart := strings.LastIndexAny(text[:offset], "\n\r") + 1
	if strings.TrimLeft(text[lineStart:offset], " \t") != "" {
		return false
	}
	if lineStart == 0 {
		return true
	}

	leaf := syntax.LeafAt(root, lineStart)
	if leaf == nil {
		return false
	}
	return leaf.IsWhitespace() || leaf.StartOffset() == lineStart
}
