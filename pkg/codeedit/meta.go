package codeedit

import "github.com/yaklabco/reindent/pkg/syntax"

// IsNodeGenerated returns true if the node was synthesized rather than parsed.
func IsNodeGenerated(node *syntax.Node) bool {
	return node != nil && node.Meta.Generated
}

// SetNodeGenerated marks or unmarks a single node as generated.
func SetNodeGenerated(node *syntax.Node, generated bool) {
	if node != nil {
		node.Meta.Generated = generated
	}
}

// SetNodeGeneratedRecursively marks a node and its whole subtree.
func SetNodeGeneratedRecursively(node *syntax.Node, generated bool) {
	//nolint:errcheck // The callback never fails.
	syntax.Walk(node, func(n *syntax.Node) error {
		n.Meta.Generated = generated
		return nil
	})
}

// OldIndentation returns the indentation captured before the node was moved,
// or -1 when none was captured.
func OldIndentation(node *syntax.Node) int {
	if node == nil {
		return -1
	}
	return node.Meta.OldIndent()
}

// SetOldIndentation records an encoded indentation. A negative value clears it.
func SetOldIndentation(node *syntax.Node, encoded int) {
	if node != nil {
		node.Meta.SetOldIndent(encoded)
	}
}

// IsMarkedToReformatBefore returns true if the formatter must re-derive the
// whitespace before node.
func IsMarkedToReformatBefore(node *syntax.Node) bool {
	return node != nil && node.Meta.ReformatBefore
}

// MarkToReformatBefore sets or clears the reformat-before flag.
func MarkToReformatBefore(node *syntax.Node, mark bool) {
	if node != nil {
		node.Meta.ReformatBefore = mark
	}
}

// ApproveInjection allows generic edits to touch an injection node.
func ApproveInjection(node *syntax.Node) {
	if node != nil {
		node.Meta.InjectionApproved = true
	}
}
