package syntax

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is returned by Validate for trees violating structural invariants.
var ErrMalformedTree = errors.New("malformed syntax tree")

// Validate checks the invariants of a stable tree:
//   - parent and sibling links are consistent
//   - leaves have no children and composites carry no literal text
//   - no two whitespace leaves are adjacent in document order
func Validate(root *Node) error {
	if root == nil {
		return nil
	}

	err := Walk(root, func(n *Node) error {
		if n.IsLeaf() && n.FirstChild != nil {
			return fmt.Errorf("%w: leaf %s has children", ErrMalformedTree, n)
		}
		if n.IsComposite() && n.text != "" {
			return fmt.Errorf("%w: composite %s carries text", ErrMalformedTree, n)
		}

		var prev *Node
		for child := n.FirstChild; child != nil; child = child.Next {
			if child.Parent != n {
				return fmt.Errorf("%w: %s has wrong parent", ErrMalformedTree, child)
			}
			if child.Prev != prev {
				return fmt.Errorf("%w: %s has wrong previous sibling", ErrMalformedTree, child)
			}
			prev = child
		}
		if n.LastChild != prev {
			return fmt.Errorf("%w: %s has wrong last child", ErrMalformedTree, n)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var prevLeaf *Node
	for leaf := range root.Leaves() {
		if leaf.IsWhitespace() && prevLeaf.IsWhitespace() {
			return fmt.Errorf("%w: adjacent whitespace %s and %s", ErrMalformedTree, prevLeaf, leaf)
		}
		prevLeaf = leaf
	}

	return nil
}
