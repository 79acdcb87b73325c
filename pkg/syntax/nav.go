package syntax

// FirstLeaf returns the first leaf in n's subtree, or nil if it has none.
func FirstLeaf(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if leaf := FirstLeaf(child); leaf != nil {
			return leaf
		}
	}
	return nil
}

// LastLeaf returns the last leaf in n's subtree, or nil if it has none.
func LastLeaf(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return n
	}
	for child := n.LastChild; child != nil; child = child.Prev {
		if leaf := LastLeaf(child); leaf != nil {
			return leaf
		}
	}
	return nil
}

// PrevLeaf returns the leaf preceding n's subtree in document order.
func PrevLeaf(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.Prev; sib != nil; sib = sib.Prev {
			if leaf := LastLeaf(sib); leaf != nil {
				return leaf
			}
		}
	}
	return nil
}

// NextLeaf returns the leaf following n's subtree in document order.
func NextLeaf(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.Next; sib != nil; sib = sib.Next {
			if leaf := FirstLeaf(sib); leaf != nil {
				return leaf
			}
		}
	}
	return nil
}

// Root returns the topmost ancestor of n (n itself when detached).
func Root(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// IsAncestor returns true if ancestor is n or one of n's ancestors.
func IsAncestor(ancestor, n *Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// StartOffset returns the offset of n's first character relative to its root.
func (n *Node) StartOffset() int {
	offset := 0
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.Prev; sib != nil; sib = sib.Prev {
			offset += sib.TextLength()
		}
	}
	return offset
}

// TextRange returns the half-open range n covers relative to its root.
func (n *Node) TextRange() TextRange {
	start := n.StartOffset()
	return TextRange{StartOffset: start, EndOffset: start + n.TextLength()}
}

// LeafAt returns the leaf of root containing offset.
// An offset equal to the text length yields the last leaf; nil if out of range.
func LeafAt(root *Node, offset int) *Node {
	if root == nil || offset < 0 {
		return nil
	}
	if offset == root.TextLength() {
		return LastLeaf(root)
	}

	pos := 0
	for leaf := range root.Leaves() {
		end := pos + len(leaf.text)
		if offset >= pos && offset < end {
			return leaf
		}
		pos = end
	}
	return nil
}

// OutermostStart climbs from leaf to the highest ancestor that starts with
// it and does not contain other. Whitespace inserted before the result lands
// between the two subtrees rather than inside the one holding leaf.
func OutermostStart(leaf, other *Node) *Node {
	node := leaf
	for node.Prev == nil && node.Parent != nil && !IsAncestor(node.Parent, other) {
		node = node.Parent
	}
	return node
}
