package syntax

// The functions in this file are raw tree primitives. They keep the
// parent/child/sibling links consistent and do nothing else: no whitespace
// reconciliation, no metadata bookkeeping. Use codeedit.Editor for edits that
// must keep the tree well formed.

// AppendChild appends a child node to a parent.
// A child that already has a parent is detached from it first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	detach(child)

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// PrependChild prepends a child node to a parent.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	detach(child)

	child.Parent = parent
	child.Prev = nil
	child.Next = parent.FirstChild

	if parent.FirstChild != nil {
		parent.FirstChild.Prev = child
	} else {
		parent.LastChild = child
	}

	parent.FirstChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil || sibling == newNode {
		return
	}

	detach(newNode)

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// InsertAfter inserts newNode after sibling.
// sibling must have a parent.
func InsertAfter(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil || sibling == newNode {
		return
	}

	detach(newNode)

	parent := sibling.Parent
	newNode.Parent = parent
	newNode.Prev = sibling
	newNode.Next = sibling.Next

	if sibling.Next != nil {
		sibling.Next.Prev = newNode
	} else {
		parent.LastChild = newNode
	}

	sibling.Next = newNode
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// ReplaceChild replaces oldChild with newChild in the tree.
func ReplaceChild(parent, oldChild, newChild *Node) {
	if parent == nil || oldChild == nil || newChild == nil || oldChild == newChild {
		return
	}

	if oldChild.Parent != parent {
		return
	}

	detach(newChild)

	newChild.Parent = parent
	newChild.Prev = oldChild.Prev
	newChild.Next = oldChild.Next

	if oldChild.Prev != nil {
		oldChild.Prev.Next = newChild
	} else {
		parent.FirstChild = newChild
	}

	if oldChild.Next != nil {
		oldChild.Next.Prev = newChild
	} else {
		parent.LastChild = newChild
	}

	oldChild.Parent = nil
	oldChild.Prev = nil
	oldChild.Next = nil
}

// Range collects the sibling chain first..last (inclusive) by following Next links.
// If last is not reachable from first, the chain ends at the last sibling.
// A nil last means first alone.
func Range(first, last *Node) []*Node {
	if first == nil {
		return nil
	}
	if last == nil {
		last = first
	}

	var nodes []*Node
	for cur := first; cur != nil; cur = cur.Next {
		nodes = append(nodes, cur)
		if cur == last {
			break
		}
	}
	return nodes
}

// Chain links detached nodes as siblings so they can be passed as a range.
// It returns the first and last node of the chain.
func Chain(nodes ...*Node) (*Node, *Node) {
	if len(nodes) == 0 {
		return nil, nil
	}
	for i, n := range nodes {
		detach(n)
		if i > 0 {
			n.Prev = nodes[i-1]
			nodes[i-1].Next = n
		}
	}
	nodes[len(nodes)-1].Next = nil
	return nodes[0], nodes[len(nodes)-1]
}

// AddRange moves the sibling chain first..last under parent, before anchorBefore.
// A nil anchorBefore appends at the end.
func AddRange(parent, first, last, anchorBefore *Node) {
	if parent == nil || first == nil {
		return
	}
	if anchorBefore != nil && anchorBefore.Parent != parent {
		anchorBefore = nil
	}

	for _, n := range Range(first, last) {
		if anchorBefore != nil {
			InsertBefore(anchorBefore, n)
		} else {
			AppendChild(parent, n)
		}
	}
}

// RemoveRange removes the children first..last (inclusive) from parent.
func RemoveRange(parent, first, last *Node) {
	for _, n := range Range(first, last) {
		RemoveChild(parent, n)
	}
}

// detach unlinks a node from its parent, or from a parentless sibling chain.
func detach(n *Node) {
	if n.Parent != nil {
		RemoveChild(n.Parent, n)
		return
	}
	if n.Prev != nil {
		n.Prev.Next = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	}
	n.Prev = nil
	n.Next = nil
}
