package syntax

// Copy returns a detached deep copy of n. Metadata travels with every copied node.
func Copy(n *Node) *Node {
	if n == nil {
		return nil
	}

	dup := &Node{
		Kind: n.Kind,
		Type: n.Type,
		Meta: n.Meta,
		text: n.text,
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		AppendChild(dup, Copy(child))
	}
	return dup
}
