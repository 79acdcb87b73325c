// Package syntax provides the concrete syntax tree that reindent edits and formats.
// It defines a lossless tree representation including:
// - Leaf nodes carrying literal source text (whitespace included)
// - Composite nodes deriving their text from their children
// - Copyable per-node metadata used by the editor and the formatter
package syntax

import "strings"

// NodeKind distinguishes leaves from composites.
type NodeKind uint8

const (
	// KindLeaf nodes carry literal text and have no children.
	KindLeaf NodeKind = iota

	// KindComposite nodes derive their text from their children.
	KindComposite
)

// String returns a human-readable name for the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Node is a single node in the syntax tree.
// Nodes form a tree structure with parent/child/sibling relationships.
// The tree exclusively owns its children; a node has at most one parent.
type Node struct {
	// Kind identifies whether this is a leaf or a composite.
	Kind NodeKind

	// Type is the language-level token or element type.
	Type *TokenType

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Meta holds copyable metadata attached to this node.
	Meta Meta

	// text is the literal content of a leaf. Always empty for composites.
	text string
}

// NewLeaf creates a detached leaf of the given type.
func NewLeaf(typ *TokenType, text string) *Node {
	return &Node{
		Kind: KindLeaf,
		Type: typ,
		Meta: newMeta(),
		text: text,
	}
}

// NewWhitespace creates a detached whitespace leaf.
func NewWhitespace(text string) *Node {
	return NewLeaf(Whitespace, text)
}

// NewComposite creates a composite of the given type and appends children in order.
func NewComposite(typ *TokenType, children ...*Node) *Node {
	n := &Node{
		Kind: KindComposite,
		Type: typ,
		Meta: newMeta(),
	}
	for _, child := range children {
		AppendChild(n, child)
	}
	return n
}

// IsLeaf returns true if this node carries literal text.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == KindLeaf
}

// IsComposite returns true if this node derives its text from children.
func (n *Node) IsComposite() bool {
	return n != nil && n.Kind == KindComposite
}

// IsWhitespace returns true if this is a whitespace leaf.
func (n *Node) IsWhitespace() bool {
	return n.IsLeaf() && n.Type.Has(FlagWhitespace)
}

// IsComment returns true if this node is a comment.
func (n *Node) IsComment() bool {
	return n != nil && n.Type.Has(FlagComment)
}

// IsStrongWhitespaceHolder returns true if indentation walks must stop at this node.
func (n *Node) IsStrongWhitespaceHolder() bool {
	return n.IsComposite() && n.Type.Has(FlagStrongWhitespaceHolder)
}

// IsInjection returns true if this node holds content of an embedded foreign language.
func (n *Node) IsInjection() bool {
	return n != nil && n.Type.Has(FlagInjection)
}

// Language returns the language that owns this node's type.
func (n *Node) Language() string {
	if n == nil || n.Type == nil {
		return ""
	}
	return n.Type.Language
}

// LeafText returns the literal text of a leaf, or "" for composites.
func (n *Node) LeafText() string {
	if !n.IsLeaf() {
		return ""
	}
	return n.text
}

// Text returns the source text covered by this node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return n.text
	}

	var sb strings.Builder
	sb.Grow(n.TextLength())
	for leaf := range n.Leaves() {
		sb.WriteString(leaf.text)
	}
	return sb.String()
}

// TextLength returns the length in bytes of the text covered by this node.
func (n *Node) TextLength() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return len(n.text)
	}

	total := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		total += child.TextLength()
	}
	return total
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// String returns a short debugging representation of the node.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	name := "?"
	if n.Type != nil {
		name = n.Type.Name
	}
	if n.IsLeaf() {
		return name + "(" + quoteShort(n.text) + ")"
	}
	return name + "[" + quoteShort(n.Text()) + "]"
}

func quoteShort(s string) string {
	const maxShown = 24
	s = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(s)
	if len(s) > maxShown {
		s = s[:maxShown] + "..."
	}
	return `"` + s + `"`
}
