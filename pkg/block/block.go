// Package block defines the formatting model a language builds over its syntax tree.
package block

import "github.com/yaklabco/reindent/pkg/syntax"

// Block is one node of a formatting model.
type Block struct {
	// Node is the syntax node the block covers.
	Node *syntax.Node

	// Indent is the number of indent units relative to the parent block.
	Indent int

	// Continuation is the number of extra indent units for lines that start
	// inside the block but not at its first leaf.
	Continuation int

	// Children are nested blocks, in document order.
	Children []*Block
}

// New creates a block over node with the given relative indent.
func New(node *syntax.Node, indent int) *Block {
	return &Block{Node: node, Indent: indent}
}

// Add appends child blocks and returns b for chaining.
func (b *Block) Add(children ...*Block) *Block {
	b.Children = append(b.Children, children...)
	return b
}

// Builder builds the formatting model of a tree.
type Builder interface {
	Build(root *syntax.Node) *Block
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(root *syntax.Node) *Block

// Build implements Builder.
func (f BuilderFunc) Build(root *syntax.Node) *Block {
	return f(root)
}

// Levels resolves the absolute indent level of every leaf covered by model.
//
// The first leaf of a block gets the block's level; other leaves get the
// level plus the block's continuation. Nested blocks override their parents.
func Levels(model *Block) map[*syntax.Node]int {
	levels := make(map[*syntax.Node]int)
	assignLevels(model, 0, levels)
	return levels
}

func assignLevels(b *Block, parentLevel int, levels map[*syntax.Node]int) {
	if b == nil || b.Node == nil {
		return
	}

	level := parentLevel + b.Indent
	first := syntax.FirstLeaf(b.Node)
	for leaf := range b.Node.Leaves() {
		if leaf == first {
			levels[leaf] = level
		} else {
			levels[leaf] = level + b.Continuation
		}
	}

	for _, child := range b.Children {
		assignLevels(child, level, levels)
	}
}
