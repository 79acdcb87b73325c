package brace

import (
	"github.com/yaklabco/reindent/pkg/block"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// ContinuationIndent is the number of indent units added to the wrapped
// lines of a statement.
const ContinuationIndent = 2

// Builder builds the brace formatting model: statement and comment contents
// of a code block are indented one unit past the block's braces, and wrapped
// statement lines get ContinuationIndent more.
type Builder struct{}

// Build implements block.Builder.
func (Builder) Build(root *syntax.Node) *block.Block {
	model := block.New(root, 0)
	addItems(model, root, 0)
	return model
}

// addItems adds the blocks of a file's or code block's children.
func addItems(parent *block.Block, container *syntax.Node, indent int) {
	for child := container.FirstChild; child != nil; child = child.Next {
		switch {
		case child.Type == Statement:
			parent.Add(statementBlock(child, indent))
		case child.IsComment():
			parent.Add(block.New(child, indent))
		}
	}
}

func statementBlock(stmt *syntax.Node, indent int) *block.Block {
	b := block.New(stmt, indent)
	b.Continuation = ContinuationIndent

	for child := stmt.FirstChild; child != nil; child = child.Next {
		switch {
		case child.Type == CodeBlock:
			b.Add(codeBlock(child))
		case child.Type == Identifier && isContinuationKeyword(child.LeafText()) && followsBlock(child):
			b.Add(block.New(child, 0))
		}
	}

	return b
}

func codeBlock(node *syntax.Node) *block.Block {
	b := block.New(node, 0)
	addItems(b, node, 1)
	return b
}

// followsBlock reports whether the previous significant sibling is a code block.
func followsBlock(n *syntax.Node) bool {
	prev := n.Prev
	for prev != nil && isTrivia(prev.Type) {
		prev = prev.Prev
	}
	return prev != nil && prev.Type == CodeBlock
}
