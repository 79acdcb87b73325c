package brace

import (
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// SpacingBetween reports the whitespace required between two adjacent brace leaves.
func SpacingBetween(left, right *syntax.Node) lang.Spacing {
	switch {
	case left.Type == LineComment:
		return lang.SpacingLineBreak

	case left.Type == Semicolon && endsStatement(left):
		return lang.SpacingLineBreak

	case left.Type == LBrace && isBody(left.Parent):
		return lang.SpacingLineBreak

	case right.Type == RBrace && isBody(right.Parent):
		return lang.SpacingLineBreak

	case left.Type == RBrace && left.Parent != nil && left.Parent.Type == CodeBlock:
		return afterBlock(right)

	case right.Type == LBrace:
		return lang.SpacingSpace

	case isWordLike(left) && isWordLike(right):
		return lang.SpacingSpace
	}

	return lang.SpacingNone
}

func afterBlock(right *syntax.Node) lang.Spacing {
	switch right.Type {
	case Semicolon, Comma, RParen, RBracket, Operator:
		return lang.SpacingNone
	case Identifier:
		if isContinuationKeyword(right.LeafText()) {
			return lang.SpacingSpace
		}
	}
	return lang.SpacingLineBreak
}

// endsStatement reports whether a semicolon terminates its statement.
func endsStatement(semicolon *syntax.Node) bool {
	parent := semicolon.Parent
	return parent != nil && parent.Type == Statement && parent.LastChild == semicolon
}

// isBody reports whether a code block holds statements rather than an
// initializer list. Empty blocks are not bodies.
func isBody(block *syntax.Node) bool {
	if block == nil || block.Type != CodeBlock {
		return false
	}
	for child := block.FirstChild; child != nil; child = child.Next {
		if child.Type != Statement {
			continue
		}
		last := child.LastChild
		for last != nil && isTrivia(last.Type) {
			last = last.Prev
		}
		if last != nil && (last.Type == Semicolon || last.Type == CodeBlock) {
			return true
		}
	}
	return false
}

func isWordLike(n *syntax.Node) bool {
	switch n.Type {
	case Identifier, Number, String, Char, BlockComment:
		return true
	}
	return false
}

func isContinuationKeyword(text string) bool {
	switch text {
	case "else", "catch", "finally", "while":
		return true
	}
	return false
}
