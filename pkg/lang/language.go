// Package lang describes the languages reindent can parse and format.
// A Language bundles a parser, a spacing rule between adjacent tokens and an
// optional formatting model builder. Languages without a builder are parsed
// and edited but passed through the formatter unchanged.
package lang

import (
	"github.com/yaklabco/reindent/pkg/block"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// Spacing is the whitespace a language requires between two adjacent tokens.
type Spacing uint8

const (
	// SpacingNone means no whitespace is mandatory.
	SpacingNone Spacing = iota

	// SpacingSpace means at least one space is mandatory.
	SpacingSpace

	// SpacingLineBreak means a line break is mandatory.
	SpacingLineBreak
)

// String returns a human-readable name for the spacing requirement.
func (s Spacing) String() string {
	switch s {
	case SpacingNone:
		return "none"
	case SpacingSpace:
		return "space"
	case SpacingLineBreak:
		return "line-break"
	default:
		return "unknown"
	}
}

// Mandatory returns true if some whitespace is required.
func (s Spacing) Mandatory() bool {
	return s == SpacingSpace || s == SpacingLineBreak
}

// SpacingFunc reports the spacing required between two adjacent leaves.
type SpacingFunc func(left, right *syntax.Node) Spacing

// ParseFunc parses source text into a syntax tree rooted at a file node.
type ParseFunc func(text string) *syntax.Node

// Language describes one language.
type Language struct {
	// Name is the canonical lower-case name, e.g. "brace".
	Name string

	// Aliases are other names the language is known by, including the names
	// go-enry reports for it (matched case-insensitively).
	Aliases []string

	// Extensions are file extensions including the dot, used when detection fails.
	Extensions []string

	// Parse builds a tree from text. Required.
	Parse ParseFunc

	// Spacing reports mandatory whitespace between tokens. May be nil.
	Spacing SpacingFunc

	// Builder builds the formatting model. Nil means no formatter is available.
	Builder block.Builder
}

// HasFormatter returns true if the language registers a formatting model builder.
func (l *Language) HasFormatter() bool {
	return l != nil && l.Builder != nil
}

// SpacingBetween applies the language's spacing rule, defaulting to SpacingNone.
func (l *Language) SpacingBetween(left, right *syntax.Node) Spacing {
	if l == nil || l.Spacing == nil || left == nil || right == nil {
		return SpacingNone
	}
	return l.Spacing(left, right)
}

// ParseText parses text, falling back to a single opaque leaf when no parser is set.
func (l *Language) ParseText(text string) *syntax.Node {
	if l != nil && l.Parse != nil {
		return l.Parse(text)
	}
	root := syntax.NewComposite(syntax.File)
	if text != "" {
		syntax.AppendChild(root, syntax.NewLeaf(syntax.Text, text))
	}
	return root
}
