// Package brace implements the C-family languages (Java, C, C++, C#,
// JavaScript, TypeScript) with one shared lexer, a statement-level parser,
// a spacing rule and a block-indent formatting model.
//
// The parser does not try to understand declarations or expressions. It only
// recovers the structure indentation depends on: statements, code blocks and
// the keywords that continue a statement after a block.
package brace

import (
	"github.com/yaklabco/reindent/pkg/lang"
	"github.com/yaklabco/reindent/pkg/syntax"
)

// Name is the token-type language of every brace node.
const Name = "brace"

// Token and element types.
//
//nolint:gochecknoglobals // Token types are compared by identity.
var (
	Identifier   = syntax.NewTokenType(Name, "IDENTIFIER", 0)
	Number       = syntax.NewTokenType(Name, "NUMBER", 0)
	String       = syntax.NewTokenType(Name, "STRING", 0)
	Char         = syntax.NewTokenType(Name, "CHAR", 0)
	LineComment  = syntax.NewTokenType(Name, "LINE_COMMENT", syntax.FlagComment)
	BlockComment = syntax.NewTokenType(Name, "BLOCK_COMMENT", syntax.FlagComment)
	LBrace       = syntax.NewTokenType(Name, "LBRACE", 0)
	RBrace       = syntax.NewTokenType(Name, "RBRACE", 0)
	LParen       = syntax.NewTokenType(Name, "LPAREN", 0)
	RParen       = syntax.NewTokenType(Name, "RPAREN", 0)
	LBracket     = syntax.NewTokenType(Name, "LBRACKET", 0)
	RBracket     = syntax.NewTokenType(Name, "RBRACKET", 0)
	Semicolon    = syntax.NewTokenType(Name, "SEMICOLON", 0)
	Comma        = syntax.NewTokenType(Name, "COMMA", 0)
	Operator     = syntax.NewTokenType(Name, "OPERATOR", 0)
	Bad          = syntax.NewTokenType(Name, "BAD_CHARACTER", 0)

	File      = syntax.NewTokenType(Name, "FILE", 0)
	Statement = syntax.NewTokenType(Name, "STATEMENT", 0)
	CodeBlock = syntax.NewTokenType(Name, "CODE_BLOCK", syntax.FlagStrongWhitespaceHolder)
)

//nolint:gochecknoglobals // Lookup table.
var punctuation = map[byte]*syntax.TokenType{
	'{': LBrace,
	'}': RBrace,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	';': Semicolon,
	',': Comma,
}

// Language returns the brace language description.
func Language() *lang.Language {
	return &lang.Language{
		Name: Name,
		Aliases: []string{
			"Java", "C", "C++", "C#", "JavaScript", "TypeScript", "Objective-C",
		},
		Extensions: []string{
			".java", ".c", ".h", ".cc", ".cpp", ".cxx", ".hpp", ".cs",
			".js", ".mjs", ".cjs", ".ts", ".m",
		},
		Parse:   Parse,
		Spacing: SpacingBetween,
		Builder: Builder{},
	}
}

func init() {
	lang.DefaultRegistry.Register(Language())
}
