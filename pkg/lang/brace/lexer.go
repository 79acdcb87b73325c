package brace

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/reindent/pkg/syntax"
)

const operatorChars = "+-*/%=<>!&|^~?:.@#\\"

// token is one lexed token before tree construction.
type token struct {
	typ  *syntax.TokenType
	text string
}

// lex splits text into tokens. Every byte of text ends up in exactly one token.
func lex(text string) []token {
	var tokens []token

	for pos := 0; pos < len(text); {
		end, typ := scan(text, pos)
		tokens = append(tokens, token{typ: typ, text: text[pos:end]})
		pos = end
	}

	return tokens
}

// scan returns the end offset and type of the token starting at pos.
func scan(text string, pos int) (int, *syntax.TokenType) {
	ch := text[pos]

	switch {
	case isSpace(ch):
		end := pos
		for end < len(text) && isSpace(text[end]) {
			end++
		}
		return end, syntax.Whitespace

	case strings.HasPrefix(text[pos:], "//"):
		end := strings.IndexAny(text[pos:], "\r\n")
		if end < 0 {
			return len(text), LineComment
		}
		return pos + end, LineComment

	case strings.HasPrefix(text[pos:], "/*"):
		end := strings.Index(text[pos+2:], "*/")
		if end < 0 {
			return len(text), BlockComment
		}
		return pos + 2 + end + 2, BlockComment

	case ch == '"' || ch == '\'' || ch == '`':
		return scanQuoted(text, pos, ch), quotedType(ch)

	case ch >= '0' && ch <= '9':
		end := pos + 1
		for end < len(text) && (isWordByte(text, end) || text[end] == '.') {
			end += runeLen(text, end)
		}
		return end, Number

	case isWordByte(text, pos):
		end := pos
		for end < len(text) && isWordByte(text, end) {
			end += runeLen(text, end)
		}
		return end, Identifier
	}

	if typ, ok := punctuation[ch]; ok {
		return pos + 1, typ
	}

	if strings.IndexByte(operatorChars, ch) >= 0 {
		end := pos + 1
		for end < len(text) && strings.IndexByte(operatorChars, text[end]) >= 0 &&
			!strings.HasPrefix(text[end:], "//") && !strings.HasPrefix(text[end:], "/*") {
			end++
		}
		return end, Operator
	}

	return pos + runeLen(text, pos), Bad
}

func runeLen(text string, pos int) int {
	_, size := utf8.DecodeRuneInString(text[pos:])
	return size
}

func scanQuoted(text string, pos int, quote byte) int {
	end := pos + 1
	for end < len(text) {
		switch text[end] {
		case '\\':
			end += 2
			continue
		case quote:
			return end + 1
		case '\n':
			if quote != '`' {
				return end
			}
		}
		end++
	}
	return len(text)
}

func quotedType(quote byte) *syntax.TokenType {
	if quote == '\'' {
		return Char
	}
	return String
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isWordByte(text string, pos int) bool {
	ch := text[pos]
	if ch < utf8.RuneSelf {
		return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
