package brace

import "github.com/yaklabco/reindent/pkg/syntax"

// Parse builds a brace syntax tree from text.
//
// The file holds statements, comments and whitespace. A statement runs to a
// top-level semicolon, or to the end of a code block unless the block is
// followed by a continuing keyword (else, catch, finally, the while of a
// do-while) or by punctuation that closes an expression.
func Parse(text string) *syntax.Node {
	p := &parser{tokens: lex(text)}
	root := syntax.NewComposite(File)
	p.parseItems(root, false)
	return root
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *syntax.Node {
	tok := p.tokens[p.pos]
	p.pos++
	return syntax.NewLeaf(tok.typ, tok.text)
}

// peekSignificant returns the next token that is neither whitespace nor a comment.
func (p *parser) peekSignificant() *token {
	for i := p.pos; i < len(p.tokens); i++ {
		if !isTrivia(p.tokens[i].typ) {
			return &p.tokens[i]
		}
	}
	return nil
}

func isTrivia(typ *syntax.TokenType) bool {
	return typ.Has(syntax.FlagWhitespace) || typ.Has(syntax.FlagComment)
}

// parseItems parses statements into parent until the end of input, or until
// a closing brace when inBlock is set. The closing brace is not consumed.
func (p *parser) parseItems(parent *syntax.Node, inBlock bool) {
	for tok := p.peek(); tok != nil; tok = p.peek() {
		switch {
		case isTrivia(tok.typ):
			syntax.AppendChild(parent, p.next())
		case tok.typ == RBrace:
			if inBlock {
				return
			}
			syntax.AppendChild(parent, p.next())
		default:
			stmt := syntax.NewComposite(Statement)
			p.parseStatement(stmt)
			syntax.AppendChild(parent, stmt)
		}
	}
}

func (p *parser) parseStatement(stmt *syntax.Node) {
	depth := 0

	for tok := p.peek(); tok != nil; tok = p.peek() {
		switch tok.typ {
		case LParen, LBracket:
			depth++
		case RParen, RBracket:
			if depth > 0 {
				depth--
			}
		case RBrace:
			return
		}

		if isTrivia(tok.typ) {
			if sig := p.peekSignificant(); sig == nil || sig.typ == RBrace {
				return
			}
			syntax.AppendChild(stmt, p.next())
			continue
		}

		if tok.typ == LBrace {
			syntax.AppendChild(stmt, p.parseBlock())
			if !p.continuesAfterBlock(stmt, depth) {
				return
			}
			continue
		}

		syntax.AppendChild(stmt, p.next())
		if tok.typ == Semicolon && depth == 0 {
			return
		}
	}
}

func (p *parser) parseBlock() *syntax.Node {
	block := syntax.NewComposite(CodeBlock)
	syntax.AppendChild(block, p.next())
	p.parseItems(block, true)
	if tok := p.peek(); tok != nil && tok.typ == RBrace {
		syntax.AppendChild(block, p.next())
	}
	return block
}

// continuesAfterBlock reports whether the statement goes on after a code block.
func (p *parser) continuesAfterBlock(stmt *syntax.Node, depth int) bool {
	if depth > 0 {
		return true
	}

	sig := p.peekSignificant()
	if sig == nil {
		return false
	}

	switch sig.typ {
	case Semicolon, Comma, RParen, RBracket, Operator:
		return true
	case Identifier:
		switch sig.text {
		case "else", "catch", "finally":
			return true
		case "while":
			first := syntax.FirstLeaf(stmt)
			return first != nil && first.LeafText() == "do"
		}
	}
	return false
}
