package lexer

import (
	"minipyc/internal/diag"
	"minipyc/internal/token"
)

// scanOperatorOrPunct читает операторы и пунктуацию.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	mk := func(kind token.Kind) token.Token {
		return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.Text(mark)}
	}

	switch ch {
	case '+':
		return mk(token.Plus)
	case '-':
		return mk(token.Minus)
	case '*':
		return mk(token.Star)
	case '/':
		return mk(token.Slash)
	case '(':
		return mk(token.LParen)
	case ')':
		return mk(token.RParen)
	case '[':
		return mk(token.LBracket)
	case ']':
		return mk(token.RBracket)
	case '{':
		return mk(token.LBrace)
	case '}':
		return mk(token.RBrace)
	case ':':
		return mk(token.Colon)
	case ',':
		return mk(token.Comma)
	case '.':
		return mk(token.Dot)
	case '=':
		if lx.cursor.Eat('=') {
			return mk(token.EqEq)
		}
		return mk(token.Assign)
	case '!':
		if lx.cursor.Eat('=') {
			return mk(token.BangEq)
		}
	case '<':
		if lx.cursor.Eat('=') {
			return mk(token.LtEq)
		}
		return mk(token.Lt)
	case '>':
		if lx.cursor.Eat('=') {
			return mk(token.GtEq)
		}
		return mk(token.Gt)
	}

	span := lx.cursor.SpanFrom(mark)
	lx.fail(diag.LexUnknownChar, span, "invalid character '"+lx.cursor.Text(mark)+"'")
	return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(mark)}
}
