package lexer

import (
	"minipyc/internal/token"
)

// scanIdentOrKeyword читает идентификатор и классифицирует его:
// ключевое слово, имя типа, имя метода (CallMethod) или Ident.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	text := lx.cursor.Text(mark)
	span := lx.cursor.SpanFrom(mark)

	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: span, Text: text}
	}
	if kind, ok := token.LookupTypeName(text); ok {
		return token.Token{Kind: kind, Span: span, Text: text}
	}
	if token.IsMethodName(text) {
		return token.Token{Kind: token.CallMethod, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}
