package lexer

import (
	"minipyc/internal/diag"
	"minipyc/internal/token"
)

// scanString читает строковый литерал в двойных кавычках.
// Text хранит содержимое без кавычек; Span покрывает литерал целиком.
func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая '"'

	contentStart := lx.cursor.Mark()
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			span := lx.cursor.SpanFrom(mark)
			lx.fail(diag.LexUnterminatedString, span, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: span}
		}
		if lx.cursor.Peek() == '"' {
			break
		}
		if lx.cursor.Peek() == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
		}
		lx.cursor.Bump()
	}

	text := lx.cursor.Text(contentStart)
	lx.cursor.Bump() // закрывающая '"'
	return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(mark), Text: text}
}
