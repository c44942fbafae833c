package lexer

import (
	"minipyc/internal/diag"
	"minipyc/internal/token"
)

// scanNumber читает целый или вещественный литерал.
// 123 → Number, 1.5 → Floating. "1." и "1.2.3" — ошибки.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	kind := token.Number
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		kind = token.Floating
	} else if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		span := lx.cursor.SpanFrom(mark)
		lx.fail(diag.LexBadNumber, span, "malformed number: digit expected after '.'")
		return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(mark)}
	}

	// Число, срастающееся с идентификатором или второй точкой, некорректно
	if ch := lx.cursor.Peek(); isIdentStartByte(ch) || ch == '.' {
		for isIdentContinueByte(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
		}
		span := lx.cursor.SpanFrom(mark)
		lx.fail(diag.LexBadNumber, span, "malformed number '"+lx.cursor.Text(mark)+"'")
		return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(mark)}
	}

	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(mark), Text: lx.cursor.Text(mark)}
}
