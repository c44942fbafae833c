package lexer

import (
	"minipyc/internal/diag"
	"minipyc/internal/token"
)

// scanFString читает f-строку целиком и кладёт её токены в очередь:
// FStringStart, затем чередование StringLit-чанков и интерполяций
// (FStringExprStart, токены выражения, опционально FStringFormatSpec,
// FStringExprEnd), затем FStringEnd. После сканирования формат-спецификатора
// курсор остаётся на закрывающей скобке.
func (lx *Lexer) scanFString() {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // 'f'
	lx.cursor.Bump() // '"'
	lx.pending = append(lx.pending, token.Token{
		Kind: token.FStringStart,
		Span: lx.cursor.SpanFrom(mark),
		Text: "f\"",
	})

	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			lx.fail(diag.LexUnterminatedFString, lx.cursor.SpanFrom(mark), "unterminated f-string")
			return
		}

		switch lx.cursor.Peek() {
		case '"':
			endMark := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.pending = append(lx.pending, token.Token{
				Kind: token.FStringEnd,
				Span: lx.cursor.SpanFrom(endMark),
				Text: "\"",
			})
			return

		case '{':
			if !lx.scanFStringExpr(mark) {
				return
			}

		default:
			chunkMark := lx.cursor.Mark()
			for !lx.cursor.EOF() {
				b := lx.cursor.Peek()
				if b == '{' || b == '"' || b == '\n' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pending = append(lx.pending, token.Token{
				Kind: token.StringLit,
				Span: lx.cursor.SpanFrom(chunkMark),
				Text: lx.cursor.Text(chunkMark),
			})
		}
	}
}

// scanFStringExpr читает одну интерполяцию {expr[:spec]}.
// Возвращает false при ошибке (failed уже выставлен).
func (lx *Lexer) scanFStringExpr(fstrMark Mark) bool {
	openMark := lx.cursor.Mark()
	lx.cursor.Bump() // '{'
	lx.pending = append(lx.pending, token.Token{
		Kind: token.FStringExprStart,
		Span: lx.cursor.SpanFrom(openMark),
		Text: "{",
	})

	for {
		lx.skipInlineSpace()
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			lx.fail(diag.LexUnterminatedFString, lx.cursor.SpanFrom(fstrMark), "unterminated f-string interpolation")
			return false
		}

		switch lx.cursor.Peek() {
		case ':':
			lx.cursor.Bump()
			specMark := lx.cursor.Mark()
			for !lx.cursor.EOF() {
				b := lx.cursor.Peek()
				if b == '}' || b == '"' || b == '\n' {
					break
				}
				lx.cursor.Bump()
			}
			// Курсор остаётся на '}' — следующий виток цикла закроет интерполяцию
			lx.pending = append(lx.pending, token.Token{
				Kind: token.FStringFormatSpec,
				Span: lx.cursor.SpanFrom(specMark),
				Text: lx.cursor.Text(specMark),
			})

		case '}':
			closeMark := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.pending = append(lx.pending, token.Token{
				Kind: token.FStringExprEnd,
				Span: lx.cursor.SpanFrom(closeMark),
				Text: "}",
			})
			return true

		default:
			tok := lx.scanToken()
			if tok.Kind == token.Invalid {
				return false
			}
			lx.pending = append(lx.pending, tok)
		}
	}
}
