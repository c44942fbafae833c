package lexer

import (
	"minipyc/internal/diag"
	"minipyc/internal/source"
	"minipyc/internal/token"
)

// Lexer performs a single pass over normalized source bytes and produces the
// token stream, including synthetic Newline/Indent/Dedent layout tokens.
// Indentation state is a stack of widths initialized to [0]; a tab counts as
// 4 spaces and blank lines never affect the stack.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter

	pending []token.Token // очередь уже готовых токенов (layout, f-string)
	indents []uint32
	atLineStart bool
	midLine     bool // на текущей строке уже был значимый токен
	failed      bool
}

// New constructs a lexer over the file, reporting problems to reporter.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		reporter:    reporter,
		indents:     []uint32{0},
		atLineStart: true,
	}
}

// Tokenize drains the lexer into a slice ending with EOF.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, reporter)
	out := make([]token.Token, 0, 64)
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next token. After an error or EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if lx.failed {
			lx.pending = nil
			return lx.eofToken()
		}
		if len(lx.pending) > 0 {
			t := lx.pending[0]
			lx.pending = lx.pending[1:]
			return t
		}

		if lx.atLineStart {
			lx.handleIndent()
			lx.atLineStart = false
			continue // сначала отдаём накопленные INDENT/DEDENT
		}

		lx.skipInlineSpace()
		if lx.cursor.Peek() == '#' {
			lx.skipComment()
		}

		if lx.cursor.EOF() {
			// Синтетический NEWLINE, если файл не закончился переводом строки,
			// затем слив стека отступов.
			if lx.midLine {
				lx.midLine = false
				return token.Token{Kind: token.Newline, Span: lx.emptySpan()}
			}
			if len(lx.indents) > 1 {
				lx.indents = lx.indents[:len(lx.indents)-1]
				return token.Token{Kind: token.Dedent, Span: lx.emptySpan()}
			}
			return lx.eofToken()
		}

		if lx.cursor.Peek() == '\n' {
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.atLineStart = true
			lx.midLine = false
			return token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(mark)}
		}

		// Проверка f" идёт раньше правила идентификатора, иначе f-строки
		// недостижимы.
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == 'f' && b1 == '"' {
			lx.midLine = true
			lx.scanFString()
			continue
		}

		lx.midLine = true
		return lx.scanToken()
	}
}

// handleIndent измеряет отступ строки, пропуская пустые строки и комментарии,
// и выравнивает стек отступов, ставя INDENT/DEDENT в очередь.
func (lx *Lexer) handleIndent() {
	for {
		mark := lx.cursor.Mark()
		width := uint32(0)
		for {
			switch lx.cursor.Peek() {
			case ' ':
				width++
				lx.cursor.Bump()
				continue
			case '\t':
				width += 4
				lx.cursor.Bump()
				continue
			}
			break
		}

		if lx.cursor.Peek() == '#' {
			lx.skipComment()
		}

		// Пустая строка не влияет на стек
		if lx.cursor.Peek() == '\n' {
			lx.cursor.Bump()
			continue
		}
		if lx.cursor.EOF() {
			return
		}

		span := lx.cursor.SpanFrom(mark)
		top := lx.indents[len(lx.indents)-1]
		switch {
		case width > top:
			lx.indents = append(lx.indents, width)
			lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: span})
		case width < top:
			for width < lx.indents[len(lx.indents)-1] {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: span})
			}
			if width != lx.indents[len(lx.indents)-1] {
				lx.fail(diag.LexInconsistentIndent, span, "inconsistent indentation: no enclosing block at this level")
			}
		}
		return
	}
}

// scanToken сканирует один обычный (не layout) токен.
func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) skipInlineSpace() {
	for isInlineSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) fail(code diag.Code, span source.Span, msg string) {
	if lx.reporter != nil {
		lx.reporter.Report(code, diag.SevError, span, msg, nil)
	}
	lx.failed = true
	lx.pending = nil
}

func (lx *Lexer) eofToken() token.Token {
	return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
