// Package parser turns the token stream into a typed AST. Parsing and type
// checking are one pass: every expression node carries its resolved type,
// the symbol tables fill as declarations are seen, and helper headers are
// interned the moment a construct needs them. The first error aborts the
// parse; there is no recovery.
package parser

import (
	"slices"

	"minipyc/internal/ast"
	"minipyc/internal/diag"
	"minipyc/internal/source"
	"minipyc/internal/symbols"
	"minipyc/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

// Result carries the parsed program together with the tables the emitter
// reads. Ok is false when a diagnostic aborted the parse; Program is nil
// in that case.
type Result struct {
	Program  *ast.Program
	Funcs    *symbols.FuncTable
	Includes *symbols.IncludeSet
	Ok       bool
}

// Parser — состояние парсера на один файл.
type Parser struct {
	toks     []token.Token
	pos      int
	opts     Options
	vars     *symbols.VarTable
	funcs    *symbols.FuncTable
	includes *symbols.IncludeSet
	curFn    *symbols.FuncSignature // nil на верхнем уровне
	lastSpan source.Span
	failed   bool
}

// Parse consumes the whole token stream and returns the typed program.
// The stream must be terminated by an EOF token (the lexer guarantees it).
func Parse(toks []token.Token, opts Options) Result {
	p := &Parser{
		toks:     toks,
		opts:     opts,
		vars:     symbols.NewVarTable(),
		funcs:    symbols.NewFuncTable(),
		includes: symbols.NewIncludeSet(),
	}
	prog := p.parseProgram()
	if p.failed {
		return Result{Funcs: p.funcs, Includes: p.includes}
	}
	return Result{Program: prog, Funcs: p.funcs, Includes: p.includes, Ok: true}
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(token.EOF) && !p.failed {
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		stmt := p.parseStatement()
		if p.failed {
			return nil
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog
}

// parseBlock consumes `: NEWLINE INDENT stmts DEDENT` with a scope pushed
// around the body. Используется def, if/elif/else, while и ветками case;
// for открывает свой блок сам, чтобы объявить переменную цикла.
func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' to open a block")
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after ':'")
	p.expect(token.Indent, diag.SynExpectIndent, "expected an indented block")
	if p.failed {
		return nil
	}
	p.vars.Push()
	body := p.parseStmtsUntilDedent()
	p.vars.Pop()
	return body
}

func (p *Parser) parseStmtsUntilDedent() []ast.Stmt {
	var body []ast.Stmt
	for !p.atOr(token.Dedent, token.EOF) && !p.failed {
		if p.at(token.Newline) {
			p.advance()
			continue
		}
		body = append(body, p.parseStatement())
	}
	if p.failed {
		return nil
	}
	p.expect(token.Dedent, diag.SynExpectDedent, "expected the block to end")
	return body
}

func (p *Parser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF, Span: p.lastSpan}
}

func (p *Parser) peek2() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return token.Token{Kind: token.EOF, Span: p.lastSpan}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance — съедает следующий токен и обновляет lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan returns the best span for a diagnostic at the current position.
// At EOF the span degenerates to the end of the last consumed token.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и помечаем парс
// проваленным.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.errHere(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}
}

func (p *Parser) errHere(code diag.Code, msg string) {
	p.errAt(code, p.diagSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
