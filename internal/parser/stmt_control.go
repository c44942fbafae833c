package parser

import (
	"minipyc/internal/ast"
	"minipyc/internal/diag"
	"minipyc/internal/token"
	"minipyc/internal/types"
)

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance()
	cond := p.parseExpression()
	if p.failed {
		return nil
	}
	then := p.parseBlock()
	if p.failed {
		return nil
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}

	for p.at(token.KwElif) && !p.failed {
		p.advance()
		elifCond := p.parseExpression()
		if p.failed {
			return nil
		}
		body := p.parseBlock()
		if p.failed {
			return nil
		}
		stmt.Elifs = append(stmt.Elifs, ast.ElifBranch{Cond: elifCond, Body: body})
	}
	if p.at(token.KwElse) && !p.failed {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	if p.failed {
		return nil
	}
	stmt.StmtSpan = start.Span.Cover(p.lastSpan)
	return stmt
}

// parseFor parses the counting loop `for var in range(start, stop):`.
// A single range argument counts from zero.
func (p *Parser) parseFor() ast.Stmt {
	start := p.advance()
	varTok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a loop variable after 'for'")
	p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in'")
	p.expect(token.KwRange, diag.SynUnexpectedToken, "expected 'range'")
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'range'")
	if p.failed {
		return nil
	}

	var startExpr, stopExpr ast.Expr
	first := p.parseExpression()
	if p.failed {
		return nil
	}
	if p.at(token.Comma) {
		p.advance()
		startExpr = first
		stopExpr = p.parseExpression()
		if p.failed {
			return nil
		}
	} else {
		stopExpr = first
	}
	p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' to close 'range'")
	if p.failed {
		return nil
	}
	if startExpr != nil && startExpr.Type().Base != types.Int {
		p.errAt(diag.SemInvalidOperands, startExpr.Span(),
			"range bounds must be integers, got "+startExpr.Type().String())
		return nil
	}
	if stopExpr.Type().Base != types.Int {
		p.errAt(diag.SemInvalidOperands, stopExpr.Span(),
			"range bounds must be integers, got "+stopExpr.Type().String())
		return nil
	}

	p.expect(token.Colon, diag.SynExpectColon, "expected ':' to open the loop body")
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after ':'")
	p.expect(token.Indent, diag.SynExpectIndent, "expected an indented loop body")
	if p.failed {
		return nil
	}
	p.vars.Push()
	p.vars.Declare(varTok.Text, types.Scalar(types.Int))
	body := p.parseStmtsUntilDedent()
	p.vars.Pop()
	if p.failed {
		return nil
	}

	return &ast.ForStmt{
		Var:      varTok.Text,
		Start:    startExpr,
		Stop:     stopExpr,
		Body:     body,
		StmtSpan: start.Span.Cover(p.lastSpan),
	}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance()
	cond := p.parseExpression()
	if p.failed {
		return nil
	}
	body := p.parseBlock()
	if p.failed {
		return nil
	}
	return &ast.WhileStmt{Cond: cond, Body: body, StmtSpan: start.Span.Cover(p.lastSpan)}
}

// parseMatch parses `match subject:` with `case <literal>:` arms over INT or
// BOOL subjects; `case _:` is the default arm.
func (p *Parser) parseMatch() ast.Stmt {
	start := p.advance()
	subject := p.parseExpression()
	if p.failed {
		return nil
	}
	if subject.Type().Base != types.Int && subject.Type().Base != types.Bool {
		p.errAt(diag.SemInvalidOperands, subject.Span(),
			"match subject must be int or bool, got "+subject.Type().String())
		return nil
	}
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' after the match subject")
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after ':'")
	p.expect(token.Indent, diag.SynExpectIndent, "expected indented case arms")
	if p.failed {
		return nil
	}

	stmt := &ast.MatchStmt{Subject: subject}
	for p.at(token.KwCase) && !p.failed {
		p.advance()
		var pattern *ast.Literal
		patTok := p.peek()
		switch patTok.Kind {
		case token.Number:
			p.advance()
			pattern = &ast.Literal{Kind: types.Int, Text: patTok.Text, ExprSpan: patTok.Span}
		case token.KwTrue:
			p.advance()
			pattern = &ast.Literal{Kind: types.Bool, Text: "true", ExprSpan: patTok.Span}
		case token.KwFalse:
			p.advance()
			pattern = &ast.Literal{Kind: types.Bool, Text: "false", ExprSpan: patTok.Span}
		case token.Ident:
			if patTok.Text != "_" {
				p.errAt(diag.SynUnexpectedToken, patTok.Span, "expected a literal pattern or '_'")
				return nil
			}
			p.advance()
		default:
			p.errAt(diag.SynUnexpectedToken, patTok.Span, "expected a literal pattern or '_'")
			return nil
		}
		if pattern != nil && pattern.Kind != subject.Type().Base {
			p.errAt(diag.SemInvalidOperands, patTok.Span,
				"case pattern is "+pattern.Kind.String()+" but the subject is "+subject.Type().String())
			return nil
		}
		body := p.parseBlock()
		if p.failed {
			return nil
		}
		stmt.Cases = append(stmt.Cases, ast.MatchCase{Pattern: pattern, Body: body})
	}
	if p.failed {
		return nil
	}
	p.expect(token.Dedent, diag.SynExpectDedent, "expected the match block to end")
	if p.failed {
		return nil
	}
	stmt.StmtSpan = start.Span.Cover(p.lastSpan)
	return stmt
}
