package parser

import (
	"minipyc/internal/ast"
	"minipyc/internal/diag"
	"minipyc/internal/symbols"
	"minipyc/internal/token"
	"minipyc/internal/types"
)

// parseFunction parses `def name(type param, ...): [return_type]:` with its
// indented body. The signature is declared before the body is parsed so
// self-recursive calls resolve.
func (p *Parser) parseFunction() ast.Stmt {
	start := p.advance() // def
	nameTok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a function name after 'def'")
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after the function name")
	if p.failed {
		return nil
	}

	var params []ast.Param
	if !p.at(token.RParen) {
		for {
			typ := p.parseCollectionType()
			pTok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a parameter name after its type")
			if p.failed {
				return nil
			}
			params = append(params, ast.Param{Name: pTok.Text, Type: typ, Span: pTok.Span})
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' to close the parameter list")
	if p.failed {
		return nil
	}

	// Необязательный `: тип` перед обязательным двоеточием тела.
	returnType := types.Collection{}
	if p.at(token.Colon) && p.peek2().Kind != token.Newline {
		p.advance()
		returnType = p.parseCollectionType()
		if p.failed {
			return nil
		}
	}

	sig := &symbols.FuncSignature{
		Name:       nameTok.Text,
		ReturnType: returnType,
		Span:       start.Span.Cover(p.lastSpan),
	}
	for _, param := range params {
		sig.Params = append(sig.Params, symbols.FuncParam{Name: param.Name, Type: param.Type})
	}
	p.funcs.Declare(sig)

	p.vars.Push()
	for _, param := range params {
		p.vars.Declare(param.Name, param.Type)
	}
	prevFn := p.curFn
	p.curFn = sig
	body := p.parseBlock()
	p.curFn = prevFn
	p.vars.Pop()
	if p.failed {
		return nil
	}

	return &ast.FunctionStmt{
		Name:       nameTok.Text,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		StmtSpan:   start.Span.Cover(p.lastSpan),
	}
}
