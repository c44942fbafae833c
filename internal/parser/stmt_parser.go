package parser

import (
	"minipyc/internal/ast"
	"minipyc/internal/diag"
	"minipyc/internal/token"
	"minipyc/internal/types"
)

// parseStatement выбирает по первому токену нужный распознаватель.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseFunction()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwPrint:
		return p.parsePrint()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwMatch:
		return p.parseMatch()
	case token.TypeInt, token.TypeFloat, token.TypeString, token.TypeBool,
		token.TypeList, token.TypeTuple, token.TypeDict:
		return p.parseTypedAssign()
	case token.Ident:
		switch p.peek2().Kind {
		case token.LParen:
			return p.parseCallStmt()
		case token.Dot:
			return p.parseMethodStmt()
		case token.LBracket:
			return p.parseIndexAssign()
		case token.Assign:
			return p.parseReassign()
		}
	}
	p.errHere(diag.SynUnexpectedToken, "unexpected "+p.peek().Kind.String()+" at the start of a statement")
	return nil
}

// parseTypedAssign parses `<type> <name> = <expr>`: a declaration on first
// use of the name in the current scope, a reassignment otherwise.
func (p *Parser) parseTypedAssign() ast.Stmt {
	start := p.peek().Span
	typ := p.parseCollectionType()
	if p.failed {
		return nil
	}
	nameTok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a variable name after the type")
	p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in assignment")
	value := p.parseExpression()
	if p.failed {
		return nil
	}
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after assignment")
	if p.failed {
		return nil
	}

	if !p.adoptEmptyLiteral(typ, value) && !p.assignable(typ, value.Type()) {
		p.errAt(diag.SemIncompatibleAssignment, value.Span(),
			"cannot assign "+value.Type().String()+" to '"+nameTok.Text+"' of type "+typ.String())
		return nil
	}

	declared := !p.vars.DeclaredInCurrent(nameTok.Text)
	if !declared {
		prev, _ := p.vars.Lookup(nameTok.Text)
		if !prev.Equal(typ) {
			p.errAt(diag.SemIncompatibleAssignment, nameTok.Span,
				"'"+nameTok.Text+"' is already declared as "+prev.String())
			return nil
		}
	}
	p.vars.Declare(nameTok.Text, typ)

	return &ast.AssignStmt{
		Name:     nameTok.Text,
		Type:     typ,
		Value:    value,
		Declared: declared,
		NameSpan: nameTok.Span,
		StmtSpan: start.Cover(p.lastSpan),
	}
}

// parseReassign parses `<name> = <expr>` for an already declared variable.
func (p *Parser) parseReassign() ast.Stmt {
	nameTok := p.advance()
	p.expect(token.Assign, diag.SynExpectAssign, "expected '='")
	value := p.parseExpression()
	if p.failed {
		return nil
	}
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after assignment")
	if p.failed {
		return nil
	}
	typ, ok := p.vars.Lookup(nameTok.Text)
	if !ok {
		p.errAt(diag.SemUndeclaredVariable, nameTok.Span, "undeclared variable '"+nameTok.Text+"'")
		return nil
	}
	if !p.adoptEmptyLiteral(typ, value) && !p.assignable(typ, value.Type()) {
		p.errAt(diag.SemIncompatibleAssignment, value.Span(),
			"cannot assign "+value.Type().String()+" to '"+nameTok.Text+"' of type "+typ.String())
		return nil
	}
	return &ast.AssignStmt{
		Name:     nameTok.Text,
		Type:     typ,
		Value:    value,
		NameSpan: nameTok.Span,
		StmtSpan: nameTok.Span.Cover(p.lastSpan),
	}
}

// adoptEmptyLiteral lets an empty container literal take the declared target
// type; the literal alone carries no element type to check.
func (p *Parser) adoptEmptyLiteral(target types.Collection, value ast.Expr) bool {
	switch lit := value.(type) {
	case *ast.ListLit:
		if len(lit.Elems) == 0 && target.Base == types.List {
			lit.ListType = target
			p.internType(target)
			return true
		}
	case *ast.TupleLit:
		if len(lit.Elems) == 0 && target.Base == types.Tuple {
			lit.TupleType = target
			p.internType(target)
			return true
		}
	case *ast.DictLit:
		if len(lit.Keys) == 0 && target.Base == types.Dict {
			lit.DictType = target
			p.internType(target)
			return true
		}
	}
	return false
}

// parseIndexAssign parses `<name>[<index>] = <expr>` for lists and dicts.
func (p *Parser) parseIndexAssign() ast.Stmt {
	nameTok := p.advance()
	p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '['")
	index := p.parseExpression()
	if p.failed {
		return nil
	}
	p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' to close the index")
	p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in index assignment")
	value := p.parseExpression()
	if p.failed {
		return nil
	}
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after assignment")
	if p.failed {
		return nil
	}

	container, ok := p.vars.Lookup(nameTok.Text)
	if !ok {
		p.errAt(diag.SemUndeclaredVariable, nameTok.Span, "undeclared variable '"+nameTok.Text+"'")
		return nil
	}
	switch container.Base {
	case types.List:
		if index.Type().Base != types.Int {
			p.errAt(diag.SemIndexNotInteger, index.Span(),
				"list index must be an integer, got "+index.Type().String())
			return nil
		}
		if !p.assignable(types.Scalar(container.Elem), value.Type()) {
			p.errAt(diag.SemIncompatibleAssignment, value.Span(),
				"cannot assign "+value.Type().String()+" to an element of "+container.String())
			return nil
		}
	case types.Dict:
		if index.Type().Base != types.String {
			p.errAt(diag.SemDictKeyNotString, index.Span(),
				"dict index must be a string, got "+index.Type().String())
			return nil
		}
		if !p.assignable(types.Scalar(container.Value), value.Type()) {
			p.errAt(diag.SemIncompatibleAssignment, value.Span(),
				"cannot assign "+value.Type().String()+" to a value of "+container.String())
			return nil
		}
	case types.Tuple:
		p.errAt(diag.SemInvalidOperands, nameTok.Span, "tuples do not support indexed assignment")
		return nil
	default:
		p.errAt(diag.SemInvalidOperands, nameTok.Span,
			"'"+nameTok.Text+"' is a "+container.String()+"; indexed assignment requires a list or dict")
		return nil
	}
	p.internType(container)
	return &ast.IndexAssignStmt{
		Name:      nameTok.Text,
		Container: container,
		Index:     index,
		Value:     value,
		StmtSpan:  nameTok.Span.Cover(p.lastSpan),
	}
}

func (p *Parser) parseCallStmt() ast.Stmt {
	call := p.parseCallExpr()
	if p.failed {
		return nil
	}
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after the call")
	if p.failed {
		return nil
	}
	return &ast.CallStmt{Call: call, StmtSpan: call.ExprSpan}
}

func (p *Parser) parseMethodStmt() ast.Stmt {
	call := p.parseMethodExpr()
	if p.failed {
		return nil
	}
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after the call")
	if p.failed {
		return nil
	}
	return &ast.MethodCallStmt{Call: call, StmtSpan: call.ExprSpan}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance()
	var value ast.Expr
	if !p.at(token.Newline) {
		value = p.parseExpression()
		if p.failed {
			return nil
		}
	}
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after 'return'")
	if p.failed {
		return nil
	}

	// Верхнеуровневый return уходит прямо в main, а main возвращает int.
	if p.curFn == nil {
		if value != nil && !p.assignable(types.Scalar(types.Int), value.Type()) {
			p.errAt(diag.SemReturnTypeMismatch, value.Span(),
				"top-level return must be int, got "+value.Type().String())
			return nil
		}
	}
	if p.curFn != nil {
		ret := p.curFn.ReturnType
		switch {
		case ret.Base == types.None && value != nil:
			p.errAt(diag.SemReturnTypeMismatch, value.Span(),
				"'"+p.curFn.Name+"' has no declared return type")
			return nil
		case ret.Base != types.None && value == nil:
			p.errAt(diag.SemReturnTypeMismatch, start.Span,
				"'"+p.curFn.Name+"' must return "+ret.String())
			return nil
		case value != nil && !p.assignable(ret, value.Type()):
			p.errAt(diag.SemReturnTypeMismatch, value.Span(),
				"'"+p.curFn.Name+"' returns "+ret.String()+", got "+value.Type().String())
			return nil
		}
	}
	return &ast.ReturnStmt{Value: value, StmtSpan: start.Span.Cover(p.lastSpan)}
}

// parsePrint parses `print(values..., sep="...")`. The separator, when
// present, must be the final argument.
func (p *Parser) parsePrint() ast.Stmt {
	start := p.advance()
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'print'")
	stmt := &ast.PrintStmt{}
	if !p.at(token.RParen) && !p.failed {
		if !p.parsePrintValue(stmt) {
			return nil
		}
		for p.at(token.Comma) && !p.failed {
			p.advance()
			if p.at(token.KwSep) {
				p.advance()
				p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after 'sep'")
				sepTok := p.peek()
				if sepTok.Kind != token.StringLit {
					p.errAt(diag.SemParamTypeMismatch, sepTok.Span, "print separator must be a string literal")
					return nil
				}
				p.advance()
				stmt.Sep = sepTok.Text
				stmt.HasSep = true
				break
			}
			if !p.parsePrintValue(stmt) {
				return nil
			}
		}
	}
	if p.failed {
		return nil
	}
	p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' to close 'print'")
	p.expect(token.Newline, diag.SynExpectNewline, "expected newline after 'print'")
	if p.failed {
		return nil
	}
	stmt.StmtSpan = start.Span.Cover(p.lastSpan)
	return stmt
}

func (p *Parser) parsePrintValue(stmt *ast.PrintStmt) bool {
	value := p.parseExpression()
	if p.failed {
		return false
	}
	if value.Type().Base == types.None {
		p.errAt(diag.SemInvalidOperands, value.Span(), "cannot print a value of type none")
		return false
	}
	p.internType(value.Type())
	stmt.Values = append(stmt.Values, value)
	return true
}
