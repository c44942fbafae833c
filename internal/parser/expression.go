package parser

import (
	"strconv"

	"minipyc/internal/ast"
	"minipyc/internal/diag"
	"minipyc/internal/source"
	"minipyc/internal/token"
	"minipyc/internal/types"
)

// parseExpression parses a full expression with Pratt precedence climbing:
// or < and < comparisons < additive < multiplicative, all left-associative.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parsePrimary()
	if p.failed {
		return nil
	}
	for {
		prec := binaryPrec(p.peek().Kind)
		if prec < 0 || prec < minPrec {
			return left
		}
		opTok := p.advance()
		op := binaryOp(opTok.Kind)
		right := p.parseBinary(prec + 1)
		if p.failed {
			return nil
		}
		result := p.binaryResultType(op, left.Type(), right.Type(), opTok.Span)
		if p.failed {
			return nil
		}
		left = &ast.Binary{
			Op:         op,
			Left:       left,
			Right:      right,
			ResultType: result,
			ExprSpan:   left.Span().Cover(right.Span()),
		}
	}
}

// binaryResultType checks operand types and resolves the result type.
func (p *Parser) binaryResultType(op ast.BinaryOp, left, right types.Collection, opSpan source.Span) types.Collection {
	switch {
	case op == ast.OpAdd:
		switch {
		case left.Base.IsNumeric() && right.Base.IsNumeric():
			return widerNumeric(left, right)
		case left.Base == types.String && right.Base == types.String:
			p.internType(left)
			return left
		case left.Base == types.List && left.Equal(right):
			p.internType(left)
			return left
		}
	case op == ast.OpSub || op == ast.OpMul:
		if left.Base.IsNumeric() && right.Base.IsNumeric() {
			return widerNumeric(left, right)
		}
	case op == ast.OpDiv:
		if left.Base.IsNumeric() && right.Base.IsNumeric() {
			return types.Scalar(types.Float)
		}
	case op.IsComparison():
		if (left.Base.IsNumeric() && right.Base.IsNumeric()) || left.Equal(right) {
			return types.Scalar(types.Bool)
		}
	case op.IsLogical():
		if left.Base == types.Bool && right.Base == types.Bool {
			return types.Scalar(types.Bool)
		}
	}
	p.errAt(diag.SemInvalidOperands, opSpan,
		"invalid operand types for '"+op.String()+"': "+left.String()+" and "+right.String())
	return types.Collection{}
}

func widerNumeric(left, right types.Collection) types.Collection {
	if left.Base == types.Float || right.Base == types.Float {
		return types.Scalar(types.Float)
	}
	return types.Scalar(types.Int)
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return &ast.Literal{Kind: types.Int, Text: tok.Text, ExprSpan: tok.Span}
	case token.Floating:
		p.advance()
		return &ast.Literal{Kind: types.Float, Text: tok.Text, ExprSpan: tok.Span}
	case token.StringLit:
		p.advance()
		p.includes.Add("string_utils.h")
		return &ast.Literal{Kind: types.String, Text: tok.Text, ExprSpan: tok.Span}
	case token.KwTrue:
		p.advance()
		return &ast.Literal{Kind: types.Bool, Text: "true", ExprSpan: tok.Span}
	case token.KwFalse:
		p.advance()
		return &ast.Literal{Kind: types.Bool, Text: "false", ExprSpan: tok.Span}
	case token.Ident:
		switch p.peek2().Kind {
		case token.LParen:
			return p.parseCallExpr()
		case token.LBracket:
			return p.parseIndexExpr()
		case token.Dot:
			return p.parseMethodExpr()
		default:
			return p.parseVarRef()
		}
	case token.FStringStart:
		return p.parseFString()
	case token.LBracket:
		return p.parseListLit()
	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBrace:
		return p.parseDictLit()
	case token.KwLen:
		return p.parseLenExpr()
	default:
		p.errHere(diag.SynExpectExpression, "expected an expression, got "+tok.Kind.String())
		return nil
	}
}

func (p *Parser) parseVarRef() ast.Expr {
	tok := p.advance()
	typ, ok := p.vars.Lookup(tok.Text)
	if !ok {
		p.errAt(diag.SemUndeclaredVariable, tok.Span, "undeclared variable '"+tok.Text+"'")
		return nil
	}
	p.internType(typ)
	return &ast.VarRef{Name: tok.Text, VarType: typ, ExprSpan: tok.Span}
}

// parseCallArgs parses `( expr, ... )` and returns the argument list.
func (p *Parser) parseCallArgs() []ast.Expr {
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	var args []ast.Expr
	if !p.at(token.RParen) {
		args = append(args, p.parseExpression())
		for p.at(token.Comma) && !p.failed {
			p.advance()
			args = append(args, p.parseExpression())
		}
	}
	if p.failed {
		return nil
	}
	p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' to close the argument list")
	return args
}

func (p *Parser) parseCallExpr() *ast.CallExpr {
	nameTok := p.advance()
	args := p.parseCallArgs()
	if p.failed {
		return nil
	}
	sig, ok := p.funcs.Lookup(nameTok.Text)
	if !ok {
		p.errAt(diag.SemUndefinedFunction, nameTok.Span, "undefined function '"+nameTok.Text+"'")
		return nil
	}
	if len(args) != len(sig.Params) {
		p.errAt(diag.SemArityMismatch, nameTok.Span.Cover(p.lastSpan),
			"'"+sig.Name+"' expects "+strconv.Itoa(len(sig.Params))+" argument(s), got "+strconv.Itoa(len(args)))
		return nil
	}
	for i, arg := range args {
		if !p.assignable(sig.Params[i].Type, arg.Type()) {
			p.errAt(diag.SemParamTypeMismatch, arg.Span(),
				"argument '"+sig.Params[i].Name+"' of '"+sig.Name+"' expects "+
					sig.Params[i].Type.String()+", got "+arg.Type().String())
			return nil
		}
	}
	return &ast.CallExpr{
		Name:       nameTok.Text,
		Args:       args,
		ReturnType: sig.ReturnType,
		ExprSpan:   nameTok.Span.Cover(p.lastSpan),
	}
}

func (p *Parser) parseIndexExpr() *ast.IndexExpr {
	nameTok := p.advance()
	p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '['")
	index := p.parseExpression()
	if p.failed {
		return nil
	}
	p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' to close the index")
	container, ok := p.vars.Lookup(nameTok.Text)
	if !ok {
		p.errAt(diag.SemUndeclaredVariable, nameTok.Span, "undeclared variable '"+nameTok.Text+"'")
		return nil
	}
	var elem types.Collection
	switch container.Base {
	case types.List, types.Tuple:
		if index.Type().Base != types.Int {
			p.errAt(diag.SemIndexNotInteger, index.Span(),
				container.Base.String()+" index must be an integer, got "+index.Type().String())
			return nil
		}
		elem = types.Scalar(container.Elem)
	case types.Dict:
		if index.Type().Base != types.String {
			p.errAt(diag.SemDictKeyNotString, index.Span(),
				"dict index must be a string, got "+index.Type().String())
			return nil
		}
		elem = types.Scalar(container.Value)
	default:
		p.errAt(diag.SemInvalidOperands, nameTok.Span,
			"'"+nameTok.Text+"' is a "+container.String()+"; indexing requires a list, tuple, or dict")
		return nil
	}
	p.internType(container)
	return &ast.IndexExpr{
		Name:      nameTok.Text,
		Container: container,
		Index:     index,
		ElemType:  elem,
		ExprSpan:  nameTok.Span.Cover(p.lastSpan),
	}
}

// parseMethodExpr parses `target.method(args...)` and resolves it against the
// fixed method table.
func (p *Parser) parseMethodExpr() *ast.MethodExpr {
	nameTok := p.advance()
	p.expect(token.Dot, diag.SynUnexpectedToken, "expected '.'")
	methodTok := p.peek()
	if methodTok.Kind != token.CallMethod {
		p.errAt(diag.SemUnknownMethod, methodTok.Span, "unknown method '"+methodTok.Text+"'")
		return nil
	}
	p.advance()
	args := p.parseCallArgs()
	if p.failed {
		return nil
	}
	target, ok := p.vars.Lookup(nameTok.Text)
	if !ok {
		p.errAt(diag.SemUndeclaredVariable, nameTok.Span, "undeclared variable '"+nameTok.Text+"'")
		return nil
	}
	result, ok := p.resolveMethod(nameTok, methodTok, target, args)
	if !ok {
		return nil
	}
	return &ast.MethodExpr{
		Target:     nameTok.Text,
		TargetType: target,
		Method:     methodTok.Text,
		Args:       args,
		ResultType: result,
		ExprSpan:   nameTok.Span.Cover(p.lastSpan),
	}
}

// resolveMethod checks receiver, arity and argument types for the fixed
// method table and returns the result type.
func (p *Parser) resolveMethod(nameTok, methodTok token.Token, target types.Collection, args []ast.Expr) (types.Collection, bool) {
	method := methodTok.Text
	if method == "append" {
		if target.Base != types.List {
			p.errAt(diag.SemUnknownMethod, methodTok.Span,
				"method 'append' is not defined on "+target.String())
			return types.Collection{}, false
		}
		if len(args) != 1 {
			p.errAt(diag.SemArityMismatch, methodTok.Span, "'append' expects 1 argument, got "+strconv.Itoa(len(args)))
			return types.Collection{}, false
		}
		elem := types.Scalar(target.Elem)
		if !p.assignable(elem, args[0].Type()) {
			p.errAt(diag.SemParamTypeMismatch, args[0].Span(),
				"'append' on "+target.String()+" expects "+elem.String()+", got "+args[0].Type().String())
			return types.Collection{}, false
		}
		p.internType(target)
		return types.Collection{}, true
	}

	// Остальные методы определены только на строках.
	if target.Base != types.String {
		p.errAt(diag.SemUnknownMethod, methodTok.Span,
			"method '"+method+"' is not defined on "+target.String())
		return types.Collection{}, false
	}
	p.includes.Add("string_utils.h")

	wantArgs := map[string]int{"upper": 0, "lower": 0, "strip": 0, "replace": 2, "find": 1}
	if want, fixed := wantArgs[method]; fixed {
		if len(args) != want {
			p.errAt(diag.SemArityMismatch, methodTok.Span,
				"'"+method+"' expects "+strconv.Itoa(want)+" argument(s), got "+strconv.Itoa(len(args)))
			return types.Collection{}, false
		}
	} else if method == "split" && len(args) > 1 {
		p.errAt(diag.SemArityMismatch, methodTok.Span, "'split' expects at most 1 argument, got "+strconv.Itoa(len(args)))
		return types.Collection{}, false
	}
	for _, arg := range args {
		if arg.Type().Base != types.String {
			p.errAt(diag.SemParamTypeMismatch, arg.Span(),
				"'"+method+"' expects string arguments, got "+arg.Type().String())
			return types.Collection{}, false
		}
	}

	switch method {
	case "split":
		t := types.ListOf(types.String)
		p.internType(t)
		return t, true
	case "find":
		return types.Scalar(types.Int), true
	default: // upper, lower, strip, replace
		return types.Scalar(types.String), true
	}
}

func (p *Parser) parseListLit() ast.Expr {
	open := p.advance()
	var elems []ast.Expr
	elemType := types.None
	if !p.at(token.RBracket) {
		elems, elemType = p.parseHomogeneousElems(token.RBracket, "list")
		if p.failed {
			return nil
		}
	}
	p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' to close the list literal")
	t := types.ListOf(elemType)
	if elemType != types.None {
		p.internType(t)
	}
	return &ast.ListLit{Elems: elems, ListType: t, ExprSpan: open.Span.Cover(p.lastSpan)}
}

// parseParenOrTuple resolves the shared `(` syntax: a single parenthesized
// expression groups, a comma-separated sequence is a tuple literal.
func (p *Parser) parseParenOrTuple() ast.Expr {
	open := p.advance()
	if p.at(token.RParen) {
		p.advance()
		return &ast.TupleLit{TupleType: types.TupleOf(types.None), ExprSpan: open.Span.Cover(p.lastSpan)}
	}
	first := p.parseExpression()
	if p.failed {
		return nil
	}
	if p.at(token.RParen) {
		p.advance()
		return first
	}

	elems := []ast.Expr{first}
	elemType := p.containerElemType(first, "tuple")
	for p.at(token.Comma) && !p.failed {
		p.advance()
		elem := p.parseExpression()
		if p.failed {
			return nil
		}
		if got := p.containerElemType(elem, "tuple"); !p.failed && got != elemType {
			p.errAt(diag.SemHeterogeneousContainer, elem.Span(),
				"tuple elements must share one type: got "+got.String()+" after "+elemType.String())
		}
		elems = append(elems, elem)
	}
	if p.failed {
		return nil
	}
	p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' to close the tuple literal")
	t := types.TupleOf(elemType)
	p.internType(t)
	return &ast.TupleLit{Elems: elems, TupleType: t, ExprSpan: open.Span.Cover(p.lastSpan)}
}

// parseHomogeneousElems parses comma-separated elements until the closing
// token, enforcing a single scalar element type.
func (p *Parser) parseHomogeneousElems(closing token.Kind, what string) ([]ast.Expr, types.VarType) {
	first := p.parseExpression()
	if p.failed {
		return nil, types.None
	}
	elems := []ast.Expr{first}
	elemType := p.containerElemType(first, what)
	for p.at(token.Comma) && !p.failed {
		p.advance()
		elem := p.parseExpression()
		if p.failed {
			return nil, types.None
		}
		if got := p.containerElemType(elem, what); !p.failed && got != elemType {
			p.errAt(diag.SemHeterogeneousContainer, elem.Span(),
				what+" elements must share one type: got "+got.String()+" after "+elemType.String())
		}
		elems = append(elems, elem)
	}
	return elems, elemType
}

// containerElemType returns the scalar element type an expression contributes
// to a container literal. Container-typed elements are rejected: nesting
// stops at one level.
func (p *Parser) containerElemType(e ast.Expr, what string) types.VarType {
	t := e.Type()
	if t.Base.IsContainer() {
		p.errAt(diag.SynUnsupportedNesting, e.Span(), "nested containers are not supported in "+what+" literals")
		return types.None
	}
	return t.Base
}

func (p *Parser) parseDictLit() ast.Expr {
	open := p.advance()
	var keys []string
	var values []ast.Expr
	valueType := types.None
	for !p.at(token.RBrace) && !p.failed {
		keyTok := p.peek()
		if keyTok.Kind != token.StringLit {
			p.errAt(diag.SemDictKeyNotString, keyTok.Span, "dict keys must be string literals")
			return nil
		}
		p.advance()
		p.includes.Add("string_utils.h")
		p.expect(token.Colon, diag.SynExpectColon, "expected ':' after dict key")
		value := p.parseExpression()
		if p.failed {
			return nil
		}
		got := p.containerElemType(value, "dict")
		if p.failed {
			return nil
		}
		if valueType == types.None {
			valueType = got
		} else if got != valueType {
			p.errAt(diag.SemHeterogeneousContainer, value.Span(),
				"dict values must share one type: got "+got.String()+" after "+valueType.String())
			return nil
		}
		keys = append(keys, keyTok.Text)
		values = append(values, value)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if p.failed {
		return nil
	}
	p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close the dict literal")
	t := types.DictOf(valueType)
	if valueType != types.None {
		p.internType(t)
	}
	return &ast.DictLit{Keys: keys, Values: values, DictType: t, ExprSpan: open.Span.Cover(p.lastSpan)}
}

func (p *Parser) parseLenExpr() ast.Expr {
	open := p.advance()
	p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'len'")
	arg := p.parseExpression()
	if p.failed {
		return nil
	}
	p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' to close 'len'")
	if !arg.Type().Base.IsHeapBacked() {
		p.errAt(diag.SemLenOnScalar, arg.Span(), "len() is not defined on "+arg.Type().String())
		return nil
	}
	p.internType(arg.Type())
	return &ast.LenExpr{Arg: arg, ExprSpan: open.Span.Cover(p.lastSpan)}
}
