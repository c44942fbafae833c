package parser

import (
	"minipyc/internal/diag"
	"minipyc/internal/token"
	"minipyc/internal/types"
)

// parseCollectionType parses a type annotation: a scalar type name or a
// single-level container form `list[T]`, `tuple[T]`, `dict[string, V]`.
// Container elements must be scalar; deeper nesting is rejected.
func (p *Parser) parseCollectionType() types.Collection {
	switch p.peek().Kind {
	case token.TypeInt:
		p.advance()
		return types.Scalar(types.Int)
	case token.TypeFloat:
		p.advance()
		return types.Scalar(types.Float)
	case token.TypeString:
		p.advance()
		t := types.Scalar(types.String)
		p.internType(t)
		return t
	case token.TypeBool:
		p.advance()
		return types.Scalar(types.Bool)
	case token.TypeList:
		p.advance()
		p.expect(token.LBracket, diag.SynExpectType, "expected '[' after 'list'")
		elem := p.parseScalarTypeName()
		p.expect(token.RBracket, diag.SynExpectType, "expected ']' to close the element type")
		t := types.ListOf(elem)
		p.internType(t)
		return t
	case token.TypeTuple:
		p.advance()
		p.expect(token.LBracket, diag.SynExpectType, "expected '[' after 'tuple'")
		elem := p.parseScalarTypeName()
		p.expect(token.RBracket, diag.SynExpectType, "expected ']' to close the element type")
		t := types.TupleOf(elem)
		p.internType(t)
		return t
	case token.TypeDict:
		p.advance()
		p.expect(token.LBracket, diag.SynExpectType, "expected '[' after 'dict'")
		keySpan := p.diagSpan()
		key := p.parseScalarTypeName()
		if !p.failed && key != types.String {
			p.errAt(diag.SemDictKeyNotString, keySpan, "dict keys must be strings")
			return types.Collection{}
		}
		p.expect(token.Comma, diag.SynExpectType, "expected ',' between dict key and value types")
		value := p.parseScalarTypeName()
		p.expect(token.RBracket, diag.SynExpectType, "expected ']' to close the dict type")
		t := types.DictOf(value)
		p.internType(t)
		return t
	default:
		p.errHere(diag.SynExpectType, "expected a type name, got "+p.peek().Kind.String())
		return types.Collection{}
	}
}

// parseScalarTypeName accepts only int/float/string/bool. Container kinds in
// element position are a distinct diagnostic: nesting stops at one level.
func (p *Parser) parseScalarTypeName() types.VarType {
	switch p.peek().Kind {
	case token.TypeInt:
		p.advance()
		return types.Int
	case token.TypeFloat:
		p.advance()
		return types.Float
	case token.TypeString:
		p.advance()
		return types.String
	case token.TypeBool:
		p.advance()
		return types.Bool
	case token.TypeList, token.TypeTuple, token.TypeDict:
		p.errHere(diag.SynUnsupportedNesting, "nested container types are not supported")
		return types.None
	default:
		p.errHere(diag.SynExpectType, "expected a scalar type name, got "+p.peek().Kind.String())
		return types.None
	}
}

// assignable reports whether a value of type `from` may be bound to a target
// of type `to`. INT widens to FLOAT; everything else must match exactly.
func (p *Parser) assignable(to, from types.Collection) bool {
	if to.Equal(from) {
		return true
	}
	return to.Base == types.Float && from.Base == types.Int
}

// internType records the helper header a type's C representation needs.
func (p *Parser) internType(t types.Collection) {
	p.includes.Add(t.HelperHeader())
}
