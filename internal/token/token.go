package token

import (
	"minipyc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, Floating, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwDef, KwReturn, KwPrint, KwIf, KwElif, KwElse, KwFor, KwWhile,
		KwIn, KwRange, KwMatch, KwCase, KwAnd, KwOr, KwNot, KwTrue, KwFalse,
		KwLen, KwSep:
		return true
	default:
		return false
	}
}

// IsTypeName reports whether the token names a declared-variable type.
func (t Token) IsTypeName() bool {
	switch t.Kind {
	case TypeInt, TypeFloat, TypeString, TypeBool, TypeList, TypeTuple, TypeDict:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Assign, EqEq, BangEq, Lt, Gt, LtEq, GtEq,
		LParen, RParen, LBracket, RBracket, LBrace, RBrace, Colon, Comma, Dot:
		return true
	default:
		return false
	}
}

// IsLayout reports whether the token encodes line structure rather than text.
func (t Token) IsLayout() bool {
	switch t.Kind {
	case Newline, Indent, Dedent:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
