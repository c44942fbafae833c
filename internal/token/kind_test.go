package token_test

import (
	"testing"

	"minipyc/internal/source"
	"minipyc/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.Number, token.Floating, token.StringLit,
		token.KwTrue, token.KwFalse,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwDef, token.Plus, token.LParen, token.Indent}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash,
		token.Assign, token.EqEq, token.BangEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.LBrace, token.RBrace, token.Colon, token.Comma, token.Dot,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.Number, token.KwIf, token.Newline, token.EOF}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsLayout(t *testing.T) {
	for _, k := range []token.Kind{token.Newline, token.Indent, token.Dedent} {
		if !tok(k).IsLayout() {
			t.Fatalf("%v should be layout", k)
		}
	}
	for _, k := range []token.Kind{token.EOF, token.Ident, token.Colon} {
		if tok(k).IsLayout() {
			t.Fatalf("%v must NOT be layout", k)
		}
	}
}

func TestIsTypeName(t *testing.T) {
	types := []token.Kind{
		token.TypeInt, token.TypeFloat, token.TypeString, token.TypeBool,
		token.TypeList, token.TypeTuple, token.TypeDict,
	}
	for _, k := range types {
		if !tok(k).IsTypeName() {
			t.Fatalf("%v should be a type name", k)
		}
	}
	if tok(token.Ident).IsTypeName() {
		t.Fatal("Ident must NOT be a type name")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.KwDef:             "DEF",
		token.Ident:             "IDENT",
		token.Number:            "NUMBER",
		token.FStringStart:      "FSTRING_START",
		token.FStringFormatSpec: "FSTRING_FORMAT_SPEC",
		token.Indent:            "INDENT",
		token.Dedent:            "DEDENT",
		token.CallMethod:        "CALL_METHOD",
		token.EOF:               "EOF",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}

	if got := token.Kind(250).String(); got != "UNKNOWN" {
		t.Fatalf("unknown kind String() = %q, want UNKNOWN", got)
	}
}
