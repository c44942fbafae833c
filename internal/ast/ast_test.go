package ast

import (
	"testing"

	"minipyc/internal/types"
)

func TestProgramSplit(t *testing.T) {
	fn := &FunctionStmt{Name: "helper"}
	top1 := &AssignStmt{Name: "x", Type: types.Scalar(types.Int)}
	top2 := &PrintStmt{}
	prog := &Program{Stmts: []Stmt{top1, fn, top2}}

	funcs := prog.Functions()
	if len(funcs) != 1 || funcs[0].Name != "helper" {
		t.Fatalf("Functions() = %v", funcs)
	}
	top := prog.TopLevel()
	if len(top) != 2 {
		t.Fatalf("TopLevel() returned %d statements, want 2", len(top))
	}
	if top[0] != Stmt(top1) || top[1] != Stmt(top2) {
		t.Fatalf("TopLevel() order broken")
	}
}

func TestBinaryOpCSymbol(t *testing.T) {
	tests := []struct {
		op   BinaryOp
		want string
	}{
		{OpAdd, "+"},
		{OpDiv, "/"},
		{OpEq, "=="},
		{OpNotEq, "!="},
		{OpLtEq, "<="},
		{OpAnd, "&&"},
		{OpOr, "||"},
	}
	for _, tt := range tests {
		if got := tt.op.CSymbol(); got != tt.want {
			t.Fatalf("CSymbol(%s) = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestBinaryOpClasses(t *testing.T) {
	if !OpLt.IsComparison() || OpLt.IsArithmetic() || OpLt.IsLogical() {
		t.Fatalf("OpLt classified wrong")
	}
	if !OpAnd.IsLogical() || OpAnd.IsComparison() {
		t.Fatalf("OpAnd classified wrong")
	}
	if !OpMul.IsArithmetic() || OpMul.IsLogical() {
		t.Fatalf("OpMul classified wrong")
	}
}

func TestExprTypes(t *testing.T) {
	lit := &Literal{Kind: types.Float, Text: "1.5"}
	if got := lit.Type(); got.Base != types.Float {
		t.Fatalf("Literal.Type() = %v", got)
	}
	fs := &FString{Format: "%d", Args: []Expr{lit}}
	if got := fs.Type(); got.Base != types.String {
		t.Fatalf("FString.Type() = %v", got)
	}
	ln := &LenExpr{Arg: fs}
	if got := ln.Type(); got.Base != types.Int {
		t.Fatalf("LenExpr.Type() = %v", got)
	}
	idx := &IndexExpr{
		Name:      "xs",
		Container: types.ListOf(types.Bool),
		Index:     &Literal{Kind: types.Int, Text: "0"},
		ElemType:  types.Scalar(types.Bool),
	}
	if got := idx.Type(); got.Base != types.Bool {
		t.Fatalf("IndexExpr.Type() = %v", got)
	}
}
