package ast

import (
	"minipyc/internal/source"
	"minipyc/internal/types"
)

// Expr is the closed set of expression nodes. Every expression carries the
// type the parser resolved for it.
type Expr interface {
	Node
	isExpr()
	Type() types.Collection
}

// Literal is an int, float, string, or bool literal.
// Text preserves the source spelling (string content without quotes).
type Literal struct {
	Kind     types.VarType
	Text     string
	ExprSpan source.Span
}

// VarRef is a reference to a declared variable.
type VarRef struct {
	Name     string
	VarType  types.Collection
	ExprSpan source.Span
}

// Binary is a binary operation with its result type.
type Binary struct {
	Op         BinaryOp
	Left       Expr
	Right      Expr
	ResultType types.Collection
	ExprSpan   source.Span
}

// CallExpr is a call of a user-defined function.
type CallExpr struct {
	Name       string
	Args       []Expr
	ReturnType types.Collection
	ExprSpan   source.Span
}

// IndexExpr is `name[index]` on a list, tuple, or dict.
type IndexExpr struct {
	Name      string
	Container types.Collection
	Index     Expr
	ElemType  types.Collection
	ExprSpan  source.Span
}

// MethodExpr is `target.method(args...)` for the fixed method table.
type MethodExpr struct {
	Target     string
	TargetType types.Collection
	Method     string
	Args       []Expr
	ResultType types.Collection
	ExprSpan   source.Span
}

// FString is an f-string already lowered to a snprintf format string plus
// its typed argument list, in interpolation order.
type FString struct {
	Format   string
	Args     []Expr
	ExprSpan source.Span
}

// ListLit is `[e1, e2, ...]` with a homogeneous element type.
type ListLit struct {
	Elems    []Expr
	ListType types.Collection
	ExprSpan source.Span
}

// TupleLit is `(e1, e2, ...)` with a homogeneous element type.
type TupleLit struct {
	Elems     []Expr
	TupleType types.Collection
	ExprSpan  source.Span
}

// DictLit is `{"k": v, ...}`; keys are string literals.
type DictLit struct {
	Keys     []string
	Values   []Expr
	DictType types.Collection
	ExprSpan source.Span
}

// LenExpr is the builtin `len(x)` over strings and containers.
type LenExpr struct {
	Arg      Expr
	ExprSpan source.Span
}

func (e *Literal) isExpr()    {}
func (e *VarRef) isExpr()     {}
func (e *Binary) isExpr()     {}
func (e *CallExpr) isExpr()   {}
func (e *IndexExpr) isExpr()  {}
func (e *MethodExpr) isExpr() {}
func (e *FString) isExpr()    {}
func (e *ListLit) isExpr()    {}
func (e *TupleLit) isExpr()   {}
func (e *DictLit) isExpr()    {}
func (e *LenExpr) isExpr()    {}

func (e *Literal) Span() source.Span    { return e.ExprSpan }
func (e *VarRef) Span() source.Span     { return e.ExprSpan }
func (e *Binary) Span() source.Span     { return e.ExprSpan }
func (e *CallExpr) Span() source.Span   { return e.ExprSpan }
func (e *IndexExpr) Span() source.Span  { return e.ExprSpan }
func (e *MethodExpr) Span() source.Span { return e.ExprSpan }
func (e *FString) Span() source.Span    { return e.ExprSpan }
func (e *ListLit) Span() source.Span    { return e.ExprSpan }
func (e *TupleLit) Span() source.Span   { return e.ExprSpan }
func (e *DictLit) Span() source.Span    { return e.ExprSpan }
func (e *LenExpr) Span() source.Span    { return e.ExprSpan }

func (e *Literal) Type() types.Collection    { return types.Scalar(e.Kind) }
func (e *VarRef) Type() types.Collection     { return e.VarType }
func (e *Binary) Type() types.Collection     { return e.ResultType }
func (e *CallExpr) Type() types.Collection   { return e.ReturnType }
func (e *IndexExpr) Type() types.Collection  { return e.ElemType }
func (e *MethodExpr) Type() types.Collection { return e.ResultType }
func (e *FString) Type() types.Collection    { return types.Scalar(types.String) }
func (e *ListLit) Type() types.Collection    { return e.ListType }
func (e *TupleLit) Type() types.Collection   { return e.TupleType }
func (e *DictLit) Type() types.Collection    { return e.DictType }
func (e *LenExpr) Type() types.Collection    { return types.Scalar(types.Int) }
