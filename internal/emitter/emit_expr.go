package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"minipyc/internal/ast"
	"minipyc/internal/types"
)

// expr lowers an expression to a C expression string. Nodes that need
// statements of their own (container literals, f-strings, heap-returning
// calls) emit those lines first and return the temporary's name.
func (e *Emitter) expr(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Literal:
		return e.literal(x)
	case *ast.VarRef:
		return x.Name
	case *ast.Binary:
		return e.binary(x)
	case *ast.CallExpr:
		return e.call(x)
	case *ast.IndexExpr:
		return e.index(x)
	case *ast.MethodExpr:
		return e.method(x)
	case *ast.FString:
		return e.fstring(x)
	case *ast.ListLit:
		return e.listLit(x)
	case *ast.TupleLit:
		return e.tupleLit(x)
	case *ast.DictLit:
		return e.dictLit(x)
	case *ast.LenExpr:
		return e.lenExpr(x)
	}
	return ""
}

func (e *Emitter) literal(x *ast.Literal) string {
	switch x.Kind {
	case types.String:
		return cstring(x.Text)
	case types.Bool:
		if x.Text == "true" {
			return "1"
		}
		return "0"
	default:
		return x.Text
	}
}

func (e *Emitter) binary(x *ast.Binary) string {
	left := e.expr(x.Left)
	right := e.expr(x.Right)
	if x.Op == ast.OpDiv {
		// Деление всегда FLOAT, иначе C обрежет целые операнды.
		return fmt.Sprintf("((float)%s / %s)", left, right)
	}
	return fmt.Sprintf("(%s %s %s)", left, x.Op.CSymbol(), right)
}

func (e *Emitter) call(x *ast.CallExpr) string {
	args := e.exprList(x.Args)
	if x.ReturnType.Base.IsHeapBacked() {
		tmp := e.temps.Next("temp_call")
		e.linef("%s %s = %s(%s);", x.ReturnType.CType(), tmp, x.Name, args)
		e.own(tmp, x.ReturnType)
		return tmp
	}
	return fmt.Sprintf("%s(%s)", x.Name, args)
}

func (e *Emitter) exprList(args []ast.Expr) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, e.expr(a))
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) index(x *ast.IndexExpr) string {
	idx := e.expr(x.Index)
	if x.Container.Base == types.Dict {
		return fmt.Sprintf("dict_get_string_%s(%s, %s)", x.Container.Value, x.Name, idx)
	}
	return fmt.Sprintf("%s->data[%s]", x.Name, idx)
}

// method lowers a method call. Value-returning string methods always go
// through a named temporary so their heap result can be freed; append
// mutates in place and yields nothing.
func (e *Emitter) method(x *ast.MethodExpr) string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, e.expr(a))
	}
	switch x.Method {
	case "append":
		e.linef("list_append_%s(%s, %s);", x.TargetType.Elem, x.Target, args[0])
		return ""
	case "upper", "lower", "strip":
		tmp := e.temps.Next("temp_method")
		e.linef("char* %s = str_%s(%s);", tmp, x.Method, x.Target)
		e.own(tmp, types.Scalar(types.String))
		return tmp
	case "replace":
		tmp := e.temps.Next("temp_method")
		e.linef("char* %s = str_replace(%s, %s, %s);", tmp, x.Target, args[0], args[1])
		e.own(tmp, types.Scalar(types.String))
		return tmp
	case "split":
		sep := "NULL"
		if len(args) > 0 {
			sep = args[0]
		}
		tmp := e.temps.Next("temp_method")
		e.linef("ListString* %s = str_split(%s, %s);", tmp, x.Target, sep)
		e.own(tmp, types.ListOf(types.String))
		return tmp
	case "find":
		tmp := e.temps.Next("temp_method")
		e.linef("int %s = str_find(%s, %s);", tmp, x.Target, args[0])
		return tmp
	}
	return ""
}

// fstring materializes the snprintf buffer the parser prepared the
// format string for.
func (e *Emitter) fstring(x *ast.FString) string {
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, e.printfArg(a))
	}
	tmp := e.temps.Next("temp_string")
	e.linef("char %s[1024];", tmp)
	tail := ""
	if len(args) > 0 {
		tail = ", " + strings.Join(args, ", ")
	}
	e.linef("snprintf(%s, 1024, \"%s\"%s);", tmp, escapeC(x.Format), tail)
	return tmp
}

// printfArg renders an expression as a printf/snprintf argument: BOOL
// becomes a true/false ternary, containers go through their to_string
// helpers, everything else passes through.
func (e *Emitter) printfArg(x ast.Expr) string {
	v := e.expr(x)
	t := x.Type()
	switch t.Base {
	case types.Bool:
		return v + " ? \"true\" : \"false\""
	case types.List:
		return fmt.Sprintf("list_to_string_%s(%s)", t.Elem, v)
	case types.Tuple:
		return fmt.Sprintf("tuple_to_string_%s(%s)", t.Elem, v)
	case types.Dict:
		return fmt.Sprintf("dict_to_string_string_%s(%s)", t.Value, v)
	default:
		return v
	}
}

func (e *Emitter) listLit(x *ast.ListLit) string {
	tmp := e.temps.Next("temp_list")
	e.linef("%s %s = create_list_%s(0);", x.ListType.CType(), tmp, x.ListType.Elem)
	for _, el := range x.Elems {
		v := e.expr(el)
		e.linef("list_append_%s(%s, %s);", x.ListType.Elem, tmp, v)
	}
	e.own(tmp, x.ListType)
	return tmp
}

func (e *Emitter) tupleLit(x *ast.TupleLit) string {
	tmp := e.temps.Next("temp_tuple")
	e.linef("%s %s = create_tuple_%s(%s);", x.TupleType.CType(), tmp, x.TupleType.Elem, strconv.Itoa(len(x.Elems)))
	for i, el := range x.Elems {
		v := e.expr(el)
		e.linef("%s->data[%d] = %s;", tmp, i, v)
	}
	e.own(tmp, x.TupleType)
	return tmp
}

func (e *Emitter) dictLit(x *ast.DictLit) string {
	tmp := e.temps.Next("temp_dict")
	e.linef("%s %s = create_dict_string_%s();", x.DictType.CType(), tmp, x.DictType.Value)
	for i, k := range x.Keys {
		v := e.expr(x.Values[i])
		e.linef("dict_set_string_%s(%s, %s, %s);", x.DictType.Value, tmp, cstring(k), v)
	}
	e.own(tmp, x.DictType)
	return tmp
}

func (e *Emitter) lenExpr(x *ast.LenExpr) string {
	v := e.expr(x.Arg)
	if x.Arg.Type().Base == types.String {
		return "strlen(" + v + ")"
	}
	return v + "->size"
}
