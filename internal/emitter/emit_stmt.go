package emitter

import (
	"strings"

	"minipyc/internal/ast"
	"minipyc/internal/types"
)

func (e *Emitter) emitStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.AssignStmt:
		e.emitAssign(s)
	case *ast.IndexAssignStmt:
		e.emitIndexAssign(s)
	case *ast.FunctionStmt:
		// Определения функций печатаются на уровне файла.
	case *ast.CallStmt:
		e.emitCallStmt(s)
	case *ast.MethodCallStmt:
		e.method(s.Call)
	case *ast.ReturnStmt:
		e.emitReturn(s)
	case *ast.PrintStmt:
		e.emitPrint(s)
	case *ast.IfStmt:
		e.emitIf(s)
	case *ast.ForStmt:
		e.emitFor(s)
	case *ast.WhileStmt:
		e.emitWhile(s)
	case *ast.MatchStmt:
		e.emitMatch(s)
	}
}

// emitAssign lowers declarations and reassignments. STRING targets own a
// private malloc'd copy of the value; on rebind the old pointer is freed
// first. Container targets take over the freshly built pointer.
func (e *Emitter) emitAssign(s *ast.AssignStmt) {
	mark := len(e.frame)
	val := e.expr(s.Value)
	fresh := len(e.frame) > mark && e.frame[len(e.frame)-1].name == val

	switch {
	case s.Declared && s.Type.Base == types.String:
		e.linef("char* %s = (char*)malloc(strlen(%s) + 1);", s.Name, val)
		e.linef("strcpy(%s, %s);", s.Name, val)
		e.own(s.Name, s.Type)
	case s.Declared && s.Type.Base.IsContainer():
		e.linef("%s %s = %s;", s.Type.CType(), s.Name, val)
		e.adopt(s.Name, s.Type, fresh)
	case s.Declared:
		e.linef("%s %s = %s;", s.Type.CType(), s.Name, val)
	case s.Type.Base == types.String:
		e.linef("free(%s);", s.Name)
		e.linef("%s = (char*)malloc(strlen(%s) + 1);", s.Name, val)
		e.linef("strcpy(%s, %s);", s.Name, val)
	case s.Type.Base.IsContainer():
		e.linef("%s = %s;", s.Name, val)
		e.adopt(s.Name, s.Type, fresh)
	default:
		e.linef("%s = %s;", s.Name, val)
	}
}

func (e *Emitter) emitIndexAssign(s *ast.IndexAssignStmt) {
	idx := e.expr(s.Index)
	val := e.expr(s.Value)
	if s.Container.Base == types.Dict {
		e.linef("dict_set_string_%s(%s, %s, %s);", s.Container.Value, s.Name, idx, val)
		return
	}
	e.linef("%s->data[%s] = %s;", s.Name, idx, val)
}

func (e *Emitter) emitCallStmt(s *ast.CallStmt) {
	if s.Call.ReturnType.Base.IsHeapBacked() {
		e.call(s.Call) // значение уходит во временную, эпилог её освободит
		return
	}
	e.linef("%s;", e.call(s.Call))
}

// emitReturn routes every return through the shared cleanup epilogue so
// heap-backed locals are freed on each exit path.
func (e *Emitter) emitReturn(s *ast.ReturnStmt) {
	if s.Value != nil {
		e.linef("return_value = %s;", e.expr(s.Value))
	}
	e.linef("goto cleanup;")
}

// emitPrint builds one printf call: per-value conversions joined by the
// separator, a trailing newline, and the serialized argument list.
func (e *Emitter) emitPrint(s *ast.PrintStmt) {
	sep := " "
	if s.HasSep {
		sep = s.Sep
	}
	var format strings.Builder
	args := make([]string, 0, len(s.Values))
	for i, v := range s.Values {
		args = append(args, e.printfArg(v))
		format.WriteString(conversionFor(v.Type().Base))
		if i < len(s.Values)-1 {
			format.WriteString(escapeC(sep))
		}
	}
	format.WriteString("\\n")
	tail := ""
	if len(args) > 0 {
		tail = ", " + strings.Join(args, ", ")
	}
	e.linef("printf(\"%s\"%s);", format.String(), tail)
}

func conversionFor(t types.VarType) string {
	switch t {
	case types.Int:
		return "%d"
	case types.Float:
		return "%f"
	default:
		return "%s"
	}
}

// emitIf lowers an if/elif/else chain. All branch conditions are
// evaluated up front: a condition may need hoisted statements (a method
// temporary, an f-string buffer) and those lines cannot sit between a
// closing brace and its else.
func (e *Emitter) emitIf(s *ast.IfStmt) {
	conds := make([]string, 0, 1+len(s.Elifs))
	conds = append(conds, e.expr(s.Cond))
	for _, b := range s.Elifs {
		conds = append(conds, e.expr(b.Cond))
	}

	e.linef("if (%s)", conds[0])
	e.block(s.Then)
	for i, b := range s.Elifs {
		e.linef("else if (%s)", conds[i+1])
		e.block(b.Body)
	}
	if s.Else != nil {
		e.linef("else")
		e.block(s.Else)
	}
}

func (e *Emitter) emitFor(s *ast.ForStmt) {
	start := "0"
	if s.Start != nil {
		start = e.expr(s.Start)
	}
	stop := e.expr(s.Stop)
	e.linef("for (int %s = %s; %s < %s; %s++)", s.Var, start, s.Var, stop, s.Var)
	e.block(s.Body)
}

func (e *Emitter) emitWhile(s *ast.WhileStmt) {
	e.linef("while (%s)", e.expr(s.Cond))
	e.block(s.Body)
}

// emitMatch lowers match to a C switch; bool patterns become 1 and 0,
// the `_` arm becomes default.
func (e *Emitter) emitMatch(s *ast.MatchStmt) {
	e.linef("switch (%s)", e.expr(s.Subject))
	e.linef("{")
	e.depth++
	for _, c := range s.Cases {
		if c.Pattern == nil {
			e.linef("default:")
		} else {
			e.linef("case %s:", e.literal(c.Pattern))
		}
		e.indent++
		for _, st := range c.Body {
			e.emitStmt(st)
		}
		e.linef("break;")
		e.indent--
	}
	e.depth--
	e.linef("}")
}

func (e *Emitter) block(stmts []ast.Stmt) {
	e.linef("{")
	e.indent++
	e.depth++
	for _, s := range stmts {
		e.emitStmt(s)
	}
	e.depth--
	e.indent--
	e.linef("}")
}
