package emitter

import (
	"strings"

	"minipyc/internal/ast"
	"minipyc/internal/types"
)

// emitFunction renders one function definition. Returns inside the body
// jump to the shared cleanup label; the epilogue frees every owned
// local. return_value itself is never owned, so a heap-backed result
// survives the epilogue and reaches the caller.
func (e *Emitter) emitFunction(fn *ast.FunctionStmt) {
	e.frame = e.frame[:0]
	for _, p := range fn.Params {
		if p.Type.Base.IsHeapBacked() {
			e.own(p.Name, p.Type)
		}
	}

	ret := "void"
	if fn.ReturnType.Base != types.None {
		ret = fn.ReturnType.CType()
	}
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p.Type.CType()+" "+p.Name)
	}
	e.linef("%s %s(%s)", ret, fn.Name, strings.Join(params, ", "))
	e.linef("{")
	e.indent++

	returns := hasReturn(fn.Body)
	if returns && fn.ReturnType.Base != types.None {
		e.linef("%s return_value;", fn.ReturnType.CType())
	}
	for _, s := range fn.Body {
		e.emitStmt(s)
	}

	if returns {
		e.buf.WriteString("cleanup:\n")
	}
	for _, l := range e.frame {
		e.linef(e.freeCall(l))
	}
	if returns {
		if fn.ReturnType.Base != types.None {
			e.linef("return return_value;")
		} else {
			e.linef("return;")
		}
	}
	e.indent--
	e.linef("}")
}

// emitMain wraps the top-level statements in int main(). A top-level
// return carries its value out through return_value, otherwise main
// falls through to return 0.
func (e *Emitter) emitMain(stmts []ast.Stmt) {
	e.frame = e.frame[:0]
	e.linef("int main()")
	e.linef("{")
	e.indent++

	returns := hasReturn(stmts)
	if returns {
		e.linef("int return_value = 0;")
	}
	for _, s := range stmts {
		e.emitStmt(s)
	}

	if returns {
		e.buf.WriteString("cleanup:\n")
	}
	for _, l := range e.frame {
		e.linef(e.freeCall(l))
	}
	if returns {
		e.linef("return return_value;")
	} else {
		e.linef("return 0;")
	}
	e.indent--
	e.linef("}")
}

// hasReturn reports whether any statement in the body, at any block
// depth, is a return. Bodies without one skip the cleanup label.
func hasReturn(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		switch s := s.(type) {
		case *ast.ReturnStmt:
			return true
		case *ast.IfStmt:
			if hasReturn(s.Then) || hasReturn(s.Else) {
				return true
			}
			for _, b := range s.Elifs {
				if hasReturn(b.Body) {
					return true
				}
			}
		case *ast.ForStmt:
			if hasReturn(s.Body) {
				return true
			}
		case *ast.WhileStmt:
			if hasReturn(s.Body) {
				return true
			}
		case *ast.MatchStmt:
			for _, c := range s.Cases {
				if hasReturn(c.Body) {
					return true
				}
			}
		}
	}
	return false
}
