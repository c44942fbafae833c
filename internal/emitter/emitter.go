// Package emitter lowers the typed AST to a C translation unit. The
// parser has already resolved every expression type and interned the
// helper headers, so emission is a single walk: sorted includes, the
// function definitions in source order, then int main() wrapping the
// top-level statements. Heap-backed locals are collected into a cleanup
// frame and freed through one shared epilogue per body, so every return
// path releases the same set.
package emitter

import (
	"fmt"
	"strings"

	"minipyc/internal/ast"
	"minipyc/internal/symbols"
	"minipyc/internal/types"
)

// Emit renders the program as a complete C translation unit. All
// temporaries come from a monotonic counter, so repeated calls over the
// same program produce byte-identical output.
func Emit(prog *ast.Program, includes *symbols.IncludeSet) string {
	e := &Emitter{includes: includes}
	for _, h := range includes.Sorted() {
		e.buf.WriteString("#include \"" + h + "\"\n")
	}
	e.buf.WriteByte('\n')
	for _, fn := range prog.Functions() {
		e.emitFunction(fn)
		e.buf.WriteByte('\n')
	}
	e.emitMain(prog.TopLevel())
	return e.buf.String()
}

// Emitter carries the state of one translation unit: the interned
// include set, the temp counter, and the cleanup frame of the body
// currently being emitted.
type Emitter struct {
	buf      strings.Builder
	includes *symbols.IncludeSet
	temps    symbols.TempCounter
	indent   int
	depth    int // вложенность блоков внутри текущего тела
	frame    []ownedLocal
}

// ownedLocal is a heap-backed name the current body frees in its epilogue.
type ownedLocal struct {
	name string
	typ  types.Collection
}

func (e *Emitter) linef(format string, args ...any) {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteString("    ")
	}
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

// own registers a heap-backed name for the epilogue. Names declared
// inside nested blocks go out of C scope before the epilogue runs, so
// only body-level locals and temporaries are tracked.
func (e *Emitter) own(name string, typ types.Collection) {
	if e.depth > 0 {
		return
	}
	e.frame = append(e.frame, ownedLocal{name: name, typ: typ})
}

// adopt hands a freshly built right-hand side over to the variable that
// now holds the pointer, so the epilogue frees the allocation exactly
// once. When the target is already tracked the temporary entry is
// dropped; when the right-hand side was a plain variable reference
// nothing changes, the original owner keeps the entry.
func (e *Emitter) adopt(name string, typ types.Collection, fresh bool) {
	if !fresh {
		return
	}
	last := len(e.frame) - 1
	for _, l := range e.frame[:last] {
		if l.name == name {
			e.frame = e.frame[:last]
			return
		}
	}
	e.frame[last] = ownedLocal{name: name, typ: typ}
}

func (e *Emitter) freeCall(l ownedLocal) string {
	return "free_" + l.typ.HelperSuffix() + "(" + l.name + ");"
}

// cstring renders a MiniPy string literal as a quoted C literal.
func cstring(s string) string {
	return "\"" + escapeC(s) + "\""
}

func escapeC(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
