package parser

import (
	"slices"
	"testing"

	"minipyc/internal/ast"
	"minipyc/internal/diag"
	"minipyc/internal/lexer"
	"minipyc/internal/source"
	"minipyc/internal/types"
)

func parseSrc(t *testing.T, src string) (Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.minipy", []byte(src))
	bag := diag.NewBag(10)
	toks := lexer.Tokenize(fs.Get(id), diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %+v", bag.Items())
	}
	return Parse(toks, Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func parseOk(t *testing.T, src string) Result {
	t.Helper()
	res, bag := parseSrc(t, src)
	if !res.Ok {
		t.Fatalf("parse failed: %+v", bag.Items())
	}
	return res
}

func parseErr(t *testing.T, src string, want diag.Code) {
	t.Helper()
	res, bag := parseSrc(t, src)
	if res.Ok {
		t.Fatalf("parse succeeded, want %s", want)
	}
	items := bag.Items()
	if len(items) == 0 {
		t.Fatalf("no diagnostics reported, want %s", want)
	}
	if items[0].Code != want {
		t.Fatalf("diagnostic = %s %q, want %s", items[0].Code, items[0].Message, want)
	}
}

func TestParseTypedAssign(t *testing.T) {
	res := parseOk(t, "int x = 1 + 2\nprint(x)\n")
	if len(res.Program.Stmts) != 2 {
		t.Fatalf("statement count = %d, want 2", len(res.Program.Stmts))
	}
	assign, ok := res.Program.Stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("first statement is %T, want *ast.AssignStmt", res.Program.Stmts[0])
	}
	if !assign.Declared || assign.Name != "x" || assign.Type.Base != types.Int {
		t.Fatalf("assign = %+v", assign)
	}
	if assign.Value.Type().Base != types.Int {
		t.Fatalf("value type = %v, want int", assign.Value.Type())
	}
}

func TestParsePrecedence(t *testing.T) {
	res := parseOk(t, "bool b = 1 + 2 * 3 == 7\n")
	assign := res.Program.Stmts[0].(*ast.AssignStmt)
	eq, ok := assign.Value.(*ast.Binary)
	if !ok || eq.Op != ast.OpEq {
		t.Fatalf("top operator = %+v, want ==", assign.Value)
	}
	add, ok := eq.Left.(*ast.Binary)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("left of == is %+v, want +", eq.Left)
	}
	mul, ok := add.Right.(*ast.Binary)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("right of + is %+v, want *", add.Right)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	res := parseOk(t, "int x = 1 - 2 - 3\n")
	assign := res.Program.Stmts[0].(*ast.AssignStmt)
	outer := assign.Value.(*ast.Binary)
	inner, ok := outer.Left.(*ast.Binary)
	if !ok || inner.Op != ast.OpSub {
		t.Fatalf("left operand = %+v, want (1 - 2)", outer.Left)
	}
}

func TestDivisionAlwaysFloat(t *testing.T) {
	res := parseOk(t, "float f = 4 / 2\n")
	assign := res.Program.Stmts[0].(*ast.AssignStmt)
	if assign.Value.Type().Base != types.Float {
		t.Fatalf("4 / 2 typed %v, want float", assign.Value.Type())
	}
	parseErr(t, "int x = 4 / 2\n", diag.SemIncompatibleAssignment)
}

func TestIntWidensToFloat(t *testing.T) {
	parseOk(t, "float f = 3\n")
	parseErr(t, "int x = 3.5\n", diag.SemIncompatibleAssignment)
}

func TestUndeclaredVariable(t *testing.T) {
	parseErr(t, "print(y)\n", diag.SemUndeclaredVariable)
}

func TestReassignment(t *testing.T) {
	res := parseOk(t, "int x = 1\nx = 2\n")
	second := res.Program.Stmts[1].(*ast.AssignStmt)
	if second.Declared {
		t.Fatalf("reassignment marked as declaration")
	}
	parseErr(t, "int x = 1\nx = \"s\"\n", diag.SemIncompatibleAssignment)
}

func TestFunctionCallChecks(t *testing.T) {
	header := "def add(int a, int b): int:\n    return a + b\n"
	res := parseOk(t, header+"int r = add(2, 3)\n")
	if len(res.Program.Functions()) != 1 {
		t.Fatalf("function count = %d, want 1", len(res.Program.Functions()))
	}
	parseErr(t, header+"int r = add(2, \"x\")\n", diag.SemParamTypeMismatch)
	parseErr(t, header+"int r = add(2)\n", diag.SemArityMismatch)
	parseErr(t, "int r = add(2, 3)\n", diag.SemUndefinedFunction)
}

func TestSelfRecursionResolves(t *testing.T) {
	parseOk(t, "def fact(int n): int:\n    if n == 0:\n        return 1\n    return n * fact(n - 1)\n")
}

func TestTopLevelReturnMustBeInt(t *testing.T) {
	parseOk(t, "return 0\n")
	parseErr(t, "return \"hello\"\n", diag.SemReturnTypeMismatch)
	parseErr(t, "return 3.14\n", diag.SemReturnTypeMismatch)
}

func TestFunctionLocalsAreScoped(t *testing.T) {
	// Локальные переменные функции не видны после её тела.
	parseErr(t, "def f():\n    int x = 1\nprint(x)\n", diag.SemUndeclaredVariable)
}

func TestReturnTypeChecked(t *testing.T) {
	parseErr(t, "def f(): int:\n    return \"a\"\n", diag.SemReturnTypeMismatch)
	parseErr(t, "def f():\n    return 1\n", diag.SemReturnTypeMismatch)
	parseOk(t, "def f(): float:\n    return 1\n")
}

func TestMethodTable(t *testing.T) {
	parseOk(t, "list[int] xs = [1, 2]\nxs.append(3)\n")
	parseOk(t, "string s = \"ab\"\ns = s.upper()\n")
	parseOk(t, "string s = \"a,b\"\nlist[string] parts = s.split(\",\")\n")
	parseErr(t, "int x = 1\nx.upper()\n", diag.SemUnknownMethod)
	parseErr(t, "list[int] xs = [1]\nxs.append(\"s\")\n", diag.SemParamTypeMismatch)
	parseErr(t, "string s = \"ab\"\ns.replace(\"a\")\n", diag.SemArityMismatch)
}

func TestDictLiteralAndIndex(t *testing.T) {
	res := parseOk(t, "dict[string, int] m = {\"a\": 1, \"b\": 2}\nprint(m[\"a\"])\n")
	if !slices.Contains(res.Includes.Sorted(), "dict_string_int.h") {
		t.Fatalf("includes = %v, want dict_string_int.h", res.Includes.Sorted())
	}
	parseErr(t, "dict[string, int] m = {\"a\": 1}\nprint(m[1])\n", diag.SemDictKeyNotString)
}

func TestIndexRules(t *testing.T) {
	parseOk(t, "list[int] xs = [1, 2]\nxs[0] = 5\n")
	parseErr(t, "list[int] xs = [1]\nprint(xs[\"a\"])\n", diag.SemIndexNotInteger)
	parseErr(t, "tuple[int] tp = (1, 2)\ntp[0] = 5\n", diag.SemInvalidOperands)
}

func TestHeterogeneousList(t *testing.T) {
	parseErr(t, "list[int] xs = [1, \"a\"]\n", diag.SemHeterogeneousContainer)
}

func TestNestedContainerRejected(t *testing.T) {
	parseErr(t, "list[list[int]] xs = []\n", diag.SynUnsupportedNesting)
}

func TestLenRules(t *testing.T) {
	res := parseOk(t, "string s = \"abc\"\nint n = len(s)\n")
	assign := res.Program.Stmts[1].(*ast.AssignStmt)
	if _, ok := assign.Value.(*ast.LenExpr); !ok {
		t.Fatalf("value is %T, want *ast.LenExpr", assign.Value)
	}
	parseErr(t, "int x = 1\nint n = len(x)\n", diag.SemLenOnScalar)
}

func TestEmptyListAdoptsDeclaredType(t *testing.T) {
	res := parseOk(t, "list[int] xs = []\n")
	assign := res.Program.Stmts[0].(*ast.AssignStmt)
	lit := assign.Value.(*ast.ListLit)
	if lit.ListType.Elem != types.Int {
		t.Fatalf("empty list adopted %v, want list[int]", lit.ListType)
	}
}

func TestMatchSubjectRules(t *testing.T) {
	parseOk(t, "int x = 1\nmatch x:\n    case 1:\n        print(1)\n    case _:\n        print(0)\n")
	parseOk(t, "bool b = true\nmatch b:\n    case true:\n        print(1)\n")
	parseErr(t, "string s = \"a\"\nmatch s:\n    case 1:\n        print(1)\n", diag.SemInvalidOperands)
}

func TestForRange(t *testing.T) {
	res := parseOk(t, "for i in range(0, 3):\n    print(i)\n")
	loop := res.Program.Stmts[0].(*ast.ForStmt)
	if loop.Start == nil || loop.Var != "i" {
		t.Fatalf("loop = %+v", loop)
	}
	single := parseOk(t, "for i in range(3):\n    print(i)\n")
	if single.Program.Stmts[0].(*ast.ForStmt).Start != nil {
		t.Fatalf("single-argument range should leave Start nil")
	}
	parseErr(t, "for i in range(1.5):\n    print(i)\n", diag.SemInvalidOperands)
}

func TestLogicalOperandsMustBeBool(t *testing.T) {
	parseOk(t, "bool b = true and 1 == 1\n")
	parseErr(t, "bool b = 1 and true\n", diag.SemInvalidOperands)
}

func TestStringConcat(t *testing.T) {
	res := parseOk(t, "string s = \"a\" + \"b\"\n")
	if res.Program.Stmts[0].(*ast.AssignStmt).Value.Type().Base != types.String {
		t.Fatalf("string + string should type as string")
	}
	parseErr(t, "string s = \"a\" + 1\n", diag.SemInvalidOperands)
}

func TestIncludesAlwaysCarryCommon(t *testing.T) {
	res := parseOk(t, "int x = 1\n")
	got := res.Includes.Sorted()
	if !slices.Contains(got, "common.h") {
		t.Fatalf("includes = %v, want common.h present", got)
	}
}

func TestPrintSeparator(t *testing.T) {
	res := parseOk(t, "print(1, 2, sep=\"-\")\n")
	stmt := res.Program.Stmts[0].(*ast.PrintStmt)
	if !stmt.HasSep || stmt.Sep != "-" || len(stmt.Values) != 2 {
		t.Fatalf("print = %+v", stmt)
	}
	parseErr(t, "print(1, sep=2)\n", diag.SemParamTypeMismatch)
}

func TestMissingColonAborts(t *testing.T) {
	parseErr(t, "if true\n    print(1)\n", diag.SynExpectColon)
}

func TestFirstErrorAborts(t *testing.T) {
	_, bag := parseSrc(t, "print(y)\nprint(z)\n")
	if len(bag.Items()) != 1 {
		t.Fatalf("diagnostic count = %d, want 1 (first error aborts)", len(bag.Items()))
	}
}
