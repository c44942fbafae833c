package emitter

import (
	"strings"
	"testing"

	"minipyc/internal/diag"
	"minipyc/internal/lexer"
	"minipyc/internal/parser"
	"minipyc/internal/source"
)

func compileSrc(t *testing.T, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.minipy", []byte(src))
	bag := diag.NewBag(10)
	toks := lexer.Tokenize(fs.Get(id), diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %+v", bag.Items())
	}
	res := parser.Parse(toks, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if !res.Ok {
		t.Fatalf("parse failed: %+v", bag.Items())
	}
	return Emit(res.Program, res.Includes)
}

func wantContains(t *testing.T, out string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(out, p) {
			t.Fatalf("emitted C is missing %q\n%s", p, out)
		}
	}
}

func TestEmitIntArithmetic(t *testing.T) {
	out := compileSrc(t, "int x = 1 + 2\nprint(x)\n")
	wantContains(t, out,
		"#include \"common.h\"",
		"int x = (1 + 2);",
		`printf("%d\n", x);`,
		"return 0;",
	)
	if !strings.HasPrefix(out, "#include") {
		t.Fatalf("translation unit must start with includes:\n%s", out)
	}
}

func TestEmitStringUpperFreesOldPointerOnce(t *testing.T) {
	out := compileSrc(t, "string s = \"ab\"\ns = s.upper()\n")
	wantContains(t, out,
		"char* temp_method_0 = str_upper(s);",
		"free(s);",
		"free_string(s);",
	)
	if n := strings.Count(out, "free(s);"); n != 1 {
		t.Fatalf("free(s) count = %d, want exactly 1\n%s", n, out)
	}
	if n := strings.Count(out, "free_string(s);"); n != 1 {
		t.Fatalf("free_string(s) count = %d, want exactly 1\n%s", n, out)
	}
}

func TestEmitRangeLoop(t *testing.T) {
	out := compileSrc(t, "for i in range(0, 3):\n    print(i)\n")
	wantContains(t, out, "for (int i = 0; i < 3; i++)")

	out = compileSrc(t, "for i in range(3):\n    print(i)\n")
	wantContains(t, out, "for (int i = 0; i < 3; i++)")
}

func TestEmitDictLiteral(t *testing.T) {
	out := compileSrc(t, "dict[string, int] m = {\"a\": 1, \"b\": 2}\nprint(m[\"a\"])\n")
	wantContains(t, out,
		"#include \"dict_string_int.h\"",
		"DictStringInt* temp_dict_0 = create_dict_string_int();",
		`dict_set_string_int(temp_dict_0, "a", 1);`,
		`dict_set_string_int(temp_dict_0, "b", 2);`,
		"DictStringInt* m = temp_dict_0;",
		`dict_get_string_int(m, "a")`,
		"free_dict_string_int(m);",
	)
	if strings.Contains(out, "free_dict_string_int(temp_dict_0);") {
		t.Fatalf("ownership was not transferred to the variable:\n%s", out)
	}
}

func TestEmitListLiteralOwnership(t *testing.T) {
	out := compileSrc(t, "list[int] xs = [1, 2]\nprint(len(xs))\n")
	wantContains(t, out,
		"ListInt* temp_list_0 = create_list_int(0);",
		"list_append_int(temp_list_0, 1);",
		"list_append_int(temp_list_0, 2);",
		"ListInt* xs = temp_list_0;",
		"xs->size",
		"free_list_int(xs);",
	)
	if strings.Contains(out, "free_list_int(temp_list_0);") {
		t.Fatalf("temporary freed alongside its adopter:\n%s", out)
	}
}

func TestEmitFunctionEpilogue(t *testing.T) {
	out := compileSrc(t, "def f(string s): int:\n    return len(s)\nprint(f(\"abc\"))\n")
	wantContains(t, out,
		"int f(char* s)",
		"int return_value;",
		"return_value = strlen(s);",
		"goto cleanup;",
		"cleanup:",
		"free_string(s);",
		"return return_value;",
		`printf("%d\n", f("abc"));`,
	)
}

func TestEmitFString(t *testing.T) {
	out := compileSrc(t, "int x = 5\nstring s = f\"v={x}\"\n")
	wantContains(t, out,
		"char temp_string_0[1024];",
		`snprintf(temp_string_0, 1024, "v=%d", x);`,
		"char* s = (char*)malloc(strlen(temp_string_0) + 1);",
		"strcpy(s, temp_string_0);",
	)
}

func TestEmitIndexAssign(t *testing.T) {
	out := compileSrc(t, "list[int] xs = [1]\nxs[0] = 5\n")
	wantContains(t, out, "xs->data[0] = 5;")

	out = compileSrc(t, "dict[string, int] m = {\"a\": 1}\nm[\"a\"] = 2\n")
	wantContains(t, out, `dict_set_string_int(m, "a", 2);`)
}

func TestEmitMatchBool(t *testing.T) {
	out := compileSrc(t, "bool b = true\nmatch b:\n    case true:\n        print(1)\n    case _:\n        print(2)\n")
	wantContains(t, out,
		"switch (b)",
		"case 1:",
		"default:",
		"break;",
	)
}

func TestEmitDivisionCastsToFloat(t *testing.T) {
	out := compileSrc(t, "float f = 4 / 2\n")
	wantContains(t, out, "float f = ((float)4 / 2);")
}

func TestEmitPrintSeparatorAndBool(t *testing.T) {
	out := compileSrc(t, "print(1, 2, sep=\"-\")\n")
	wantContains(t, out, `printf("%d-%d\n", 1, 2);`)

	out = compileSrc(t, "bool b = true\nprint(b)\n")
	wantContains(t, out, `printf("%s\n", b ? "true" : "false");`)
}

func TestEmitCleanupOnlyHeapNames(t *testing.T) {
	out := compileSrc(t, "int x = 1\nstring s = \"a\"\n")
	if n := strings.Count(out, "free_string("); n != 1 {
		t.Fatalf("free_string count = %d, want 1\n%s", n, out)
	}
	if strings.Contains(out, "free(x") || strings.Contains(out, "free_string(x") {
		t.Fatalf("scalar local must not be freed:\n%s", out)
	}
}

func TestEmitDeterministic(t *testing.T) {
	src := "list[int] xs = [1, 2]\nstring s = f\"n={len(xs)}\"\nprint(s)\n"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.minipy", []byte(src))
	bag := diag.NewBag(10)
	toks := lexer.Tokenize(fs.Get(id), diag.BagReporter{Bag: bag})
	res := parser.Parse(toks, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if !res.Ok {
		t.Fatalf("parse failed: %+v", bag.Items())
	}
	first := Emit(res.Program, res.Includes)
	second := Emit(res.Program, res.Includes)
	if first != second {
		t.Fatal("repeated emission over the same program differs")
	}
}

func TestEmitWhileAndIfChain(t *testing.T) {
	src := "int x = 3\nwhile x > 0:\n    if x == 2:\n        print(2)\n    elif x == 1:\n        print(1)\n    else:\n        print(x)\n    x = x - 1\n"
	out := compileSrc(t, src)
	wantContains(t, out,
		"while ((x > 0))",
		"if ((x == 2))",
		"else if ((x == 1))",
		"else",
		"x = (x - 1);",
	)
}
