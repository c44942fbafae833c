package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.minipy", []byte("x = 1"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("lib.minipy", []byte("y = 2"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}

	// Повторное добавление того же пути создаёт новую версию
	id3 := fs.Add("main.minipy", []byte("x = 3"), 0)
	if id3 != 2 {
		t.Errorf("expected third FileID to be 2, got %d", id3)
	}

	f, ok := fs.GetByPath("main.minipy")
	if !ok {
		t.Fatal("expected main.minipy to be indexed")
	}
	if f.ID != id3 {
		t.Errorf("expected index to point at latest version %d, got %d", id3, f.ID)
	}
}

func TestFileSetHashDiffersPerContent(t *testing.T) {
	fs := NewFileSet()
	a := fs.Add("a.minipy", []byte("x = 1"), 0)
	b := fs.Add("b.minipy", []byte("x = 2"), 0)

	if fs.Get(a).Hash == fs.Get(b).Hash {
		t.Error("expected different content to produce different hashes")
	}

	c := fs.Add("c.minipy", []byte("x = 1"), 0)
	if fs.Get(a).Hash != fs.Get(c).Hash {
		t.Error("expected identical content to produce identical hashes")
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "prog.minipy")

	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x = 1\r\ny = 2\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	f := fs.Get(id)
	if string(f.Content) != "x = 1\ny = 2\n" {
		t.Fatalf("expected normalized content, got %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestFileSetResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.minipy", []byte("x = 1\ny = 2\nprint(x)"))

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 11})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("expected start 2:1, got %d:%d", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 6 {
		t.Errorf("expected end 2:6, got %d:%d", end.Line, end.Col)
	}

	f := fs.Get(id)
	if got := f.GetLine(2); got != "y = 2" {
		t.Errorf("GetLine(2) = %q, want %q", got, "y = 2")
	}
	if got := f.GetLine(3); got != "print(x)" {
		t.Errorf("GetLine(3) = %q, want %q", got, "print(x)")
	}
	if got := f.GetLine(99); got != "" {
		t.Errorf("GetLine(99) = %q, want empty", got)
	}
}
