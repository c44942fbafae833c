package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minipyc/internal/project"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(filepath.Join(t.TempDir(), "absent.minipy"), 10)
	if err == nil {
		t.Fatal("expected an IO error for a missing file")
	}
}

func TestCompileProducesC(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.minipy", "int x = 1 + 2\nprint(x)\n")
	res, err := Compile(path, 10)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if !strings.Contains(res.C, "int x = (1 + 2);") {
		t.Fatalf("emitted C missing assignment:\n%s", res.C)
	}
	if !strings.Contains(res.C, "printf(") {
		t.Fatalf("emitted C missing printf:\n%s", res.C)
	}
}

func TestCompileCollectsDiagnostics(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.minipy", "print(y)\n")
	res, err := Compile(path, 10)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected diagnostics for an undeclared variable")
	}
	if res.C != "" {
		t.Fatalf("C emitted despite errors:\n%s", res.C)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := [32]byte{1, 2, 3}
	in := &UnitPayload{Schema: diskCacheSchemaVersion, Source: "main.minipy", C: "int main()\n{\n    return 0;\n}\n"}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	out, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if out.C != in.C || out.Source != in.Source {
		t.Fatalf("payload round-trip mismatch: %+v", out)
	}

	if _, ok, err := cache.Get([32]byte{9}); err != nil || ok {
		t.Fatalf("unexpected hit for an unknown key: %v, %v", ok, err)
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := [32]byte{7}
	if err := cache.Put(key, &UnitPayload{Schema: diskCacheSchemaVersion + 1, C: "stale"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("stale schema treated as hit: %v, %v", ok, err)
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put([32]byte{}, &UnitPayload{}); err != nil {
		t.Fatalf("nil Put: %v", err)
	}
	if _, ok, err := cache.Get([32]byte{}); err != nil || ok {
		t.Fatalf("nil Get = %v, %v", ok, err)
	}
}

func TestBuildSecondRunHitsCache(t *testing.T) {
	dir := t.TempDir()
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prevDir) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	writeSource(t, dir, "main.minipy", "int x = 42\nprint(x)\n")

	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := BuildOptions{
		MaxDiagnostics: 10,
		Cache:          cache,
		Config:         project.Config{Build: project.BuildConfig{CC: []string{"true"}}},
	}

	arts, err := Build(context.Background(), []string{"main.minipy"}, opts)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if len(arts) != 1 || arts[0].Cached {
		t.Fatalf("first build artifacts = %+v", arts)
	}
	first, err := os.ReadFile(arts[0].CPath)
	if err != nil {
		t.Fatalf("read unit: %v", err)
	}

	arts, err = Build(context.Background(), []string{"main.minipy"}, opts)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if !arts[0].Cached {
		t.Fatal("second build missed the cache")
	}
	second, err := os.ReadFile(arts[0].CPath)
	if err != nil {
		t.Fatalf("read unit: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("cached translation unit differs from the fresh one")
	}
}

func TestBuildSurfacesCompileError(t *testing.T) {
	dir := t.TempDir()
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prevDir) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	writeSource(t, dir, "bad.minipy", "print(y)\n")

	_, err = Build(context.Background(), []string{"bad.minipy"}, BuildOptions{MaxDiagnostics: 10})
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	if !strings.Contains(ce.Error(), "1 error(s)") {
		t.Fatalf("CompileError message = %q", ce.Error())
	}
}

func TestArtifactNames(t *testing.T) {
	cfg := project.Config{Build: project.BuildConfig{Output: "demo.exe"}}
	single := artifactNames("main.minipy", true, cfg)
	if single.CPath != "output.c" || single.Output != "demo.exe" {
		t.Fatalf("single artifact = %+v", single)
	}
	batch := artifactNames("tools/gen.minipy", false, cfg)
	if batch.CPath != filepath.Join("tools", "gen.c") || batch.Output != filepath.Join("tools", "gen.exe") {
		t.Fatalf("batch artifact = %+v", batch)
	}
}
