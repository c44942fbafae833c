// Package driver runs the compilation phases over real files: tokenize,
// parse, compile to C, and build executables through the external C
// compiler. It owns the disk cache that lets an unchanged source skip
// the frontend entirely.
package driver

import (
	"fmt"

	"minipyc/internal/diag"
	"minipyc/internal/emitter"
	"minipyc/internal/lexer"
	"minipyc/internal/parser"
	"minipyc/internal/source"
	"minipyc/internal/token"
)

// TokenizeResult is the outcome of the lex phase over one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads and lexes a single source file. Lex diagnostics go into
// the bag; the returned error covers IO failures only.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, diag.BagReporter{Bag: bag})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// ParseResult is the outcome of the lex and parse phases over one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Parse   parser.Result
}

// Parse lexes and parses a single source file. When the lexer reported
// errors the parse is skipped: the bag then holds only the lex
// diagnostics and Parse is left zero (Ok false).
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	tok, err := Tokenize(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{
		FileSet: tok.FileSet,
		File:    tok.File,
		Tokens:  tok.Tokens,
		Bag:     tok.Bag,
	}
	if tok.Bag.HasErrors() {
		return res, nil
	}
	res.Parse = parser.Parse(tok.Tokens, parser.Options{Reporter: diag.BagReporter{Bag: tok.Bag}})
	return res, nil
}

// CompileResult is a fully lowered translation unit for one file.
type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	C       string
}

// Compile runs lex, parse, and emission for a single file. C is empty
// when any phase reported an error.
func Compile(path string, maxDiagnostics int) (*CompileResult, error) {
	res, err := Parse(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	out := &CompileResult{
		FileSet: res.FileSet,
		File:    res.File,
		Bag:     res.Bag,
	}
	if res.Bag.HasErrors() || !res.Parse.Ok {
		return out, nil
	}
	out.C = emitter.Emit(res.Parse.Program, res.Parse.Includes)
	return out, nil
}

// CompileError surfaces a file's diagnostics through the error chain so
// the CLI can render them.
type CompileError struct {
	Path   string
	Result *CompileResult
}

func (e *CompileError) Error() string {
	n := 0
	for _, d := range e.Result.Bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return fmt.Sprintf("%s: compilation failed with %d error(s)", e.Path, n)
}
