package driver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"minipyc/internal/project"
	"minipyc/internal/source"
)

// BuildOptions configures one driver.Build invocation.
type BuildOptions struct {
	MaxDiagnostics int
	NoCache        bool
	Jobs           int
	Config         project.Config
	Cache          *DiskCache // nil disables caching entirely
}

// BuildArtifact describes one produced executable.
type BuildArtifact struct {
	Source string
	CPath  string
	Output string
	Cached bool
}

// Build compiles each input to its translation unit concurrently, then
// runs the external C compiler serially per artifact. A single input
// honors the manifest's output name; batch builds derive per-file names.
func Build(ctx context.Context, paths []string, opts BuildOptions) ([]BuildArtifact, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	artifacts := make([]BuildArtifact, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	single := len(paths) == 1
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			art, err := translate(path, single, opts)
			if err != nil {
				return err
			}
			artifacts[i] = art
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Компилятор C запускаем последовательно: артефакты могут делить
	// выходные имена и заголовки.
	for _, art := range artifacts {
		if err := runCC(ctx, opts.Config, art); err != nil {
			return nil, err
		}
	}
	return artifacts, nil
}

// translate produces the C translation unit for one input, consulting
// the disk cache unless NoCache is set, and writes it next to the
// chosen output name.
func translate(path string, single bool, opts BuildOptions) (BuildArtifact, error) {
	art := artifactNames(path, single, opts.Config)

	if !opts.NoCache && opts.Cache != nil {
		key, err := sourceKey(path)
		if err != nil {
			return art, err
		}
		if payload, ok, err := opts.Cache.Get(key); err == nil && ok {
			art.Cached = true
			return art, writeUnit(art.CPath, payload.C)
		}
	}

	res, err := Compile(path, opts.MaxDiagnostics)
	if err != nil {
		return art, err
	}
	if res.Bag.HasErrors() {
		return art, &CompileError{Path: path, Result: res}
	}
	if opts.Cache != nil {
		// Кэш обновляем и при --no-cache: флаг отключает только чтение.
		_ = opts.Cache.Put(res.File.Hash, &UnitPayload{
			Schema: diskCacheSchemaVersion,
			Source: path,
			C:      res.C,
		})
	}
	return art, writeUnit(art.CPath, res.C)
}

func artifactNames(path string, single bool, cfg project.Config) BuildArtifact {
	if single {
		return BuildArtifact{Source: path, CPath: "output.c", Output: cfg.OutputName()}
	}
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return BuildArtifact{Source: path, CPath: stem + ".c", Output: stem + ".exe"}
}

func writeUnit(path, c string) error {
	if err := os.WriteFile(path, []byte(c), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// sourceKey hashes the file the same way the FileSet does, so cache keys
// match File.Hash for identical content.
func sourceKey(path string) ([32]byte, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return [32]byte{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fs.Get(id).Hash, nil
}

func runCC(ctx context.Context, cfg project.Config, art BuildArtifact) error {
	argv := cfg.CompileCommand(art.CPath, art.Output)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("C compiler failed for %s: %w\n%s", art.Source, err, msg)
		}
		return fmt.Errorf("C compiler failed for %s: %w", art.Source, err)
	}
	return nil
}
