// Package project locates and parses the optional minipy.toml manifest.
// The manifest names the package and configures the external C compiler
// invocation; without one the driver falls back to `cc output.c -o
// output.exe`.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded minipy.toml with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the minipy.toml schema.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig is the [package] table.
type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig is the [build] table. CC is the compiler argument vector,
// e.g. ["gcc", "-O2"]; Output names the produced executable.
type BuildConfig struct {
	CC     []string `toml:"cc"`
	Output string   `toml:"output"`
}

// DefaultCC and DefaultOutput are used when the manifest is absent or
// leaves the [build] table empty.
var (
	DefaultCC     = []string{"cc"}
	DefaultOutput = "output.exe"
)

// FindManifest walks up from startDir to locate minipy.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "minipy.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load returns the manifest discovered from startDir, or ok=false when
// no minipy.toml exists in any parent directory.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("package") && !IsValidPackageName(cfg.Package.Name) {
		return Config{}, fmt.Errorf("%s: invalid package name %q", path, cfg.Package.Name)
	}
	return cfg, nil
}

// CompileCommand returns the C compiler argv for one translation unit.
func (c Config) CompileCommand(cFile, output string) []string {
	cc := c.Build.CC
	if len(cc) == 0 {
		cc = DefaultCC
	}
	argv := make([]string, 0, len(cc)+3)
	argv = append(argv, cc...)
	argv = append(argv, cFile, "-o", output)
	return argv
}

// OutputName returns the executable name the manifest asks for, or the
// default when unset.
func (c Config) OutputName() string {
	if c.Build.Output != "" {
		return c.Build.Output
	}
	return DefaultOutput
}

// IsValidPackageName accepts ASCII identifiers: a letter or underscore
// followed by letters, digits, or underscores.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
