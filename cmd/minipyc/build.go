package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minipyc/internal/diagfmt"
	"minipyc/internal/driver"
	"minipyc/internal/project"
)

var buildCmd = &cobra.Command{
	Use:           "build [flags] file.minipy...",
	Short:         "Compile MiniPy sources to executables",
	Long:          "Build emits a C translation unit per input and runs the configured C compiler over each.",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

func init() {
	registerBuildFlags(buildCmd)
}

// registerBuildFlags is shared with the root command, which performs a
// build when given file arguments directly.
func registerBuildFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-cache", false, "ignore cached translation units")
	cmd.Flags().Int("jobs", 0, "max parallel translations (0=auto)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	var cfg project.Config
	if manifest, ok, merr := project.Load("."); merr != nil {
		return merr
	} else if ok {
		cfg = manifest.Config
	}

	// Кэш не критичен: без него сборка просто медленнее.
	cache, cerr := driver.OpenDiskCache("minipyc")
	if cerr != nil && !quiet {
		fmt.Fprintf(os.Stderr, "warning: disk cache unavailable: %v\n", cerr)
	}

	artifacts, err := driver.Build(cmd.Context(), args, driver.BuildOptions{
		MaxDiagnostics: maxDiagnostics,
		NoCache:        noCache,
		Jobs:           jobs,
		Config:         cfg,
		Cache:          cache,
	})
	if err != nil {
		var ce *driver.CompileError
		if errors.As(err, &ce) {
			diagfmt.Pretty(os.Stderr, ce.Result.Bag, ce.Result.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
		}
		return err
	}

	if !quiet {
		for _, art := range artifacts {
			if art.Cached {
				fmt.Fprintf(os.Stdout, "built %s (cached unit)\n", art.Output)
				continue
			}
			fmt.Fprintf(os.Stdout, "built %s\n", art.Output)
		}
	}
	return nil
}
