package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minipyc/internal/diagfmt"
	"minipyc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:           "parse [flags] file.minipy",
	Short:         "Parse and type-check a MiniPy source file",
	Long:          `Parse runs the frontend over a MiniPy source file and reports every diagnostic without producing C`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		opts := diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}
	if result.Bag.HasErrors() || !result.Parse.Ok {
		return fmt.Errorf("%s: parse failed", filePath)
	}

	if !quiet {
		prog := result.Parse.Program
		fmt.Fprintf(os.Stdout, "%s: ok, %d statement(s), %d function(s)\n",
			filePath, len(prog.Stmts), len(prog.Functions()))
	}
	return nil
}
