// Package cmd wires the cobra command tree for the plox binary: a default
// "run" behavior (script file or REPL) plus tokenize/ast debugging
// subcommands, mirroring the run/parse/lex command split in
// _examples/CWBudde-go-dws/cmd/dwscript/cmd.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdecook/plox/internal/interpreter"
	"github.com/sdecook/plox/internal/lox"
)

var (
	noColor   bool
	dumpAST   bool
	clockUnit string
)

var rootCmd = &cobra.Command{
	Use:   "plox [script]",
	Short: "plox is a tree-walking interpreter for the Lox language",
	Long: `plox interprets Lox programs: closures, classes with single
inheritance, and C-like control flow over a small integer/float/string/bool
value set.

With no arguments it starts an interactive REPL, reading one statement per
line until EOF. With one argument it runs that file once.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lastExitCode = lox.ExitSuccess
		return nil
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostics")
	rootCmd.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print each program's parsed AST before running it")
	rootCmd.PersistentFlags().StringVar(&clockUnit, "clock-unit", "seconds", "unit clock() reports in: seconds, millis, or unix")
}

// runnerOptions translates the process-wide flags into lox.Options.
func runnerOptions() lox.Options {
	unit := interpreter.ClockSeconds
	switch clockUnit {
	case "millis":
		unit = interpreter.ClockMillis
	case "unix":
		unit = interpreter.ClockUnixSeconds
	}
	return lox.Options{ClockUnit: unit, DumpAST: dumpAST}
}

// Execute runs the command tree and returns the process exit code:
// 0 success, 1 a static error (or a usage error) was reported, 2 a runtime
// error terminated the program.
func Execute() lox.ExitCode {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return lox.ExitStatic
	}
	return lastExitCode
}

// lastExitCode carries the exit code a RunE function computed back out to
// Execute, since cobra's own return value is only an error.
var lastExitCode = lox.ExitSuccess

func runRoot(cmd *cobra.Command, args []string) error {
	useColor := !noColor && !color.NoColor
	switch len(args) {
	case 0:
		lastExitCode = runREPL(useColor)
	case 1:
		lastExitCode = runFile(args[0], useColor)
	}
	return nil
}

func runFile(path string, useColor bool) lox.ExitCode {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "plox: %v\n", err)
		return lox.ExitStatic
	}
	runner := lox.NewRunner(os.Stdout, useColor, runnerOptions())
	return runner.Run(string(source))
}
