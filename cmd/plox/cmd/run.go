package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/plox/internal/lox"
	"github.com/sdecook/plox/internal/repl"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a script file, or start the REPL with no arguments",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoot(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runREPL(useColor bool) lox.ExitCode {
	return repl.Run(os.Stdout, useColor, runnerOptions())
}
