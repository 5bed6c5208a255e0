package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/plox/internal/lox"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <script>",
	Short: "Evaluate a single expression and print its value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		result, rerr, staticErrs := lox.Evaluate(string(source))
		if len(staticErrs) > 0 {
			for _, e := range staticErrs {
				fmt.Fprintln(os.Stderr, e)
			}
			lastExitCode = lox.ExitStatic
			return nil
		}
		if rerr != nil {
			fmt.Fprintln(os.Stderr, rerr)
			lastExitCode = lox.ExitRuntime
			return nil
		}
		fmt.Println(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
