package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/plox/internal/lox"
)

var astCmd = &cobra.Command{
	Use:   "ast <script>",
	Short: "Parse a script and print its AST in parenthesized form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		printed, errs := lox.Print(string(source))
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			lastExitCode = lox.ExitStatic
			return nil
		}
		fmt.Println(printed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(astCmd)
}
