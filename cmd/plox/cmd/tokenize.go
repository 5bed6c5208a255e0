package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdecook/plox/internal/lox"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <script>",
	Short: "Print one scanned token per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		lines, errs := lox.Tokens(string(source))
		for _, line := range lines {
			fmt.Println(line)
		}
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		if len(errs) > 0 {
			lastExitCode = lox.ExitStatic
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
