// Command plox is the Lox interpreter's entry point: a thin wrapper around
// cmd/plox/cmd that hands the process exit code to the operating system.
package main

import (
	"os"

	"github.com/sdecook/plox/cmd/plox/cmd"
)

func main() {
	os.Exit(int(cmd.Execute()))
}
