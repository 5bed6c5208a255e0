// Package repl implements an interactive read-eval-print loop: one line of
// source per Enter, exiting cleanly on EOF (Ctrl-D).
package repl

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/sdecook/plox/internal/lox"
)

// Run starts an interactive session reading from stdin and writing both
// output and diagnostics to out, returning once the user sends EOF. The
// returned exit code reflects only the last line evaluated, matching a
// REPL's usual "last result wins" convention; no single bad line aborts the
// session.
func Run(out io.Writer, useColor bool, opts lox.Options) lox.ExitCode {
	historyFile := filepath.Join(os.TempDir(), ".plox_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		// Readline needs a real terminal to install its line editor; fall
		// back to a plain line reader so piped input (tests, scripts via
		// stdin) still works.
		return runPlain(out, useColor, opts)
	}
	defer rl.Close()

	runner := lox.NewRunner(out, useColor, opts)
	lastCode := lox.ExitSuccess
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return lastCode
		}
		if err != nil {
			return lastCode
		}
		if line == "" {
			continue
		}
		lastCode = runner.Run(line)
	}
}

// runPlain is the non-interactive fallback used when readline cannot take
// over the terminal (e.g. stdin is a pipe).
func runPlain(out io.Writer, useColor bool, opts lox.Options) lox.ExitCode {
	runner := lox.NewRunner(out, useColor, opts)
	lastCode := lox.ExitSuccess

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lastCode = runner.Run(line)
	}
	return lastCode
}
