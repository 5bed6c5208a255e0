// Package lox orchestrates the scan/parse/resolve/evaluate pipeline
// (components A-G) into the single entry point the CLI and REPL both call,
// owning the diagnostic reporter and the exit-code decision described in
// the language's external-interfaces contract.
package lox

import (
	"fmt"
	"io"

	"github.com/sdecook/plox/internal/ast"
	"github.com/sdecook/plox/internal/interpreter"
	"github.com/sdecook/plox/internal/lexer"
	"github.com/sdecook/plox/internal/loxerror"
	"github.com/sdecook/plox/internal/parser"
	"github.com/sdecook/plox/internal/resolver"
)

// ExitCode is the process exit status a run produces: 0 success, 1 a
// static error was reported, 2 a runtime error terminated the program.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	ExitStatic  ExitCode = 1
	ExitRuntime ExitCode = 2
)

// Options configures a Runner beyond where it writes and whether it colors
// its output.
type Options struct {
	// ClockUnit selects the unit the clock() builtin reports in.
	ClockUnit interpreter.ClockUnit
	// DumpAST prints each parsed program's AST before evaluating it,
	// mirroring `go-dws run --dump-ast`.
	DumpAST bool
}

// Runner holds one long-lived interpreter instance so a REPL session's
// global environment survives across input lines, and a reporter so every
// invocation shares one coloring decision.
type Runner struct {
	interp   *interpreter.Interpreter
	reporter *loxerror.Reporter
	out      io.Writer
	dumpAST  bool
}

// NewRunner creates a Runner that writes both program output and
// diagnostics to out, colorizing diagnostics when useColor is true.
func NewRunner(out io.Writer, useColor bool, opts Options) *Runner {
	return &Runner{
		interp:   interpreter.New(out, opts.ClockUnit),
		reporter: loxerror.NewReporter(out, useColor),
		out:      out,
		dumpAST:  opts.DumpAST,
	}
}

// Run executes one unit of source (a whole file, or one REPL line) and
// returns the exit code that unit produced. A static error short-circuits
// before the evaluator ever runs: the driver reports every scan and parse
// error, resolves only when neither phase reported one, and never calls the
// evaluator once any phase reported an error.
func (r *Runner) Run(source string) ExitCode {
	stmts, locals, ok := r.compile(source)
	if !ok {
		return ExitStatic
	}
	if r.dumpAST {
		fmt.Fprintln(r.out, ast.Print(stmts))
	}

	if rerr := r.interp.Interpret(stmts, locals); rerr != nil {
		r.reporter.Runtime(rerr)
		return ExitRuntime
	}
	return ExitSuccess
}

// compile runs the scan/parse/resolve phases, reporting every diagnostic
// they produce, and returns ok=false the moment any phase found an error.
func (r *Runner) compile(source string) ([]ast.Stmt, resolver.Locals, bool) {
	l := lexer.New(source)
	toks := l.Scan()
	for _, msg := range l.Errors() {
		r.reporter.RawStatic(msg)
	}

	p := parser.New(toks)
	stmts := p.Parse()
	for _, err := range p.Errors() {
		r.reporter.Static(err)
	}

	if len(l.Errors()) > 0 || len(p.Errors()) > 0 {
		return nil, nil, false
	}

	res := resolver.New()
	locals := res.Resolve(stmts)
	for _, err := range res.Errors() {
		r.reporter.Static(err)
	}
	if len(res.Errors()) > 0 {
		return nil, nil, false
	}

	return stmts, locals, true
}

// Tokens lexes source and returns its tokens, for `plox tokenize`; it does
// not stop at the first error, matching Scan's own recovery behavior.
func Tokens(source string) ([]string, []string) {
	l := lexer.New(source)
	toks := l.Scan()
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.String()
	}
	return out, l.Errors()
}

// Print parses source and returns the printed form of its AST, for
// `plox ast`. Parse errors are returned separately.
func Print(source string) (string, []string) {
	toks := lexer.New(source).Scan()
	p := parser.New(toks)
	stmts := p.Parse()
	if len(p.Errors()) > 0 {
		msgs := make([]string, len(p.Errors()))
		for i, e := range p.Errors() {
			msgs[i] = e.Error()
		}
		return "", msgs
	}
	return ast.Print(stmts), nil
}

// Evaluate parses source as a single expression, resolves it, and evaluates
// it against a throwaway interpreter, for `plox evaluate`. It never touches
// program state across calls, unlike Runner.Run.
func Evaluate(source string) (string, *loxerror.RuntimeError, []string) {
	toks := lexer.New(source).Scan()
	p := parser.New(toks)
	expr, err := p.ParseExpression()
	if err != nil {
		return "", nil, []string{err.Error()}
	}

	stmts := []ast.Stmt{&ast.ExpressionStmt{Expr: expr}}
	res := resolver.New()
	locals := res.Resolve(stmts)
	if len(res.Errors()) > 0 {
		msgs := make([]string, len(res.Errors()))
		for i, e := range res.Errors() {
			msgs[i] = e.Error()
		}
		return "", nil, msgs
	}

	interp := interpreter.New(io.Discard, interpreter.ClockSeconds)
	v, rerr := interp.EvaluateOne(expr, locals)
	if rerr != nil {
		return "", rerr, nil
	}
	return interpreter.Stringify(v), nil, nil
}
