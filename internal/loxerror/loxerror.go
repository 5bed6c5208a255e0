// Package loxerror implements the uniform, line-annotated diagnostics
// reporter shared by the scanner, parser, resolver, and evaluator, and the
// terminal coloring applied when diagnostics reach an interactive output.
package loxerror

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// StaticError is a scan, parse, or resolve time diagnostic. Static errors
// are collected rather than aborting the whole pass: the parser
// synchronizes and keeps going, the resolver keeps walking the tree.
type StaticError struct {
	Line    int
	Where   string // "" for scanner errors, " at end", or " at 'lexeme'"
	Message string
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// RuntimeKind enumerates the distinct runtime error taxonomy plox reports.
type RuntimeKind int

const (
	OperandMustBeNumber RuntimeKind = iota
	OperandsMustBeNumbers
	OperandsMustBeNumbersOrStrings
	DivisionByZero
	UndefinedVariable
	UndefinedProperty
	NotCallable
	ArityMismatch
	PropertyAccessOnNonInstance
	SuperclassMustBeClass
)

// RuntimeError is a typed runtime fault, always carrying the source line of
// the nearest relevant token. It terminates the current program run once it
// reaches the driver.
type RuntimeError struct {
	Kind    RuntimeKind
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

// NewRuntimeError builds a RuntimeError with a formatted message.
func NewRuntimeError(kind RuntimeKind, line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Reporter writes static and runtime diagnostics to an output stream,
// colorizing them when color printing is enabled (typically because the
// stream is a terminal; the CLI decides that and passes it in via
// NoColor/color.NoColor).
type Reporter struct {
	w        io.Writer
	errColor *color.Color
	// HadError and HadRuntimeError let the driver decide process exit codes
	// without the reporter needing to know about os.Exit at all.
	HadError        bool
	HadRuntimeError bool
}

// NewReporter creates a Reporter writing to w. When color is true,
// diagnostics are printed in bold red.
func NewReporter(w io.Writer, useColor bool) *Reporter {
	c := color.New(color.FgRed, color.Bold)
	c.EnableColor()
	if !useColor {
		c.DisableColor()
	}
	return &Reporter{w: w, errColor: c}
}

// Static reports a static error and marks HadError.
func (r *Reporter) Static(err *StaticError) {
	r.HadError = true
	r.errColor.Fprintln(r.w, err.Error())
}

// RawStatic reports an already-formatted static diagnostic and marks
// HadError. Used for scanner diagnostics, which are pre-formatted strings
// rather than *StaticError values (the scanner has no token to anchor a
// "where" clause to).
func (r *Reporter) RawStatic(msg string) {
	r.HadError = true
	r.errColor.Fprintln(r.w, msg)
}

// Runtime reports a runtime error and marks HadRuntimeError.
func (r *Reporter) Runtime(err *RuntimeError) {
	r.HadRuntimeError = true
	r.errColor.Fprintln(r.w, err.Error())
}
