package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/plox/internal/interpreter"
	"github.com/sdecook/plox/internal/lexer"
	"github.com/sdecook/plox/internal/loxerror"
	"github.com/sdecook/plox/internal/parser"
	"github.com/sdecook/plox/internal/resolver"
)

// run lexes, parses, resolves, and interprets src, returning everything
// `print` wrote and any runtime error that terminated the run.
func run(t *testing.T, src string) (string, *loxerror.RuntimeError) {
	t.Helper()
	toks := lexer.New(src).Scan()
	p := parser.New(toks)
	stmts := p.Parse()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())

	r := resolver.New()
	locals := r.Resolve(stmts)
	require.Empty(t, r.Errors(), "unexpected resolve errors: %v", r.Errors())

	var buf bytes.Buffer
	interp := interpreter.New(&buf, interpreter.ClockSeconds)
	rerr := interp.Interpret(stmts, locals)
	return buf.String(), rerr
}

func outputLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestArithmeticPreservesIntVsFloat(t *testing.T) {
	out, rerr := run(t, `print 1 + 1; print 1 + 1.0; print 10 / 4; print 10.0 / 4;`)
	require.Nil(t, rerr)
	assert.Equal(t, []string{"2", "2.0", "2", "2.5"}, outputLines(out))
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, rerr := run(t, `print 1 / 0;`)
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "Division by zero")
}

func TestStringConcatenation(t *testing.T) {
	out, rerr := run(t, `print "a" + "b";`)
	require.Nil(t, rerr)
	assert.Equal(t, []string{"ab"}, outputLines(out))
}

func TestMixedAddOperandsIsRuntimeError(t *testing.T) {
	_, rerr := run(t, `print "a" + 1;`)
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "two numbers or two strings")
}

func TestEqualityAcrossIntAndFloat(t *testing.T) {
	out, rerr := run(t, `print 1 == 1.0; print "1" == 1;`)
	require.Nil(t, rerr)
	assert.Equal(t, []string{"true", "false"}, outputLines(out))
}

func TestClosureCapturesEnclosingVariable(t *testing.T) {
	out, rerr := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	require.Nil(t, rerr)
	assert.Equal(t, []string{"1", "2", "3"}, outputLines(out))
}

func TestClassInstantiationAndMethods(t *testing.T) {
	out, rerr := run(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				return "hello, " + this.name;
			}
		}
		var g = Greeter("world");
		print g.greet();
	`)
	require.Nil(t, rerr)
	assert.Equal(t, []string{"hello, world"}, outputLines(out))
}

func TestInheritanceAndSuperCall(t *testing.T) {
	out, rerr := run(t, `
		class Animal {
			speak() {
				return "...";
			}
		}
		class Dog < Animal {
			speak() {
				return super.speak() + " woof";
			}
		}
		print Dog().speak();
	`)
	require.Nil(t, rerr)
	assert.Equal(t, []string{"... woof"}, outputLines(out))
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, rerr := run(t, `
		class A {}
		var a = A();
		print a.missing;
	`)
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "Undefined property")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, rerr := run(t, `var x = 1; x();`)
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "Can only call")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, rerr := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.NotNil(t, rerr)
	assert.Contains(t, rerr.Error(), "Expected 2 arguments but got 1")
}

func TestWhileAndForLoops(t *testing.T) {
	out, rerr := run(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
		for (var j = 0; j < 2; j = j + 1) print j;
	`)
	require.Nil(t, rerr)
	assert.Equal(t, []string{"0", "1", "2", "0", "1"}, outputLines(out))
}

func TestFieldsAreIndependentPerInstance(t *testing.T) {
	out, rerr := run(t, `
		class Counter {
			init() { this.n = 0; }
			bump() { this.n = this.n + 1; return this.n; }
		}
		var a = Counter();
		var b = Counter();
		a.bump();
		a.bump();
		print a.bump();
		print b.bump();
	`)
	require.Nil(t, rerr)
	assert.Equal(t, []string{"3", "1"}, outputLines(out))
}
