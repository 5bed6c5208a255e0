package interpreter

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is any runtime value the evaluator produces or stores: nil, a bool,
// an Int, a Float, a string, or one of the callable/object types in
// callable.go. It satisfies environment.Value trivially so the environment
// package never needs to import interpreter.
type Value interface{}

// Int and Float are distinct Value kinds rather than a single float64, so
// that the numeric tower can preserve integer results the way the language
// requires: `1 + 1` stays an Int, `1 + 1.0` promotes to Float.
type Int int64
type Float float64

// isTruthy implements the truthiness rule: nil and false are falsey,
// everything else (including 0, 0.0, and "") is truthy.
func isTruthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	default:
		return true
	}
}

// isEqual implements ==. Int and Float are one numeric kind for equality
// purposes (1 == 1.0 is true); anything else must also share a Go dynamic
// type, so a string is never equal to a bool or to nil.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return a == b
}

func asFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x), true
	case Float:
		return float64(x), true
	default:
		return 0, false
	}
}

func isNumber(v Value) bool {
	_, ok := asFloat(v)
	return ok
}

// Stringify renders a Value the way `print` and string concatenation do.
func Stringify(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(x)
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		return formatFloat(float64(x))
	case string:
		return x
	case *Function:
		return fmt.Sprintf("<fn %s>", x.decl.Name.Lexeme)
	case *NativeFunction:
		return fmt.Sprintf("<native fn %s>", x.name)
	case *Class:
		return x.name
	case *Instance:
		return x.class.name + " instance"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// formatFloat keeps a Float from printing like an Int: a whole-valued float
// gets a trailing ".0", distinguishing `3.0` from the Int `3`. Values that
// Go formats in exponent form (e.g. `1e+21`) are printed unchanged.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
