// Package interpreter tree-walks a resolved program, evaluating expressions
// and executing statements directly against the environment chain rather
// than compiling to any intermediate form.
package interpreter

import (
	"fmt"
	"io"

	"github.com/sdecook/plox/internal/ast"
	"github.com/sdecook/plox/internal/environment"
	"github.com/sdecook/plox/internal/loxerror"
	"github.com/sdecook/plox/internal/resolver"
	"github.com/sdecook/plox/internal/token"
)

// control is the non-error signal threaded back out of statement execution:
// today only `return` needs it, but it is a struct (rather than a bool) so a
// future break/continue could ride the same plumbing without touching every
// call site's signature again.
type control struct {
	isReturn bool
	value    Value
}

var noControl = control{}

// Interpreter holds the global environment and the current call frame, plus
// the resolver's scope-distance table used by every Variable/Assign/This/
// Super lookup.
type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	locals  resolver.Locals
	out     io.Writer
}

// New creates an Interpreter writing `print` output to out, with the
// built-ins from builtins.go already defined in the global scope.
func New(out io.Writer, clockUnit ClockUnit) *Interpreter {
	globals := environment.New(nil)
	interp := &Interpreter{globals: globals, env: globals, out: out}
	defineBuiltins(globals, clockUnit)
	return interp
}

// Interpret runs a fully resolved program. locals is the scope-distance
// table produced by the resolver for this same statement list.
func (interp *Interpreter) Interpret(stmts []ast.Stmt, locals resolver.Locals) *loxerror.RuntimeError {
	interp.locals = locals
	for _, stmt := range stmts {
		if _, err := interp.execute(stmt); err != nil {
			if rerr, ok := err.(*loxerror.RuntimeError); ok {
				return rerr
			}
			return loxerror.NewRuntimeError(loxerror.NotCallable, 0, "%s", err.Error())
		}
	}
	return nil
}

// EvaluateOne evaluates a single expression against the current global
// environment, used by the `plox evaluate` debugging subcommand.
func (interp *Interpreter) EvaluateOne(expr ast.Expr, locals resolver.Locals) (Value, *loxerror.RuntimeError) {
	interp.locals = locals
	v, err := interp.evaluate(expr)
	if err != nil {
		if rerr, ok := err.(*loxerror.RuntimeError); ok {
			return nil, rerr
		}
		return nil, loxerror.NewRuntimeError(loxerror.NotCallable, 0, "%s", err.Error())
	}
	return v, nil
}

func (interp *Interpreter) execute(stmt ast.Stmt) (control, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := interp.evaluate(s.Expr)
		return noControl, err

	case *ast.PrintStmt:
		v, err := interp.evaluate(s.Expr)
		if err != nil {
			return noControl, err
		}
		fmt.Fprintln(interp.out, Stringify(v))
		return noControl, nil

	case *ast.VarStmt:
		var value Value
		if s.Initializer != nil {
			v, err := interp.evaluate(s.Initializer)
			if err != nil {
				return noControl, err
			}
			value = v
		}
		interp.env.Define(s.Name.Lexeme, value)
		return noControl, nil

	case *ast.BlockStmt:
		return interp.executeBlock(s.Statements, environment.New(interp.env))

	case *ast.IfStmt:
		cond, err := interp.evaluate(s.Condition)
		if err != nil {
			return noControl, err
		}
		if isTruthy(cond) {
			return interp.execute(s.Then)
		}
		if s.Else != nil {
			return interp.execute(s.Else)
		}
		return noControl, nil

	case *ast.WhileStmt:
		for {
			cond, err := interp.evaluate(s.Condition)
			if err != nil {
				return noControl, err
			}
			if !isTruthy(cond) {
				return noControl, nil
			}
			ctl, err := interp.execute(s.Body)
			if err != nil || ctl.isReturn {
				return ctl, err
			}
		}

	case *ast.FunctionStmt:
		fn := &Function{decl: s, closure: interp.env}
		interp.env.Define(s.Name.Lexeme, fn)
		return noControl, nil

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := interp.evaluate(s.Value)
			if err != nil {
				return noControl, err
			}
			value = v
		}
		return control{isReturn: true, value: value}, nil

	case *ast.ClassStmt:
		return interp.executeClass(s)

	default:
		panic("interpreter: unhandled statement type")
	}
}

func (interp *Interpreter) executeClass(s *ast.ClassStmt) (control, error) {
	var superclass *Class
	if s.Superclass != nil {
		v, err := interp.evaluate(s.Superclass)
		if err != nil {
			return noControl, err
		}
		sc, ok := v.(*Class)
		if !ok {
			return noControl, loxerror.NewRuntimeError(loxerror.SuperclassMustBeClass, s.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	interp.env.Define(s.Name.Lexeme, nil)

	classEnv := interp.env
	if s.Superclass != nil {
		classEnv = environment.New(interp.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{decl: m, closure: classEnv, isInitializer: m.Name.Lexeme == "init"}
	}

	class := &Class{name: s.Name.Lexeme, superclass: superclass, methods: methods}
	interp.env.Assign(s.Name.Lexeme, class)
	return noControl, nil
}

// executeBlock runs stmts in env, restoring the interpreter's current
// environment afterward regardless of how the block exits (normally, via
// return, or via error).
func (interp *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) (control, error) {
	previous := interp.env
	interp.env = env
	defer func() { interp.env = previous }()

	for _, stmt := range stmts {
		ctl, err := interp.execute(stmt)
		if err != nil || ctl.isReturn {
			return ctl, err
		}
	}
	return noControl, nil
}

func (interp *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return interp.evaluateLiteral(e), nil

	case *ast.Grouping:
		return interp.evaluate(e.Inner)

	case *ast.Unary:
		return interp.evaluateUnary(e)

	case *ast.Binary:
		return interp.evaluateBinary(e)

	case *ast.Logical:
		return interp.evaluateLogical(e)

	case *ast.Variable:
		return interp.lookUpVariable(e.Name, e)

	case *ast.Assign:
		value, err := interp.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if dist, ok := interp.locals[e]; ok {
			interp.env.AssignAt(dist, e.Name.Lexeme, value)
		} else if err := interp.globals.Assign(e.Name.Lexeme, value); err != nil {
			return nil, loxerror.NewRuntimeError(loxerror.UndefinedVariable, e.Name.Line, "Undefined variable '%s'.", e.Name.Lexeme)
		}
		return value, nil

	case *ast.Call:
		return interp.evaluateCall(e)

	case *ast.Get:
		obj, err := interp.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, loxerror.NewRuntimeError(loxerror.PropertyAccessOnNonInstance, e.Name.Line, "Only instances have properties.")
		}
		return instance.get(e.Name)

	case *ast.Set:
		obj, err := interp.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, loxerror.NewRuntimeError(loxerror.PropertyAccessOnNonInstance, e.Name.Line, "Only instances have fields.")
		}
		value, err := interp.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		instance.set(e.Name, value)
		return value, nil

	case *ast.This:
		return interp.lookUpVariable(e.Keyword, e)

	case *ast.Super:
		return interp.evaluateSuper(e)

	default:
		panic("interpreter: unhandled expression type")
	}
}

func (interp *Interpreter) evaluateLiteral(e *ast.Literal) Value {
	switch e.Value.Kind {
	case ast.LiteralNil:
		return nil
	case ast.LiteralBool:
		return e.Value.Bool
	case ast.LiteralInt:
		return Int(e.Value.Int)
	case ast.LiteralFloat:
		return Float(e.Value.Float)
	case ast.LiteralString:
		return e.Value.Str
	default:
		panic("interpreter: unhandled literal kind")
	}
}

func (interp *Interpreter) evaluateUnary(e *ast.Unary) (Value, error) {
	operand, err := interp.evaluate(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case token.Bang:
		return !isTruthy(operand), nil
	case token.Minus:
		switch v := operand.(type) {
		case Int:
			return -v, nil
		case Float:
			return -v, nil
		default:
			return nil, loxerror.NewRuntimeError(loxerror.OperandMustBeNumber, e.Op.Line, "Operand must be a number.")
		}
	default:
		panic("interpreter: unhandled unary operator")
	}
}

func (interp *Interpreter) evaluateLogical(e *ast.Logical) (Value, error) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return interp.evaluate(e.Right)
}

func (interp *Interpreter) evaluateBinary(e *ast.Binary) (Value, error) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := interp.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.Plus:
		return interp.evaluateAdd(left, right, e.Op.Line)
	case token.Minus:
		return numericOp(left, right, e.Op.Line, func(a, b int64) Value { return Int(a - b) }, func(a, b float64) Value { return Float(a - b) })
	case token.Star:
		return numericOp(left, right, e.Op.Line, func(a, b int64) Value { return Int(a * b) }, func(a, b float64) Value { return Float(a * b) })
	case token.Slash:
		return interp.evaluateDivide(left, right, e.Op.Line)
	case token.Greater:
		return comparisonOp(left, right, e.Op.Line, func(a, b float64) bool { return a > b })
	case token.GreaterEqual:
		return comparisonOp(left, right, e.Op.Line, func(a, b float64) bool { return a >= b })
	case token.Less:
		return comparisonOp(left, right, e.Op.Line, func(a, b float64) bool { return a < b })
	case token.LessEqual:
		return comparisonOp(left, right, e.Op.Line, func(a, b float64) bool { return a <= b })
	case token.EqualEqual:
		return isEqual(left, right), nil
	case token.BangEqual:
		return !isEqual(left, right), nil
	default:
		panic("interpreter: unhandled binary operator")
	}
}

// evaluateAdd is the one arithmetic operator with two valid operand shapes:
// number + number (with int/float promotion) or string + string
// concatenation.
func (interp *Interpreter) evaluateAdd(left, right Value, line int) (Value, error) {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return ls + rs, nil
		}
		return nil, loxerror.NewRuntimeError(loxerror.OperandsMustBeNumbersOrStrings, line, "Operands must be two numbers or two strings.")
	}
	if !isNumber(left) || !isNumber(right) {
		return nil, loxerror.NewRuntimeError(loxerror.OperandsMustBeNumbersOrStrings, line, "Operands must be two numbers or two strings.")
	}
	return numericOp(left, right, line, func(a, b int64) Value { return Int(a + b) }, func(a, b float64) Value { return Float(a + b) })
}

// evaluateDivide is a hard runtime error for any zero divisor, for both the
// integer and floating forms: unlike Go, dividing by zero never silently
// produces +Inf, -Inf, or NaN.
func (interp *Interpreter) evaluateDivide(left, right Value, line int) (Value, error) {
	if !isNumber(left) || !isNumber(right) {
		return nil, loxerror.NewRuntimeError(loxerror.OperandsMustBeNumbers, line, "Operands must be numbers.")
	}
	rf, _ := asFloat(right)
	if rf == 0 {
		return nil, loxerror.NewRuntimeError(loxerror.DivisionByZero, line, "Division by zero.")
	}
	return numericOp(left, right, line, func(a, b int64) Value { return Int(a / b) }, func(a, b float64) Value { return Float(a / b) })
}

// numericOp applies intFn when both operands are Int, promoting to floatFn
// (via float64) the moment either operand is a Float, preserving integer
// results exactly where the language requires it.
func numericOp(left, right Value, line int, intFn func(a, b int64) Value, floatFn func(a, b float64) Value) (Value, error) {
	li, liok := left.(Int)
	ri, riok := right.(Int)
	if liok && riok {
		return intFn(int64(li), int64(ri)), nil
	}
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, loxerror.NewRuntimeError(loxerror.OperandsMustBeNumbers, line, "Operands must be numbers.")
	}
	return floatFn(lf, rf), nil
}

func comparisonOp(left, right Value, line int, cmp func(a, b float64) bool) (Value, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, loxerror.NewRuntimeError(loxerror.OperandsMustBeNumbers, line, "Operands must be numbers.")
	}
	return cmp(lf, rf), nil
}

func (interp *Interpreter) evaluateCall(e *ast.Call) (Value, error) {
	callee, err := interp.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := interp.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, loxerror.NewRuntimeError(loxerror.NotCallable, e.ClosingParen.Line, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, loxerror.NewRuntimeError(loxerror.ArityMismatch, e.ClosingParen.Line, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(interp, args)
}

func (interp *Interpreter) evaluateSuper(e *ast.Super) (Value, error) {
	dist := interp.locals[e]
	superclass := interp.env.GetAt(dist, "super").(*Class)
	instance := interp.env.GetAt(dist-1, "this").(*Instance)

	method, ok := superclass.findMethod(e.Method.Lexeme)
	if !ok {
		return nil, loxerror.NewRuntimeError(loxerror.UndefinedProperty, e.Method.Line, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance), nil
}

func (interp *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if dist, ok := interp.locals[expr]; ok {
		return interp.env.GetAt(dist, name.Lexeme), nil
	}
	v, err := interp.globals.Get(name.Lexeme)
	if err != nil {
		return nil, loxerror.NewRuntimeError(loxerror.UndefinedVariable, name.Line, "Undefined variable '%s'.", name.Lexeme)
	}
	return v, nil
}

func (inst *Instance) get(name token.Token) (Value, error) {
	if v, ok := inst.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := inst.class.findMethod(name.Lexeme); ok {
		return m.bind(inst), nil
	}
	return nil, loxerror.NewRuntimeError(loxerror.UndefinedProperty, name.Line, "Undefined property '%s'.", name.Lexeme)
}

func (inst *Instance) set(name token.Token, value Value) {
	inst.fields[name.Lexeme] = value
}
