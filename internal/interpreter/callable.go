package interpreter

import (
	"github.com/sdecook/plox/internal/ast"
	"github.com/sdecook/plox/internal/environment"
)

// Callable is anything that can appear on the left of a call expression:
// user-defined functions and methods, classes (construction), and the
// native functions registered in builtins.go.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
}

// Function is a user-defined function or method, closing over the
// environment active where it was declared.
type Function struct {
	decl          *ast.FunctionStmt
	closure       *environment.Environment
	isInitializer bool
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Call(interp *Interpreter, args []Value) (Value, error) {
	env := environment.New(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	ctl, err := interp.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if ctl.isReturn {
		return ctl.value, nil
	}
	return nil, nil
}

// bind returns a copy of f whose closure additionally binds "this" to
// instance, used when a method is looked up off an object so that
// `var m = instance.method; m();` still sees the right
// receiver).
func (f *Function) bind(instance *Instance) *Function {
	env := environment.New(f.closure)
	env.Define("this", instance)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// NativeFunction wraps a Go function as a callable Lox value, used for
// built-ins like clock().
type NativeFunction struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(interp *Interpreter, args []Value) (Value, error) {
	return n.fn(interp, args)
}

// Class is a runtime class object: a name, an optional superclass, and its
// own method table. Method lookup walks the superclass chain on miss.
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(interp *Interpreter, args []Value) (Value, error) {
	instance := &Instance{class: c, fields: make(map[string]Value)}
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object: a reference to its class plus its own
// mutable field table. Fields shadow methods of the same name.
type Instance struct {
	class  *Class
	fields map[string]Value
}
