package lox

import "fmt"

// Callable is the single capability shared by everything invokable: user
// functions, host natives, and classes (calling a class constructs an
// instance). Arity must match the argument count exactly; the interpreter
// checks before Call runs.
type Callable interface {
	Arity() int
	Call(ip *Interpreter, args []Value) (Value, error)
	String() string
}

// Function is a user-defined function: the declaration plus the environment
// captured at declaration time. Calls chain their frame to that captured
// environment, never to the caller's.
type Function struct {
	decl          *FunctionStmt
	closure       *Environment
	isInitializer bool
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Call(ip *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, p := range f.decl.Params {
		env.Define(p.Lexeme, args[i])
	}
	c, err := ip.execBlock(f.decl.Body, env)
	if err != nil {
		return Nil, err
	}
	if f.isInitializer {
		// init always answers the instance, whatever the body returned
		return f.closure.GetAt(0, "this"), nil
	}
	if c.isReturn {
		return c.value, nil
	}
	return Nil, nil
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }

// bind produces a fresh function whose captured environment additionally
// defines "this" as the given instance.
func (f *Function) bind(inst *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", InstanceVal(inst))
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// Native is a host-provided function with fixed arity.
type Native struct {
	name  string
	arity int
	fn    func(args []Value) (Value, error)
}

func (n *Native) Arity() int { return n.arity }

func (n *Native) Call(_ *Interpreter, args []Value) (Value, error) {
	return n.fn(args)
}

func (n *Native) String() string { return "<native fn>" }
