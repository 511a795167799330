// interpreter.go — tree-walking evaluator.
//
// The Interpreter executes a resolved AST by direct recursive descent over
// the node variants. There is no bytecode stage and no implicit global
// state: the globals frame, the resolver's distance map, and the output
// sink live on the Interpreter value, and the current environment is
// threaded explicitly through exec/eval.
//
// Control flow: `return` is the only non-local transfer. It is modeled as
// an explicit control result bubbling up through (control, error) statement
// returns until a call boundary consumes it — never as a panic. Runtime
// errors are ordinary Go errors (*RuntimeError) that unwind the walk
// fail-fast; output already written stays written.
//
// Variable access honors the resolver's contract: when a distance is
// recorded for a reference, the environment chain is walked exactly that
// many hops with no name search; everything else goes straight to globals.
package lox

import (
	"fmt"
	"io"
	"time"
)

// control is the outcome of executing a statement: either normal completion
// or a return transfer carrying the call's result.
type control struct {
	isReturn bool
	value    Value
}

// Interpreter executes resolved programs. One value may serve many
// RunSource calls (REPL persistence): globals and resolved distances
// accumulate across inputs.
type Interpreter struct {
	globals *Environment
	locals  map[Expr]int
	stdout  io.Writer
}

// NewInterpreter creates an interpreter writing program output to stdout.
// The global frame is pre-populated with the native builtin surface
// (currently just clock).
func NewInterpreter(stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", CallableVal(&Native{
		name:  "clock",
		arity: 0,
		fn: func([]Value) (Value, error) {
			return Num(float64(time.Now().UnixNano()) / 1e9), nil
		},
	}))
	return &Interpreter{
		globals: globals,
		locals:  make(map[Expr]int),
		stdout:  stdout,
	}
}

// Globals exposes the root environment (for host embedding and tests).
func (ip *Interpreter) Globals() *Environment { return ip.globals }

// Resolve merges a resolver distance map. Node identity keys are unique per
// parse, so merging across REPL inputs is safe.
func (ip *Interpreter) Resolve(locals map[Expr]int) {
	for e, d := range locals {
		ip.locals[e] = d
	}
}

// Interpret executes the program top to bottom in the global environment,
// stopping at the first runtime error.
func (ip *Interpreter) Interpret(stmts []Stmt) error {
	for _, s := range stmts {
		if _, err := ip.exec(s, ip.globals); err != nil {
			return err
		}
	}
	return nil
}

// ----- statements -----

func (ip *Interpreter) exec(s Stmt, env *Environment) (control, error) {
	switch s := s.(type) {
	case *ExpressionStmt:
		_, err := ip.eval(s.Expr, env)
		return control{}, err

	case *PrintStmt:
		v, err := ip.eval(s.Expr, env)
		if err != nil {
			return control{}, err
		}
		fmt.Fprintln(ip.stdout, Stringify(v))
		return control{}, nil

	case *VarStmt:
		value := Nil
		if s.Initializer != nil {
			var err error
			value, err = ip.eval(s.Initializer, env)
			if err != nil {
				return control{}, err
			}
		}
		env.Define(s.Name.Lexeme, value)
		return control{}, nil

	case *BlockStmt:
		return ip.execBlock(s.Statements, NewEnvironment(env))

	case *IfStmt:
		cond, err := ip.eval(s.Condition, env)
		if err != nil {
			return control{}, err
		}
		if Truthy(cond) {
			return ip.exec(s.Then, env)
		}
		if s.Else != nil {
			return ip.exec(s.Else, env)
		}
		return control{}, nil

	case *WhileStmt:
		for {
			cond, err := ip.eval(s.Condition, env)
			if err != nil {
				return control{}, err
			}
			if !Truthy(cond) {
				return control{}, nil
			}
			c, err := ip.exec(s.Body, env)
			if err != nil || c.isReturn {
				return c, err
			}
		}

	case *FunctionStmt:
		fn := &Function{decl: s, closure: env}
		env.Define(s.Name.Lexeme, CallableVal(fn))
		return control{}, nil

	case *ReturnStmt:
		value := Nil
		if s.Value != nil {
			var err error
			value, err = ip.eval(s.Value, env)
			if err != nil {
				return control{}, err
			}
		}
		return control{isReturn: true, value: value}, nil

	case *ClassStmt:
		return control{}, ip.execClass(s, env)

	default:
		panic(fmt.Sprintf("interpreter: unknown statement %T", s))
	}
}

// execBlock runs statements in the given (already created) environment,
// forwarding the first return transfer or error outward.
func (ip *Interpreter) execBlock(stmts []Stmt, env *Environment) (control, error) {
	for _, s := range stmts {
		c, err := ip.exec(s, env)
		if err != nil || c.isReturn {
			return c, err
		}
	}
	return control{}, nil
}

func (ip *Interpreter) execClass(s *ClassStmt, env *Environment) error {
	var superclass *Class
	if s.Superclass != nil {
		sv, err := ip.eval(s.Superclass, env)
		if err != nil {
			return err
		}
		if sv.Tag != VTClass {
			return &RuntimeError{Line: s.Superclass.Name.Line, Msg: "Superclass must be a class."}
		}
		superclass = sv.Data.(*Class)
	}

	env.Define(s.Name.Lexeme, Nil)

	methodEnv := env
	if superclass != nil {
		methodEnv = NewEnvironment(env)
		methodEnv.Define("super", ClassVal(superclass))
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			decl:          m,
			closure:       methodEnv,
			isInitializer: m.Name.Lexeme == initMethod,
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return env.Assign(s.Name, ClassVal(class))
}

// ----- expressions -----

func (ip *Interpreter) eval(e Expr, env *Environment) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil

	case *Grouping:
		return ip.eval(e.Expr, env)

	case *Variable:
		return ip.lookUpVariable(e.Name, e, env)

	case *Assign:
		value, err := ip.eval(e.Value, env)
		if err != nil {
			return Nil, err
		}
		if dist, ok := ip.locals[e]; ok {
			env.AssignAt(dist, e.Name, value)
			return value, nil
		}
		return value, ip.globals.Assign(e.Name, value)

	case *Unary:
		return ip.evalUnary(e, env)

	case *Binary:
		return ip.evalBinary(e, env)

	case *Logical:
		left, err := ip.eval(e.Left, env)
		if err != nil {
			return Nil, err
		}
		if e.Operator.Type == OR {
			if Truthy(left) {
				return left, nil
			}
		} else if !Truthy(left) {
			return left, nil
		}
		return ip.eval(e.Right, env)

	case *Call:
		return ip.evalCall(e, env)

	case *Get:
		obj, err := ip.eval(e.Object, env)
		if err != nil {
			return Nil, err
		}
		if obj.Tag != VTInstance {
			return Nil, &RuntimeError{Line: e.Name.Line, Msg: "Only instances have properties."}
		}
		return obj.Data.(*Instance).Get(e.Name)

	case *Set:
		obj, err := ip.eval(e.Object, env)
		if err != nil {
			return Nil, err
		}
		if obj.Tag != VTInstance {
			return Nil, &RuntimeError{Line: e.Name.Line, Msg: "Only instances have fields."}
		}
		value, err := ip.eval(e.Value, env)
		if err != nil {
			return Nil, err
		}
		obj.Data.(*Instance).Set(e.Name, value)
		return value, nil

	case *This:
		return ip.lookUpVariable(e.Keyword, e, env)

	case *Super:
		return ip.evalSuper(e, env)

	default:
		panic(fmt.Sprintf("interpreter: unknown expression %T", e))
	}
}

// lookUpVariable reads through the resolver distance when one was recorded,
// otherwise directly in globals.
func (ip *Interpreter) lookUpVariable(name Token, expr Expr, env *Environment) (Value, error) {
	if dist, ok := ip.locals[expr]; ok {
		return env.GetAt(dist, name.Lexeme), nil
	}
	return ip.globals.Get(name)
}

func (ip *Interpreter) evalUnary(e *Unary, env *Environment) (Value, error) {
	right, err := ip.eval(e.Right, env)
	if err != nil {
		return Nil, err
	}
	switch e.Operator.Type {
	case MINUS:
		if right.Tag != VTNum {
			return Nil, &RuntimeError{Line: e.Operator.Line, Msg: "Operand must be a number."}
		}
		return Num(-right.Data.(float64)), nil
	case BANG:
		return Bool(!Truthy(right)), nil
	}
	panic("interpreter: unknown unary operator")
}

func (ip *Interpreter) evalBinary(e *Binary, env *Environment) (Value, error) {
	left, err := ip.eval(e.Left, env)
	if err != nil {
		return Nil, err
	}
	right, err := ip.eval(e.Right, env)
	if err != nil {
		return Nil, err
	}

	switch e.Operator.Type {
	case EQ:
		return Bool(Equal(left, right)), nil
	case NEQ:
		return Bool(!Equal(left, right)), nil
	case PLUS:
		if left.Tag == VTNum && right.Tag == VTNum {
			return Num(left.Data.(float64) + right.Data.(float64)), nil
		}
		if left.Tag == VTStr && right.Tag == VTStr {
			return Str(left.Data.(string) + right.Data.(string)), nil
		}
		return Nil, &RuntimeError{Line: e.Operator.Line, Msg: "Operands must be two numbers or two strings."}
	}

	// the remaining operators require two numbers
	if left.Tag != VTNum || right.Tag != VTNum {
		return Nil, &RuntimeError{Line: e.Operator.Line, Msg: "Operands must be numbers."}
	}
	a, b := left.Data.(float64), right.Data.(float64)
	switch e.Operator.Type {
	case MINUS:
		return Num(a - b), nil
	case MULT:
		return Num(a * b), nil
	case DIV:
		// IEEE-754 semantics: x/0 is ±Inf, 0/0 is NaN
		return Num(a / b), nil
	case GREATER:
		return Bool(a > b), nil
	case GREATER_EQ:
		return Bool(a >= b), nil
	case LESS:
		return Bool(a < b), nil
	case LESS_EQ:
		return Bool(a <= b), nil
	}
	panic("interpreter: unknown binary operator")
}

func (ip *Interpreter) evalCall(e *Call, env *Environment) (Value, error) {
	callee, err := ip.eval(e.Callee, env)
	if err != nil {
		return Nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := ip.eval(a, env)
		if err != nil {
			return Nil, err
		}
		args = append(args, v)
	}

	var fn Callable
	switch callee.Tag {
	case VTCallable:
		fn = callee.Data.(Callable)
	case VTClass:
		fn = callee.Data.(*Class)
	default:
		return Nil, &RuntimeError{Line: e.Paren.Line, Msg: "Can only call functions and classes."}
	}

	if len(args) != fn.Arity() {
		return Nil, &RuntimeError{
			Line: e.Paren.Line,
			Msg:  fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}
	return fn.Call(ip, args)
}

// evalSuper resolves the method starting one level above the class that
// defined the currently executing method — not the runtime class of this —
// then binds it to the current instance.
func (ip *Interpreter) evalSuper(e *Super, env *Environment) (Value, error) {
	dist := ip.locals[e]
	superclass := env.GetAt(dist, "super").Data.(*Class)
	object := env.GetAt(dist-1, "this").Data.(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return Nil, &RuntimeError{Line: e.Method.Line, Msg: fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme)}
	}
	return CallableVal(method.bind(object)), nil
}
