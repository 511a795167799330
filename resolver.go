// resolver.go — static scope resolution.
//
// A single pass over the AST that computes, for every Variable/Assign/This/
// Super reference, the lexical distance (in environment hops) from the
// reference to its declaring scope. References absent from the map resolve
// in the global environment at run time, which is what allows forward
// references to top-level functions.
//
// The same walk enforces the contextual rules: no duplicate locals in one
// scope, no reading a local inside its own initializer, return only inside
// functions (and only bare return inside an initializer), this/super only
// inside methods, super only under a declared superclass, and no class
// inheriting from itself. Violations accumulate; any violation suppresses
// execution.
package lox

import "fmt"

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnInitializer
	fnMethod
)

type classKind int

const (
	clsNone classKind = iota
	clsClass
	clsSubclass
)

// Resolver walks the AST with a stack of block scopes. Each scope maps a
// name to whether its initializer has completed (false = declared only).
type Resolver struct {
	scopes []map[string]bool
	locals map[Expr]int
	errs   []error

	currentFunction functionKind
	currentClass    classKind
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{locals: make(map[Expr]int)}
}

// Resolve walks the program and returns the distance map plus every
// resolution error found.
func (r *Resolver) Resolve(stmts []Stmt) (map[Expr]int, []error) {
	r.resolveStmts(stmts)
	return r.locals, r.errs
}

func (r *Resolver) err(tok Token, msg string) {
	r.errs = append(r.errs, &ResolveError{Token: tok, Msg: msg})
}

// ----- scope bookkeeping -----

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks a name as existing but not yet usable in the innermost
// scope. Declaring twice in the same local scope is a static error;
// redeclaration at global scope (empty stack) is permitted.
func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.err(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks the name's initializer as complete.
func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records the hop distance from the innermost scope to the one
// declaring name. Names not found in any local scope are left to the global
// environment.
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ----- statements -----

func (r *Resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s Stmt) {
	switch s := s.(type) {
	case *BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *FunctionStmt:
		// the name is usable inside the body, enabling recursion
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *PrintStmt:
		r.resolveExpr(s.Expr)
	case *IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ReturnStmt:
		if r.currentFunction == fnNone {
			r.err(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.err(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ClassStmt:
		r.resolveClass(s)
	default:
		panic(fmt.Sprintf("resolver: unknown statement %T", s))
	}
}

func (r *Resolver) resolveClass(s *ClassStmt) {
	enclosing := r.currentClass
	r.currentClass = clsClass
	defer func() { r.currentClass = enclosing }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.err(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = clsSubclass
		r.resolveExpr(s.Superclass)

		// frame holding "super", mirrored by the interpreter
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
		defer r.endScope()
	}

	// frame holding "this", created per bound method at run time
	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range s.Methods {
		kind := fnMethod
		if m.Name.Lexeme == initMethod {
			kind = fnInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.endScope()
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

// ----- expressions -----

func (r *Resolver) resolveExpr(e Expr) {
	switch e := e.(type) {
	case *Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.err(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Unary:
		r.resolveExpr(e.Right)
	case *Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *Grouping:
		r.resolveExpr(e.Expr)
	case *Get:
		r.resolveExpr(e.Object)
	case *Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *This:
		if r.currentClass == clsNone {
			r.err(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *Super:
		switch r.currentClass {
		case clsNone:
			r.err(e.Keyword, "Can't use 'super' outside of a class.")
		case clsClass:
			r.err(e.Keyword, "Can't use 'super' in a class with no superclass.")
		default:
			r.resolveLocal(e, e.Keyword)
		}
	case *Literal:
		// nothing to resolve
	default:
		panic(fmt.Sprintf("resolver: unknown expression %T", e))
	}
}
