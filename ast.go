package lox

// The syntax tree is a pair of tagged variant sets: Expr and Stmt. Nodes are
// plain structs behind marker interfaces; consumers dispatch with a single
// exhaustive type switch instead of a visitor hierarchy. Every node is
// allocated exactly once by the parser, so its pointer identity doubles as
// the key into the resolver's distance map.

// Expr is any expression node.
type Expr interface{ isExpr() }

// Stmt is any statement node.
type Stmt interface{ isStmt() }

// ----- expressions -----

// Literal holds an already-materialized runtime value (number, string,
// boolean, or nil) taken from a literal token.
type Literal struct {
	Value Value
}

// Variable is a read of a named binding.
type Variable struct {
	Name Token
}

// Assign writes Value into an existing binding.
type Assign struct {
	Name  Token
	Value Expr
}

// Binary covers arithmetic, comparison, and equality operators.
type Binary struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// Logical covers short-circuiting "and"/"or".
type Logical struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// Unary covers prefix "!" and "-".
type Unary struct {
	Operator Token
	Right    Expr
}

// Call invokes a callee with positional arguments. Paren is the closing
// parenthesis, kept for runtime error locations.
type Call struct {
	Callee Expr
	Paren  Token
	Args   []Expr
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Expr Expr
}

// Get reads a property from an object.
type Get struct {
	Object Expr
	Name   Token
}

// Set writes a property on an object.
type Set struct {
	Object Expr
	Name   Token
	Value  Expr
}

// This is the receiver reference inside a method.
type This struct {
	Keyword Token
}

// Super is a superclass method access inside a subclass method.
type Super struct {
	Keyword Token
	Method  Token
}

func (*Literal) isExpr()  {}
func (*Variable) isExpr() {}
func (*Assign) isExpr()   {}
func (*Binary) isExpr()   {}
func (*Logical) isExpr()  {}
func (*Unary) isExpr()    {}
func (*Call) isExpr()     {}
func (*Grouping) isExpr() {}
func (*Get) isExpr()      {}
func (*Set) isExpr()      {}
func (*This) isExpr()     {}
func (*Super) isExpr()    {}

// ----- statements -----

// ExpressionStmt evaluates an expression for its side effects.
type ExpressionStmt struct {
	Expr Expr
}

// PrintStmt writes a value's text form to the interpreter's output sink.
type PrintStmt struct {
	Expr Expr
}

// VarStmt declares a variable. Initializer may be nil (binds to nil).
type VarStmt struct {
	Name        Token
	Initializer Expr
}

// BlockStmt executes its statements in a fresh nested scope.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt branches on a condition. Else may be nil.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

// WhileStmt loops while the condition is truthy. "for" loops desugar into
// this plus a surrounding BlockStmt at parse time.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// FunctionStmt declares a named function (or, inside a class, a method).
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// ReturnStmt transfers control out of the enclosing call. Value may be nil.
type ReturnStmt struct {
	Keyword Token
	Value   Expr
}

// ClassStmt declares a class with optional superclass reference.
type ClassStmt struct {
	Name       Token
	Superclass *Variable
	Methods    []*FunctionStmt
}

func (*ExpressionStmt) isStmt() {}
func (*PrintStmt) isStmt()      {}
func (*VarStmt) isStmt()        {}
func (*BlockStmt) isStmt()      {}
func (*IfStmt) isStmt()         {}
func (*WhileStmt) isStmt()      {}
func (*FunctionStmt) isStmt()   {}
func (*ReturnStmt) isStmt()     {}
func (*ClassStmt) isStmt()      {}
