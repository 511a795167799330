// parser.go — recursive-descent parser for Lox.
//
// The parser consumes the scanner's token slice and produces a program as an
// ordered []Stmt. The expression grammar climbs precedence levels:
//
//	assignment → or → and → equality → comparison → term → factor
//	           → unary → call/property chains → primary
//
// Errors do not abort the parse. A malformed construct records a typed
// *ParseError and enters panic-mode recovery: synchronize() discards tokens
// until a statement boundary (a semicolon, or a token that begins a new
// declaration/statement) so later, independent errors still surface. A
// partial AST plus a nonempty error list means the program never runs.
//
// "for" has no AST node of its own: it is desugared here into a block
// holding the initializer and a while loop with the increment appended to
// the body, which makes it behaviorally identical to the hand-written form.
package lox

import "fmt"

// maxCallArgs is the fixed limit on call arguments and declared parameters.
const maxCallArgs = 255

// Parser is a single-use recursive-descent parser over a token slice.
type Parser struct {
	tokens []Token
	cur    int
	errs   []error
}

// NewParser creates a parser for the given tokens (which must end with EOF).
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes every declaration until EOF and returns the statements plus
// all accumulated parse errors. Statements that failed to parse are omitted.
func (p *Parser) Parse() ([]Stmt, []error) {
	var stmts []Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, p.errs
}

// ----- cursor helpers -----

func (p *Parser) isAtEnd() bool   { return p.peek().Type == EOF }
func (p *Parser) peek() Token     { return p.tokens[p.cur] }
func (p *Parser) previous() Token { return p.tokens[p.cur-1] }

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.cur++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return tt == EOF
	}
	return p.peek().Type == tt
}

func (p *Parser) match(tts ...TokenType) bool {
	for _, tt := range tts {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.err(p.peek(), msg)
}

// err records a parse error and returns it for propagation.
func (p *Parser) err(tok Token, msg string) error {
	e := &ParseError{Token: tok, Msg: msg}
	p.errs = append(p.errs, e)
	return e
}

// errAt records an error against a token without signalling panic-mode.
// Used where parsing can sensibly continue in place (e.g. a bad assignment
// target, or exceeding the argument limit).
func (p *Parser) errAt(tok Token, msg string) {
	p.errs = append(p.errs, &ParseError{Token: tok, Msg: msg})
}

// synchronize discards tokens until a likely statement boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.advance()
	}
}

// ----- declarations & statements -----

func (p *Parser) declaration() Stmt {
	var s Stmt
	var err error
	switch {
	case p.match(CLASS):
		s, err = p.classDeclaration()
	case p.match(FUN):
		s, err = p.function("function")
	case p.match(VAR):
		s, err = p.varDeclaration()
	default:
		s, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return s
}

func (p *Parser) classDeclaration() (Stmt, error) {
	name, err := p.consume(ID, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *Variable
	if p.match(LESS) {
		sup, err := p.consume(ID, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = &Variable{Name: sup}
	}

	if _, err := p.consume(LCURLY, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods []*FunctionStmt
	for !p.check(RCURLY) && !p.isAtEnd() {
		m, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.consume(RCURLY, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}, nil
}

// function parses a named function or method; kind is used in messages.
func (p *Parser) function(kind string) (*FunctionStmt, error) {
	name, err := p.consume(ID, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(LROUND, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RROUND) {
		for {
			if len(params) >= maxCallArgs {
				p.errAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxCallArgs))
			}
			param, err := p.consume(ID, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(RROUND, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(LCURLY, fmt.Sprintf("Expect '{' before %s body.", kind)); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(ID, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: init}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(FOR):
		return p.forStatement()
	case p.match(IF):
		return p.ifStatement()
	case p.match(PRINT):
		return p.printStatement()
	case p.match(RETURN):
		return p.returnStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(LCURLY):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars "for (init; cond; incr) body" into
// { init; while (cond) { body; incr; } }.
func (p *Parser) forStatement() (Stmt, error) {
	if _, err := p.consume(LROUND, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		initializer = nil
	case p.match(VAR):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition Expr
	if !p.check(SEMICOLON) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expr
	if !p.check(RROUND) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(RROUND, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &BlockStmt{Statements: []Stmt{body, &ExpressionStmt{Expr: increment}}}
	}
	if condition == nil {
		condition = &Literal{Value: Bool(true)}
	}
	body = &WhileStmt{Condition: condition, Body: body}
	if initializer != nil {
		body = &BlockStmt{Statements: []Stmt{initializer, body}}
	}
	return body, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(LROUND, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RROUND, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(ELSE) {
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: condition, Then: then, Else: els}, nil
}

func (p *Parser) printStatement() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: value}, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	var err error
	if !p.check(SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(LROUND, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RROUND, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: condition, Body: body}, nil
}

// block parses statements until '}'; the opening '{' is already consumed.
func (p *Parser) block() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RCURLY) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	if _, err := p.consume(RCURLY, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expr: expr}, nil
}

// ----- expressions, ascending precedence -----

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment is right-associative and lowest precedence. The left side is
// parsed as a general expression first, then checked for being a valid
// target (a variable or a property access).
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.match(ASSIGN) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *Variable:
			return &Assign{Name: target.Name, Value: value}, nil
		case *Get:
			return &Set{Object: target.Object, Name: target.Name, Value: value}, nil
		}
		// report, but keep the parsed expression; no need to resynchronize
		p.errAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *Parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(EQ, NEQ) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(GREATER, GREATER_EQ, LESS, LESS_EQ) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(MINUS, PLUS) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(DIV, MULT) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: op, Right: right}, nil
	}
	return p.call()
}

// call parses a primary followed by any chain of calls and property gets.
func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LROUND):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(PERIOD):
			name, err := p.consume(ID, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &Get{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RROUND) {
		for {
			if len(args) >= maxCallArgs {
				p.errAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxCallArgs))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(RROUND, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &Call{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(FALSE):
		return &Literal{Value: Bool(false)}, nil
	case p.match(TRUE):
		return &Literal{Value: Bool(true)}, nil
	case p.match(NIL):
		return &Literal{Value: Nil}, nil
	case p.match(NUMBER):
		return &Literal{Value: Num(p.previous().Literal.(float64))}, nil
	case p.match(STRING):
		return &Literal{Value: Str(p.previous().Literal.(string))}, nil
	case p.match(SUPER):
		keyword := p.previous()
		if _, err := p.consume(PERIOD, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(ID, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &Super{Keyword: keyword, Method: method}, nil
	case p.match(THIS):
		return &This{Keyword: p.previous()}, nil
	case p.match(ID):
		return &Variable{Name: p.previous()}, nil
	case p.match(LROUND):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RROUND, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &Grouping{Expr: expr}, nil
	}
	return nil, p.err(p.peek(), "Expect expression.")
}
