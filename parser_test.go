package lox

import (
	"fmt"
	"strings"
	"testing"
)

func parse(t *testing.T, src string) []Stmt {
	t.Helper()
	tokens, lexErrs := NewScanner(src).ScanTokens()
	if len(lexErrs) > 0 {
		t.Fatalf("scan errors: %v", lexErrs)
	}
	stmts, errs := NewParser(tokens).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return stmts
}

func parseErrs(t *testing.T, src string) []error {
	t.Helper()
	tokens, lexErrs := NewScanner(src).ScanTokens()
	if len(lexErrs) > 0 {
		t.Fatalf("scan errors: %v", lexErrs)
	}
	_, errs := NewParser(tokens).Parse()
	return errs
}

// exprOf parses a single expression statement and returns its expression.
func exprOf(t *testing.T, src string) Expr {
	t.Helper()
	stmts := parse(t, src+";")
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ExpressionStmt)
	if !ok {
		t.Fatalf("want expression statement, got %T", stmts[0])
	}
	return es.Expr
}

func wantAST(t *testing.T, src, want string) {
	t.Helper()
	got := FormatExpr(exprOf(t, src))
	if got != want {
		t.Fatalf("\nsource: %s\nwant:   %s\ngot:    %s", src, want, got)
	}
}

func Test_Parser_Precedence_Mul_Over_Add(t *testing.T) {
	wantAST(t, "1 + 2 * 3", "(+ 1 (* 2 3))")
	wantAST(t, "(1 + 2) * 3", "(* (group (+ 1 2)) 3)")
}

func Test_Parser_Precedence_Full_Ladder(t *testing.T) {
	wantAST(t, "a = 1 or 2 and 3 == 4 < 5 + 6 * -7",
		"(= a (or 1 (and 2 (== 3 (< 4 (+ 5 (* 6 (- 7))))))))")
}

func Test_Parser_Assignment_Is_Right_Associative(t *testing.T) {
	wantAST(t, "a = b = 1", "(= a (= b 1))")
}

func Test_Parser_Unary_Chains(t *testing.T) {
	wantAST(t, "!!true", "(! (! true))")
	wantAST(t, "-123 * 45.67", "(* (- 123) 45.67)")
}

func Test_Parser_Call_And_Property_Chains(t *testing.T) {
	wantAST(t, "a.b.c", "(get c (get b a))")
	wantAST(t, "f(1)(2)", "(call (call f 1) 2)")
	wantAST(t, "a.b(1).c = 2", "(set c (call (get b a) 1) 2)")
}

func Test_Parser_Super_And_This(t *testing.T) {
	// parsed shape only; contextual validity is the resolver's job
	wantAST(t, "this.x", "(get x this)")
	wantAST(t, "super.cook()", "(call (super cook))")
}

func Test_Parser_Invalid_Assignment_Target(t *testing.T) {
	errs := parseErrs(t, "1 + 2 = 3;")
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "Invalid assignment target.") {
		t.Fatalf("wrong message: %v", errs[0])
	}
}

func Test_Parser_For_Desugars_To_While(t *testing.T) {
	stmts := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	outer, ok := stmts[0].(*BlockStmt)
	if !ok || len(outer.Statements) != 2 {
		t.Fatalf("want block{init, while}, got %#v", stmts[0])
	}
	if _, ok := outer.Statements[0].(*VarStmt); !ok {
		t.Fatalf("first desugared statement should be the initializer, got %T", outer.Statements[0])
	}
	loop, ok := outer.Statements[1].(*WhileStmt)
	if !ok {
		t.Fatalf("second desugared statement should be a while, got %T", outer.Statements[1])
	}
	body, ok := loop.Body.(*BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("loop body should be block{body, increment}, got %#v", loop.Body)
	}
	if _, ok := body.Statements[1].(*ExpressionStmt); !ok {
		t.Fatalf("increment should be appended as expression statement, got %T", body.Statements[1])
	}
}

func Test_Parser_For_Without_Clauses(t *testing.T) {
	stmts := parse(t, "for (;;) print 1;")
	loop, ok := stmts[0].(*WhileStmt)
	if !ok {
		t.Fatalf("clause-less for should desugar to bare while, got %T", stmts[0])
	}
	lit, ok := loop.Condition.(*Literal)
	if !ok || !Truthy(lit.Value) {
		t.Fatalf("missing condition should become literal true, got %#v", loop.Condition)
	}
}

func Test_Parser_Error_Recovery_Surfaces_Independent_Errors(t *testing.T) {
	src := `
var = 1;
print "ok";
fun () {}
print "also ok";
`
	tokens, _ := NewScanner(src).ScanTokens()
	stmts, errs := NewParser(tokens).Parse()
	if len(errs) != 2 {
		t.Fatalf("want 2 independent errors, got %d: %v", len(errs), errs)
	}
	// the two well-formed prints survive recovery
	if len(stmts) != 2 {
		t.Fatalf("want 2 recovered statements, got %d", len(stmts))
	}
}

func Test_Parser_Argument_Limit(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	errs := parseErrs(t, fmt.Sprintf("f(%s);", strings.Join(args, ", ")))
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "Can't have more than 255 arguments.") {
		t.Fatalf("want argument-limit error, got %v", errs)
	}

	// 255 exactly is fine
	if errs := parseErrs(t, fmt.Sprintf("f(%s);", strings.Join(args[:255], ", "))); len(errs) != 0 {
		t.Fatalf("255 arguments should parse, got %v", errs)
	}
}

func Test_Parser_Parameter_Limit(t *testing.T) {
	params := make([]string, 256)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}
	errs := parseErrs(t, fmt.Sprintf("fun f(%s) {}", strings.Join(params, ", ")))
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "Can't have more than 255 parameters.") {
		t.Fatalf("want parameter-limit error, got %v", errs)
	}
}

func Test_Parser_Class_Declaration(t *testing.T) {
	stmts := parse(t, `
class Cruller < Doughnut {
  init(glaze) { this.glaze = glaze; }
  finish() { print "glaze with " + this.glaze; }
}
`)
	cls, ok := stmts[0].(*ClassStmt)
	if !ok {
		t.Fatalf("want class statement, got %T", stmts[0])
	}
	if cls.Name.Lexeme != "Cruller" || cls.Superclass == nil || cls.Superclass.Name.Lexeme != "Doughnut" {
		t.Fatalf("class header parsed wrong: %+v", cls)
	}
	if len(cls.Methods) != 2 || cls.Methods[0].Name.Lexeme != "init" {
		t.Fatalf("methods parsed wrong: %+v", cls.Methods)
	}
	if len(cls.Methods[0].Params) != 1 {
		t.Fatalf("init params parsed wrong: %+v", cls.Methods[0].Params)
	}
}

func Test_Parser_Incomplete_Input_Detection(t *testing.T) {
	for _, src := range []string{"{ print 1;", "fun f() {", "if (true", "1 +"} {
		errs := parseErrs(t, src)
		if !IsIncomplete(ErrorList(errs)) {
			t.Fatalf("%q should read as incomplete, errs=%v", src, errs)
		}
	}
	for _, src := range []string{"print 1;", ")", "var = 3;"} {
		errs := parseErrs(t, src)
		if IsIncomplete(ErrorList(errs)) {
			t.Fatalf("%q should not read as incomplete, errs=%v", src, errs)
		}
	}
}
