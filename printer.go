// printer.go — deterministic text renderings of the front-end's products:
// a parenthesized prefix form for expressions (used by parser tests) and a
// lexeme join for token streams (whitespace- and comment-free source
// reconstruction).
package lox

import "strings"

// FormatExpr renders an expression in parenthesized prefix form, e.g.
// "(* (- 123) (group 45.67))".
func FormatExpr(e Expr) string {
	switch e := e.(type) {
	case *Literal:
		if e.Value.Tag == VTStr {
			return e.Value.Data.(string)
		}
		return Stringify(e.Value)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Call:
		return parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
	case *Grouping:
		return parenthesize("group", e.Expr)
	case *Get:
		return parenthesize("get "+e.Name.Lexeme, e.Object)
	case *Set:
		return parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super " + e.Method.Lexeme + ")"
	default:
		return "<unknown expr>"
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(FormatExpr(e))
	}
	b.WriteByte(')')
	return b.String()
}

// FormatTokens reconstructs a source form from token lexemes, separated by
// single spaces, EOF omitted. Re-scanning the result yields an identical
// token sequence (modulo line numbers).
func FormatTokens(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Type == EOF {
			continue
		}
		parts = append(parts, t.Lexeme)
	}
	return strings.Join(parts, " ")
}
