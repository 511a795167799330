package lox

import (
	"strings"
	"testing"
)

func Test_Errors_Line_Format(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&LexError{Line: 2, Msg: "Unterminated string."}, "[line 2] Error: Unterminated string."},
		{&ParseError{Token: Token{Type: RROUND, Lexeme: ")", Line: 3}, Msg: "Expect expression."}, "[line 3] Error at ')': Expect expression."},
		{&ParseError{Token: Token{Type: EOF, Line: 4}, Msg: "Expect ';' after value."}, "[line 4] Error at end: Expect ';' after value."},
		{&ResolveError{Token: Token{Type: ID, Lexeme: "a", Line: 5}, Msg: "Already a variable with this name in this scope."}, "[line 5] Error at 'a': Already a variable with this name in this scope."},
		{&RuntimeError{Line: 6, Msg: "Operands must be numbers."}, "[line 6] Operands must be numbers."},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Fatalf("want %q got %q", c.want, got)
		}
	}
}

func Test_Errors_ErrorList_Joins_Lines(t *testing.T) {
	list := ErrorList{
		&LexError{Line: 1, Msg: "one"},
		&LexError{Line: 2, Msg: "two"},
	}
	want := "[line 1] Error: one\n[line 2] Error: two"
	if got := list.Error(); got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func Test_Errors_Runtime_Error_Line_Reported(t *testing.T) {
	_, err := run(t, "var a = 1;\nvar b = 2;\nprint a + nil;")
	rte, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError, got %T", err)
	}
	if rte.Line != 3 {
		t.Fatalf("want line 3, got %d", rte.Line)
	}
}

func Test_Errors_WrapErrorWithSource_Snippet(t *testing.T) {
	src := "var x = 1;\nvar = 2;\nprint x;"
	_, err := NewParser(toks(t, src)).Parse()
	if len(err) != 1 {
		t.Fatalf("want 1 parse error, got %v", err)
	}

	wrapped := WrapErrorWithSource(err[0], src).Error()
	for _, fragment := range []string{
		"[line 2] Error at '=': Expect variable name.",
		"   1 | var x = 1;",
		"   2 | var = 2;",
		"   3 | print x;",
		"| ^",
	} {
		if !strings.Contains(wrapped, fragment) {
			t.Fatalf("snippet missing %q:\n%s", fragment, wrapped)
		}
	}
}

func Test_Errors_WrapErrorWithSource_Clamps_Lines(t *testing.T) {
	// out-of-range line must not panic rendering
	got := WrapErrorWithSource(&RuntimeError{Line: 99, Msg: "boom"}, "only line").Error()
	if !strings.Contains(got, "   1 | only line") {
		t.Fatalf("clamped snippet wrong:\n%s", got)
	}
}

func Test_Errors_WrapErrorWithSource_Passes_Foreign_Errors(t *testing.T) {
	plain := ErrorList{&LexError{Line: 1, Msg: "x"}}
	wrapped := WrapErrorWithSource(plain, "src")
	if _, ok := wrapped.(ErrorList); !ok {
		t.Fatalf("list should wrap element-wise, got %T", wrapped)
	}
}

func Test_Errors_IsIncomplete(t *testing.T) {
	atEnd := &ParseError{Token: Token{Type: EOF, Line: 1}, Msg: "Expect '}' after block."}
	inline := &ParseError{Token: Token{Type: RROUND, Lexeme: ")", Line: 1}, Msg: "Expect expression."}

	if !IsIncomplete(atEnd) {
		t.Fatal("error at EOF is incomplete input")
	}
	if IsIncomplete(inline) {
		t.Fatal("mid-stream error is not incomplete input")
	}
	if !IsIncomplete(ErrorList{atEnd}) {
		t.Fatal("list of at-end errors is incomplete")
	}
	if IsIncomplete(ErrorList{atEnd, inline}) {
		t.Fatal("mixed list is not incomplete")
	}
	if IsIncomplete(ErrorList{}) {
		t.Fatal("empty list is not incomplete")
	}
	if IsIncomplete(nil) {
		t.Fatal("nil is not incomplete")
	}
}
