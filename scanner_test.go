package lox

import (
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	tokens, errs := NewScanner(src).ScanTokens()
	if len(errs) > 0 {
		t.Fatalf("scan errors: %v", errs)
	}
	return tokens
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Scanner_Punctuation_And_Operators(t *testing.T) {
	wantTypes(t, "(){},.;+-*/", []TokenType{
		LROUND, RROUND, LCURLY, RCURLY, COMMA, PERIOD, SEMICOLON,
		PLUS, MINUS, MULT, DIV,
	})
}

func Test_Scanner_Longest_Match_Operators(t *testing.T) {
	wantTypes(t, "! != = == < <= > >=", []TokenType{
		BANG, NEQ, ASSIGN, EQ, LESS, LESS_EQ, GREATER, GREATER_EQ,
	})
	// no space: still two two-char tokens
	wantTypes(t, "<=>=", []TokenType{LESS_EQ, GREATER_EQ})
}

func Test_Scanner_Keywords_And_Identifiers(t *testing.T) {
	got := wantTypes(t, "var language = lox;", []TokenType{
		VAR, ID, ASSIGN, ID, SEMICOLON,
	})
	if got[1].Lexeme != "language" || got[3].Lexeme != "lox" {
		t.Fatalf("identifier lexemes wrong: %q %q", got[1].Lexeme, got[3].Lexeme)
	}

	wantTypes(t, "and class else false fun for if nil or print return super this true var while", []TokenType{
		AND, CLASS, ELSE, FALSE, FUN, FOR, IF, NIL, OR, PRINT,
		RETURN, SUPER, THIS, TRUE, VAR, WHILE,
	})

	// keyword prefixes are plain identifiers
	wantTypes(t, "classy fortune variable", []TokenType{ID, ID, ID})
}

func Test_Scanner_Number_Literals(t *testing.T) {
	got := wantTypes(t, "123 45.67 0.5", []TokenType{NUMBER, NUMBER, NUMBER})
	want := []float64{123, 45.67, 0.5}
	for i, w := range want {
		if got[i].Literal.(float64) != w {
			t.Fatalf("number %d: want %v got %v", i, w, got[i].Literal)
		}
	}
}

func Test_Scanner_Number_Does_Not_Eat_Method_Dot(t *testing.T) {
	// "123." is NUMBER then PERIOD: no trailing-dot numbers
	wantTypes(t, "123.sqrt", []TokenType{NUMBER, PERIOD, ID})
}

func Test_Scanner_String_Literal(t *testing.T) {
	got := wantTypes(t, `"hello world"`, []TokenType{STRING})
	if got[0].Literal.(string) != "hello world" {
		t.Fatalf("string literal: %q", got[0].Literal)
	}
}

func Test_Scanner_Multiline_String_Tracks_Lines(t *testing.T) {
	got := toks(t, "\"a\nb\"\nx")
	if got[0].Type != STRING || got[0].Literal.(string) != "a\nb" {
		t.Fatalf("multiline string: %+v", got[0])
	}
	if got[1].Type != ID || got[1].Line != 3 {
		t.Fatalf("line tracking after multiline string: %+v", got[1])
	}
}

func Test_Scanner_Comments_Produce_No_Tokens(t *testing.T) {
	wantTypes(t, "1 // rest of line\n2", []TokenType{NUMBER, NUMBER})
	wantTypes(t, "1 /* block\nspanning\nlines */ 2", []TokenType{NUMBER, NUMBER})
	// a slash alone is division
	wantTypes(t, "1 / 2", []TokenType{NUMBER, DIV, NUMBER})
}

func Test_Scanner_Block_Comment_Tracks_Lines(t *testing.T) {
	got := toks(t, "/* a\nb */ x")
	if got[0].Type != ID || got[0].Line != 2 {
		t.Fatalf("want ID on line 2, got %+v", got[0])
	}
}

func Test_Scanner_Error_Accumulation(t *testing.T) {
	// two bad characters and an unterminated string: all reported, scan continues
	_, errs := NewScanner("@ 1 $ \"open").ScanTokens()
	if len(errs) != 3 {
		t.Fatalf("want 3 lex errors, got %d: %v", len(errs), errs)
	}
	for _, e := range errs {
		if _, ok := e.(*LexError); !ok {
			t.Fatalf("want *LexError, got %T", e)
		}
	}
}

func Test_Scanner_Unterminated_Block_Comment_Is_Error(t *testing.T) {
	_, errs := NewScanner("/* never closed").ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("want 1 lex error, got %v", errs)
	}
}

func Test_Scanner_Tokens_After_Error_Still_Scanned(t *testing.T) {
	tokens, errs := NewScanner("@ print 1;").ScanTokens()
	if len(errs) != 1 {
		t.Fatalf("want 1 lex error, got %v", errs)
	}
	got := typesWithoutEOF(tokens)
	want := []TokenType{PRINT, NUMBER, SEMICOLON}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v got %v", want, got)
	}
}

func Test_Scanner_EOF_Terminates_Stream(t *testing.T) {
	tokens := toks(t, "")
	if len(tokens) != 1 || tokens[0].Type != EOF {
		t.Fatalf("empty source should scan to a lone EOF, got %v", tokens)
	}
}

func Test_Scanner_Line_Numbers(t *testing.T) {
	tokens := toks(t, "1\n2\n\n3")
	lines := []int{1, 2, 4}
	for i, want := range lines {
		if tokens[i].Line != want {
			t.Fatalf("token %d: want line %d got %d", i, want, tokens[i].Line)
		}
	}
}

// Reconstructing source from lexemes and re-scanning yields the same token
// stream (types, lexemes, literals), independent of original spacing and
// comments.
func Test_Scanner_RoundTrip_Through_Lexemes(t *testing.T) {
	src := `
// setup
class Cake < Dessert {
  taste() {
    var adjective = "delicious";
    print "The " + this.flavor + " cake is " + adjective + "!";
  }
}
for (var i = 0; i < 10.5; i = i + 1) print i; /* done */
`
	first := toks(t, src)
	second := toks(t, FormatTokens(first))
	if len(first) != len(second) {
		t.Fatalf("token count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Lexeme != second[i].Lexeme ||
			!reflect.DeepEqual(first[i].Literal, second[i].Literal) {
			t.Fatalf("token %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
