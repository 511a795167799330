package lox

import (
	"fmt"
	"strconv"
)

// Scanner converts Lox source text into a flat token sequence. Lexical errors
// are accumulated rather than aborting the scan, so a single run surfaces
// every bad character and unterminated literal in the file.
type Scanner struct {
	src    string
	tokens []Token
	errs   []error

	start int // start index of current lexeme
	cur   int // current index
	line  int // 1-based
}

// NewScanner creates a new scanner for the given source.
func NewScanner(src string) *Scanner {
	return &Scanner{
		src:  src,
		line: 1,
	}
}

// ScanTokens tokenizes the entire source and returns the tokens (EOF
// included) together with every lexical error encountered.
func (s *Scanner) ScanTokens() ([]Token, []error) {
	for !s.isAtEnd() {
		s.start = s.cur
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Line: s.line})
	return s.tokens, s.errs
}

func (s *Scanner) isAtEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) advance() byte {
	ch := s.src[s.cur]
	s.cur++
	return ch
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.src[s.cur] != expected {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.src[s.cur]
}

func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cur+1]
}

func (s *Scanner) addToken(tt TokenType, lit interface{}) {
	s.tokens = append(s.tokens, Token{
		Type:    tt,
		Lexeme:  s.src[s.start:s.cur],
		Literal: lit,
		Line:    s.line,
	})
}

func (s *Scanner) err(msg string) {
	s.errs = append(s.errs, &LexError{Line: s.line, Msg: msg})
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// ----- main scanner -----

func (s *Scanner) scanToken() {
	ch := s.advance()
	switch ch {
	case '(':
		s.addToken(LROUND, nil)
	case ')':
		s.addToken(RROUND, nil)
	case '{':
		s.addToken(LCURLY, nil)
	case '}':
		s.addToken(RCURLY, nil)
	case ',':
		s.addToken(COMMA, nil)
	case '.':
		s.addToken(PERIOD, nil)
	case ';':
		s.addToken(SEMICOLON, nil)
	case '+':
		s.addToken(PLUS, nil)
	case '-':
		s.addToken(MINUS, nil)
	case '*':
		s.addToken(MULT, nil)
	case '!':
		if s.match('=') {
			s.addToken(NEQ, nil)
		} else {
			s.addToken(BANG, nil)
		}
	case '=':
		if s.match('=') {
			s.addToken(EQ, nil)
		} else {
			s.addToken(ASSIGN, nil)
		}
	case '<':
		if s.match('=') {
			s.addToken(LESS_EQ, nil)
		} else {
			s.addToken(LESS, nil)
		}
	case '>':
		if s.match('=') {
			s.addToken(GREATER_EQ, nil)
		} else {
			s.addToken(GREATER, nil)
		}
	case '/':
		switch {
		case s.match('/'):
			s.lineComment()
		case s.match('*'):
			s.blockComment()
		default:
			s.addToken(DIV, nil)
		}
	case ' ', '\r', '\t':
		// insignificant whitespace
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch):
			s.scanIdentifier()
		default:
			s.err(fmt.Sprintf("Unexpected character %q.", ch))
		}
	}
}

// lineComment eats until '\n' or EOF without producing a token.
func (s *Scanner) lineComment() {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
}

// blockComment eats a (non-nesting) '/* ... */' comment, tracking newlines.
// Reaching EOF first is a lexical error.
func (s *Scanner) blockComment() {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return
		}
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	s.err("Unterminated block comment.")
}

// scanString parses a double-quoted string literal. Strings may span lines;
// no escape sequences are recognized.
func (s *Scanner) scanString() {
	for !s.isAtEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.err("Unterminated string.")
		return
	}
	s.advance() // closing quote
	s.addToken(STRING, s.src[s.start+1:s.cur-1])
}

// scanNumber parses an integer or decimal literal. All numbers are carried
// as float64.
func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	v, convErr := strconv.ParseFloat(s.src[s.start:s.cur], 64)
	if convErr != nil {
		s.err("Invalid number literal.")
		return
	}
	s.addToken(NUMBER, v)
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]* and promotes reserved words.
func (s *Scanner) scanIdentifier() {
	for isAlphaNum(s.peek()) {
		s.advance()
	}
	lex := s.src[s.start:s.cur]
	if tt, ok := keywords[lex]; ok {
		s.addToken(tt, nil)
		return
	}
	s.addToken(ID, nil)
}
