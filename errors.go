// errors.go: per-phase diagnostics and context-snippet rendering
//
// Every phase of the pipeline produces its own typed error so callers can
// tell static failures from runtime failures:
//
//   - *LexError      — scanner (unterminated string, stray character)
//   - *ParseError    — parser (unexpected token, limits, bad targets)
//   - *ResolveError  — resolver (contextual rules, duplicate locals)
//   - *RuntimeError  — interpreter (type errors, arity, undefined names)
//
// All of them render as "[line N] ..." suitable for stderr. Static-phase
// errors are accumulated into an ErrorList; a nonempty list suppresses
// execution entirely.
//
// WrapErrorWithSource upgrades any of the above into a multi-line snippet
// with one line of context either side and a marker under the offending
// line, e.g.:
//
//	[line 3] Error at ')': Expect expression.
//
//	   2 | var x = (1 + 2
//	   3 |              );
//	     | ^
//	   4 | print x;
//
// Line numbers are clamped to the source bounds so malformed coordinates
// never crash rendering. Output is plain text (no ANSI escapes).
package lox

import (
	"fmt"
	"strings"
)

// LexError is a scanner diagnostic. Line is 1-based.
type LexError struct {
	Line int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Msg)
}

// ParseError is a parser diagnostic carrying the offending token.
type ParseError struct {
	Token Token
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token.Type == EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Msg)
}

// ResolveError is a static-analysis diagnostic from the resolver.
type ResolveError struct {
	Token Token
	Msg   string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Msg)
}

// RuntimeError aborts execution at the first occurrence. Line is 1-based.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Msg)
}

// ErrorList aggregates the accumulated diagnostics of the static pipeline.
// It satisfies error itself.
type ErrorList []error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// IsIncomplete reports whether err represents input that failed to parse
// only because it ended too early (every parse error sits on the EOF token).
// REPLs use this to decide between a continuation prompt and reporting.
func IsIncomplete(err error) bool {
	switch e := err.(type) {
	case *ParseError:
		return e.Token.Type == EOF
	case ErrorList:
		if len(e) == 0 {
			return false
		}
		for _, sub := range e {
			if !IsIncomplete(sub) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// errorLine extracts the 1-based source line of a diagnostic, or 0 when the
// error is not one of ours.
func errorLine(err error) int {
	switch e := err.(type) {
	case *LexError:
		return e.Line
	case *ParseError:
		return e.Token.Line
	case *ResolveError:
		return e.Token.Line
	case *RuntimeError:
		return e.Line
	default:
		return 0
	}
}

// WrapErrorWithSource returns an error augmented with a context snippet of
// the provided source. Diagnostics from this package gain the snippet; any
// other error is returned unchanged. An ErrorList is wrapped element-wise.
func WrapErrorWithSource(err error, src string) error {
	if list, ok := err.(ErrorList); ok {
		out := make(ErrorList, len(list))
		for i, sub := range list {
			out[i] = WrapErrorWithSource(sub, src)
		}
		return out
	}
	line := errorLine(err)
	if line == 0 {
		return err
	}
	return fmt.Errorf("%s", prettyErrorString(src, err.Error(), line))
}

// prettyErrorString builds a snippet with a header, up to one line of
// context before and after, and a marker under the offending line. The line
// number is treated as 1-based and clamped to the source bounds.
func prettyErrorString(src, header string, line int) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", header)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	indent := len(lineTxt) - len(strings.TrimLeft(lineTxt, " \t"))
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", indent))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return strings.TrimRight(b.String(), "\n")
}
