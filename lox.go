// lox.go — the front-to-back pipeline driver.
//
// A Program owns one interpreter across any number of inputs, so a REPL
// keeps its globals and resolved distances between lines while a file run
// uses a single input. Each input flows scan → parse → resolve → interpret;
// the static phases accumulate their diagnostics and any nonzero count
// stops the pipeline before the first statement executes.
package lox

import "io"

// Exit codes follow the sysexits convention used by the CLI.
const (
	ExitOK           = 0
	ExitStaticError  = 65 // lex, parse, or resolution errors
	ExitRuntimeError = 70
)

// Program is a reusable execution context: root environment, accumulated
// resolver distances, and the output sink, threaded from construction to
// the end of the run.
type Program struct {
	ip *Interpreter
}

// NewProgram creates a program whose print output goes to stdout.
func NewProgram(stdout io.Writer) *Program {
	return &Program{ip: NewInterpreter(stdout)}
}

// Interpreter exposes the underlying interpreter (host embedding, tests).
func (p *Program) Interpreter() *Interpreter { return p.ip }

// RunSource executes one source unit. The returned error is nil on success,
// an ErrorList of accumulated diagnostics when any static phase failed (in
// which case nothing was executed), or a single *RuntimeError when
// execution aborted.
func (p *Program) RunSource(src string) error {
	tokens, lexErrs := NewScanner(src).ScanTokens()
	stmts, parseErrs := NewParser(tokens).Parse()

	static := ErrorList{}
	static = append(static, lexErrs...)
	static = append(static, parseErrs...)
	if len(static) > 0 {
		return static
	}

	locals, resErrs := NewResolver().Resolve(stmts)
	if len(resErrs) > 0 {
		return ErrorList(resErrs)
	}

	p.ip.Resolve(locals)
	return p.ip.Interpret(stmts)
}

// ExitCode maps a RunSource outcome to the process exit convention:
// 0 on success, 70 for a runtime error, 65 for accumulated static errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if _, ok := err.(*RuntimeError); ok {
		return ExitRuntimeError
	}
	return ExitStaticError
}
