package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	lox "github.com/fampiyush/golox"
)

const (
	appName     = "lox"
	historyFile = ".lox_history"
	promptMain  = ">> "
	promptCont  = ".. "
)

const banner = "Lox REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

// stderrIsTTY gates ANSI coloring: plain text when piped or redirected.
var stderrIsTTY = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

func red(s string) string {
	if !stderrIsTTY {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func main() {
	args := os.Args[1:]
	switch len(args) {
	case 0:
		os.Exit(runPrompt())
	case 1:
		os.Exit(runFile(args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [script]\n", appName)
		os.Exit(64)
	}
}

// -----------------------------------------------------------------------------
// file runner
// -----------------------------------------------------------------------------

func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return 1
	}

	p := lox.NewProgram(os.Stdout)
	if runErr := p.RunSource(string(src)); runErr != nil {
		fmt.Fprintln(os.Stderr, red(runErr.Error()))
		return lox.ExitCode(runErr)
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func runPrompt() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	p := lox.NewProgram(os.Stdout)

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}

		// REPL sessions survive both static and runtime errors.
		if err := p.RunSource(code); err != nil {
			fmt.Fprintln(os.Stderr, red(lox.WrapErrorWithSource(err, code).Error()))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe accumulates lines until the input parses, or fails for a
// reason other than ending too early. An open block or unfinished statement
// keeps the continuation prompt going.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C or read failure: drop the partial input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		tokens, lexErrs := lox.NewScanner(src).ScanTokens()
		if len(lexErrs) > 0 {
			return src, true
		}
		_, parseErrs := lox.NewParser(tokens).Parse()
		if lox.IsIncomplete(lox.ErrorList(parseErrs)) {
			continue
		}
		return src, true
	}
}
