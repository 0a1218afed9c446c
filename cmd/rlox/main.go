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

	"github.com/peterh/liner"

	lox "github.com/ID-UNCLEAR/rlox"
)

const (
	appName     = "rlox"
	historyFile = ".rlox_history"
	promptMain  = "> "
	promptCont  = "... "

	exitUsage   = 64 // bad invocation
	exitStatic  = 65 // lexical or parse errors
	exitRuntime = 70 // runtime error
)

var banner = "rlox REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	switch len(os.Args) {
	case 1:
		os.Exit(cmdRepl())
	case 2:
		os.Exit(cmdRun(os.Args[1]))
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [script]\n", appName)
		os.Exit(exitUsage)
	}
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

// cmdRun executes a script file. All static diagnostics are reported before
// anything runs; any diagnostic suppresses execution entirely.
func cmdRun(file string) int {
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return exitUsage
	}
	src := string(data)

	stmts, diags := lox.ParseProgram(src)
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, lox.WrapErrorWithName(d, file, src).Error())
		}
		return exitStatic
	}

	ip := lox.NewInterpreter()
	if _, err := ip.Interpret(stmts); err != nil {
		fmt.Fprintln(os.Stderr, lox.WrapErrorWithName(err, file, src).Error())
		return exitRuntime
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// cmdRepl runs the interactive loop. One interpreter lives for the whole
// session, so declarations persist across inputs; diagnostics and runtime
// errors are reported without ending the session.
func cmdRepl() int {
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

	ip := lox.NewInterpreter()

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
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		stmts, diags := lox.ParseProgram(code)
		if len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, red(lox.WrapErrorWithName(d, "<repl>", code).Error()))
			}
			continue
		}

		v, err := ip.Interpret(stmts)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(lox.WrapErrorWithName(err, "<repl>", code).Error()))
			continue
		}
		if endsWithExpression(stmts) {
			fmt.Println(blue(lox.FormatValue(v)))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

func endsWithExpression(stmts []lox.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*lox.ExpressionStmt)
	return ok
}

// readByParseProbe keeps prompting for continuation lines while the buffer
// parses as merely incomplete (every diagnostic raised at end of input);
// anything else (clean or broken) is submitted as-is.
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
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, diags := lox.ParseProgram(src)
		if lox.IsIncomplete(diags) {
			continue
		}
		return src, true
	}
}
