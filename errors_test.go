// errors_test.go
package lox

import (
	"errors"
	"strings"
	"testing"
)

func Test_Wrap_LexError(t *testing.T) {
	src := "var x = 1;\nvar y = @;\nprint x;"
	_, lexErrs := NewLexer(src).Scan()
	if len(lexErrs) != 1 {
		t.Fatalf("want 1 lex error, got %v", lexErrs)
	}

	wrapped := WrapErrorWithName(lexErrs[0], "demo.lox", src)
	msg := wrapped.Error()

	for _, want := range []string{
		"LEXICAL ERROR in demo.lox at 2:9",
		"   1 | var x = 1;",
		"   2 | var y = @;",
		"   3 | print x;",
		"^",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("snippet missing %q:\n%s", want, msg)
		}
	}
}

func Test_Wrap_ParseErrorCaretColumn(t *testing.T) {
	src := "1 = 2;"
	_, errs := ParseProgram(src)
	if len(errs) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", errs)
	}
	msg := WrapErrorWithSource(errs[0], src).Error()
	if !strings.Contains(msg, "PARSE ERROR at 1:3") {
		t.Fatalf("header/position wrong:\n%s", msg)
	}
	// caret under the '=' (column 3)
	if !strings.Contains(msg, "     |   ^") {
		t.Fatalf("caret misplaced:\n%s", msg)
	}
}

func Test_Wrap_RuntimeError(t *testing.T) {
	src := `"a" + 1;`
	stmts, diags := ParseProgram(src)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	ip, _ := newTestInterp()
	_, err := ip.Interpret(stmts)
	if err == nil {
		t.Fatalf("want runtime error")
	}
	msg := WrapErrorWithName(err, "<repl>", src).Error()
	if !strings.Contains(msg, "RUNTIME ERROR in <repl> at 1:") {
		t.Fatalf("header wrong:\n%s", msg)
	}
}

func Test_Wrap_OtherErrorsPassThrough(t *testing.T) {
	plain := errors.New("something else")
	if got := WrapErrorWithSource(plain, "src"); got != plain {
		t.Fatalf("non-diagnostic errors must pass through unchanged, got %v", got)
	}
}

func Test_Wrap_ClampsOutOfRangePositions(t *testing.T) {
	err := &RuntimeError{Line: 99, Col: 99, Msg: "boom"}
	msg := WrapErrorWithSource(err, "one line").Error()
	if !strings.Contains(msg, "boom") || !strings.Contains(msg, "^") {
		t.Fatalf("clamped rendering failed:\n%s", msg)
	}
}
