// printer_test.go
package lox

import "testing"

func Test_FormatValue_Primitives(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{BoolVal(true), "true"},
		{BoolVal(false), "false"},
		{NumVal(7), "7"},
		{NumVal(-7), "-7"},
		{NumVal(2.5), "2.5"},
		{NumVal(0.1), "0.1"},
		{NumVal(0), "0"},
		{NumVal(10000000), "10000000"},
		{StrVal("hello"), "hello"},
		{StrVal(""), ""},
	}
	for _, c := range cases {
		if got := FormatValue(c.v); got != c.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func Test_FormatValue_NoQuotingOnStrings(t *testing.T) {
	if got := FormatValue(StrVal(`say "hi"`)); got != `say "hi"` {
		t.Fatalf("strings print verbatim, got %q", got)
	}
}

func Test_FormatValue_Callables(t *testing.T) {
	stmts, errs := ParseProgram("fun greet() {}")
	if len(errs) != 0 {
		t.Fatalf("diagnostics: %v", errs)
	}
	decl := stmts[0].(*FunctionStmt)
	if got := FormatValue(FunVal(&Fun{Decl: decl})); got != "<fn greet>" {
		t.Fatalf("user function rendering: got %q", got)
	}
	if got := FormatValue(FunVal(&Native{Name: "clock"})); got != "<native fn>" {
		t.Fatalf("native rendering: got %q", got)
	}
}
