// parser_test.go
package lox

import (
	"strings"
	"testing"
)

func parseStmts(t *testing.T, src string) []Stmt {
	t.Helper()
	stmts, errs := ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", src, errs)
	}
	return stmts
}

func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	stmts := parseStmts(t, src)
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ExpressionStmt)
	if !ok {
		t.Fatalf("want expression statement, got %T", stmts[0])
	}
	return es.Expr
}

func Test_Parser_MultiplicativeBindsTighter(t *testing.T) {
	e := parseExpr(t, "1 + 2 * 3;")
	add, ok := e.(*BinaryExpr)
	if !ok || add.Op.Type != PLUS {
		t.Fatalf("want top-level +, got %#v", e)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Op.Type != STAR {
		t.Fatalf("want * on the right of +, got %#v", add.Right)
	}
}

func Test_Parser_BinaryLeftAssociative(t *testing.T) {
	e := parseExpr(t, "1 - 2 - 3;")
	outer, ok := e.(*BinaryExpr)
	if !ok || outer.Op.Type != MINUS {
		t.Fatalf("want top-level -, got %#v", e)
	}
	if _, ok := outer.Left.(*BinaryExpr); !ok {
		t.Fatalf("subtraction should nest on the left, got %#v", outer.Left)
	}
}

func Test_Parser_AssignmentRightAssociative(t *testing.T) {
	stmts := parseStmts(t, "var a; var b; a = b = 1;")
	es := stmts[2].(*ExpressionStmt)
	outer, ok := es.Expr.(*AssignExpr)
	if !ok || outer.Name.Lexeme != "a" {
		t.Fatalf("want assignment to a, got %#v", es.Expr)
	}
	inner, ok := outer.Value.(*AssignExpr)
	if !ok || inner.Name.Lexeme != "b" {
		t.Fatalf("want nested assignment to b, got %#v", outer.Value)
	}
}

func Test_Parser_InvalidAssignmentTarget(t *testing.T) {
	_, errs := ParseProgram("1 = 2;")
	if len(errs) != 1 {
		t.Fatalf("want 1 diagnostic, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), "invalid assignment target") {
		t.Fatalf("unexpected message: %v", errs[0])
	}
}

func Test_Parser_LogicalPrecedence(t *testing.T) {
	// or binds looser than and
	e := parseExpr(t, "a or b and c;")
	or, ok := e.(*LogicalExpr)
	if !ok || or.Op.Type != OR {
		t.Fatalf("want top-level or, got %#v", e)
	}
	and, ok := or.Right.(*LogicalExpr)
	if !ok || and.Op.Type != AND {
		t.Fatalf("want and on the right of or, got %#v", or.Right)
	}
}

func Test_Parser_CallChains(t *testing.T) {
	e := parseExpr(t, "f(a)(b);")
	outer, ok := e.(*CallExpr)
	if !ok || len(outer.Args) != 1 {
		t.Fatalf("want outer call with one argument, got %#v", e)
	}
	inner, ok := outer.Callee.(*CallExpr)
	if !ok {
		t.Fatalf("want chained call as callee, got %#v", outer.Callee)
	}
	if v, ok := inner.Callee.(*VariableExpr); !ok || v.Name.Lexeme != "f" {
		t.Fatalf("want variable f as innermost callee, got %#v", inner.Callee)
	}
}

func Test_Parser_ForDesugarsToWhile(t *testing.T) {
	stmts := parseStmts(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	block, ok := stmts[0].(*BlockStmt)
	if !ok || len(block.Stmts) != 2 {
		t.Fatalf("want block{init, while}, got %#v", stmts[0])
	}
	if _, ok := block.Stmts[0].(*VarStmt); !ok {
		t.Fatalf("want var initializer first, got %T", block.Stmts[0])
	}
	loop, ok := block.Stmts[1].(*WhileStmt)
	if !ok {
		t.Fatalf("want while loop, got %T", block.Stmts[1])
	}
	body, ok := loop.Body.(*BlockStmt)
	if !ok || len(body.Stmts) != 2 {
		t.Fatalf("loop body should be block{body, increment}, got %#v", loop.Body)
	}
	if _, ok := body.Stmts[1].(*ExpressionStmt); !ok {
		t.Fatalf("increment should be appended as expression statement, got %T", body.Stmts[1])
	}
}

func Test_Parser_ForWithoutClauses(t *testing.T) {
	stmts := parseStmts(t, "for (;;) print 1;")
	loop, ok := stmts[0].(*WhileStmt)
	if !ok {
		t.Fatalf("want bare while, got %T", stmts[0])
	}
	lit, ok := loop.Cond.(*LiteralExpr)
	if !ok || lit.Value != true {
		t.Fatalf("omitted condition should default to true, got %#v", loop.Cond)
	}
}

func Test_Parser_IfElse(t *testing.T) {
	stmts := parseStmts(t, `if (false) print "a"; else print "b";`)
	st, ok := stmts[0].(*IfStmt)
	if !ok || st.Else == nil {
		t.Fatalf("want if with else branch, got %#v", stmts[0])
	}
}

func Test_Parser_ReturnWithoutValue(t *testing.T) {
	stmts := parseStmts(t, "fun f() { return; }")
	fn := stmts[0].(*FunctionStmt)
	ret, ok := fn.Body[0].(*ReturnStmt)
	if !ok || ret.Value != nil {
		t.Fatalf("want bare return, got %#v", fn.Body[0])
	}
}

func Test_Parser_TwoIndependentErrors(t *testing.T) {
	src := "var = 1;\nprint (2;\nvar ok = 3;"
	stmts, errs := ParseProgram(src)
	if len(errs) != 2 {
		t.Fatalf("want 2 diagnostics from one run, got %d: %v", len(errs), errs)
	}
	e1 := errs[0].(*ParseError)
	e2 := errs[1].(*ParseError)
	if e1.Line != 1 || e2.Line != 2 {
		t.Fatalf("diagnostic lines: want 1 and 2, got %d and %d", e1.Line, e2.Line)
	}
	// recovery must keep the trailing valid declaration
	if len(stmts) != 1 {
		t.Fatalf("want 1 surviving statement, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*VarStmt); !ok {
		t.Fatalf("want surviving var declaration, got %T", stmts[0])
	}
}

func Test_Parser_IncompleteAtEOF(t *testing.T) {
	_, errs := ParseProgram("{ var x = 1;")
	if !IsIncomplete(errs) {
		t.Fatalf("unclosed block should be incomplete, got %v", errs)
	}

	_, errs = ParseProgram("var = ;")
	if IsIncomplete(errs) {
		t.Fatalf("hard error must not look incomplete: %v", errs)
	}

	if IsIncomplete(nil) {
		t.Fatalf("clean parse is not incomplete")
	}
}

func Test_Parser_TooManyArguments(t *testing.T) {
	var b strings.Builder
	b.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("1")
	}
	b.WriteString(");")

	stmts, errs := ParseProgram(b.String())
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "more than 255 arguments") {
		t.Fatalf("want single non-fatal arg-count diagnostic, got %v", errs)
	}
	// parsing continued: the call node still exists with all arguments
	call := stmts[0].(*ExpressionStmt).Expr.(*CallExpr)
	if len(call.Args) != 256 {
		t.Fatalf("want 256 parsed arguments, got %d", len(call.Args))
	}
}
