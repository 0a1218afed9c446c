// parser.go — recursive-descent parser for Lox.
//
// The parser consumes the token stream produced by the lexer (see lexer.go)
// and builds a program: a flat []Stmt of declarations and statements. It
// never panics on malformed input. Expressions use one level of lookahead
// and a hand-rolled precedence ladder, lowest to highest:
//
//	assignment  =                      (right-assoc, Variable targets only)
//	logic_or    or
//	logic_and   and
//	equality    == !=
//	comparison  < <= > >=
//	term        + -
//	factor      * /
//	unary       ! -
//	call        f(a)(b)
//	primary     literals, identifiers, ( ... )
//
// Statement-level errors are collected rather than fatal: on an unexpected
// token the parser records a *ParseError and synchronizes to the next
// statement boundary (a ';' or a token that can begin a declaration), so a
// single run surfaces every independent diagnostic in the file.
//
// "for" has no AST node. The parser desugars it into a block holding the
// initializer and a while loop whose condition defaults to true and whose
// body ends with the increment.
package lox

import "fmt"

// maxCallArgs caps argument lists; exceeding it is reported but not fatal.
const maxCallArgs = 255

// ParseError is a parse diagnostic with a 1-based line and 0-based column.
// AtEOF marks diagnostics caused by running out of input, which lets a REPL
// distinguish "incomplete" from "wrong" (see IsIncomplete).
type ParseError struct {
	Line  int
	Col   int
	Msg   string
	AtEOF bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether a diagnostic list describes input that merely
// stopped too early: at least one error, and every one a *ParseError raised
// at end of input. REPLs use this as a continuation probe.
func IsIncomplete(errs []error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, err := range errs {
		pe, ok := err.(*ParseError)
		if !ok || !pe.AtEOF {
			return false
		}
	}
	return true
}

// ParseProgram scans and parses src in one call, returning the program and
// all static diagnostics (lexical first, then parse) in source order within
// each kind. A non-empty diagnostic list means the program must not run.
func ParseProgram(src string) ([]Stmt, []error) {
	toks, lerrs := NewLexer(src).Scan()
	stmts, perrs := NewParser(toks).Parse()
	errs := make([]error, 0, len(lerrs)+len(perrs))
	for _, e := range lerrs {
		errs = append(errs, e)
	}
	for _, e := range perrs {
		errs = append(errs, e)
	}
	return stmts, errs
}

// Parser parses a token stream with one token of lookahead.
type Parser struct {
	toks []Token
	i    int
	errs []*ParseError
}

// NewParser creates a parser over toks; the slice must end with an EOF token.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// Parse consumes the whole stream and returns the program plus every parse
// diagnostic collected along the way.
func (p *Parser) Parse() ([]Stmt, []*ParseError) {
	var stmts []Stmt
	for !p.atEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	return stmts, p.errs
}

// ─────────────────────── token basics & helpers ──────────────────────

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *Parser) prev() Token { return p.toks[p.i-1] }

func (p *Parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

// need consumes a token of type t or returns a diagnostic anchored at the
// offending token.
func (p *Parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *Parser) errAt(tok Token, msg string) *ParseError {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg, AtEOF: tok.Type == EOF}
}

// record stores a non-fatal diagnostic without interrupting the parse.
func (p *Parser) record(err error) {
	if pe, ok := err.(*ParseError); ok {
		p.errs = append(p.errs, pe)
	}
}

// synchronize discards tokens until a plausible statement boundary: just
// past a ';', or in front of a token that begins a declaration/statement.
// The offending token is always discarded so recovery makes progress.
func (p *Parser) synchronize() {
	if !p.atEnd() {
		p.i++
	}
	for !p.atEnd() {
		if p.prevIs(SEMICOLON) {
			return
		}
		switch p.peek().Type {
		case VAR, FUN, IF, FOR, WHILE, PRINT, RETURN:
			return
		}
		p.i++
	}
}

func (p *Parser) prevIs(tt TokenType) bool {
	return p.i > 0 && p.toks[p.i-1].Type == tt
}

// ───────────────────────────── declarations ──────────────────────────

// declaration parses one declaration or statement, recovering at statement
// boundaries so later errors still surface. Returns nil when recovery threw
// the statement away.
func (p *Parser) declaration() Stmt {
	var st Stmt
	var err error
	switch {
	case p.match(VAR):
		st, err = p.varDecl()
	case p.match(FUN):
		st, err = p.funDecl()
	default:
		st, err = p.statement()
	}
	if err != nil {
		p.record(err)
		p.synchronize()
		return nil
	}
	return st
}

func (p *Parser) varDecl() (Stmt, error) {
	name, err := p.need(ID, "expected variable name")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Init: init}, nil
}

func (p *Parser) funDecl() (Stmt, error) {
	name, err := p.need(ID, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RPAREN) {
		for {
			if len(params) >= maxCallArgs {
				p.record(p.errAt(p.peek(), fmt.Sprintf("cannot have more than %d parameters", maxCallArgs)))
			}
			param, err := p.need(ID, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.need(LBRACE, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

// ───────────────────────────── statements ────────────────────────────

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(PRINT):
		return p.printStmt()
	case p.match(RETURN):
		return p.returnStmt()
	case p.match(IF):
		return p.ifStmt()
	case p.match(WHILE):
		return p.whileStmt()
	case p.match(FOR):
		return p.forStmt()
	case p.match(LBRACE):
		stmts, err := p.blockBody()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Stmts: stmts}, nil
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after value"); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: expr}, nil
}

func (p *Parser) returnStmt() (Stmt, error) {
	keyword := p.prev()
	var value Expr
	if !p.check(SEMICOLON) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	if _, err := p.need(LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(ELSE) {
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	if _, err := p.need(LPAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RPAREN, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

// forStmt desugars for(init; cond; incr) body into
// { init; while (cond) { body; incr; } } with cond defaulting to true.
func (p *Parser) forStmt() (Stmt, error) {
	if _, err := p.need(LPAREN, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		init = nil
	case p.match(VAR):
		init, err = p.varDecl()
	default:
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(RPAREN) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(RPAREN, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &BlockStmt{Stmts: []Stmt{body, &ExpressionStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &LiteralExpr{Value: true}
	}
	var loop Stmt = &WhileStmt{Cond: cond, Body: body}
	if init != nil {
		loop = &BlockStmt{Stmts: []Stmt{init, loop}}
	}
	return loop, nil
}

// blockBody parses statements until the closing '}'; the opening brace has
// already been consumed.
func (p *Parser) blockBody() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RBRACE) && !p.atEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	if _, err := p.need(RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expr: expr}, nil
}

// ──────────────────────────── expressions ────────────────────────────

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment is right-associative and only valid when the target parsed as a
// plain variable; anything else is a recorded diagnostic, and the left side
// stands so parsing can continue.
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if p.match(ASSIGN) {
		eq := p.prev()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: v.Name, Value: value}, nil
		}
		p.record(p.errAt(eq, "invalid assignment target"))
	}
	return expr, nil
}

func (p *Parser) logicOr() (Expr, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicAnd() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(EQ, NEQ) {
		op := p.prev()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(LESS, LESS_EQ, GREATER, GREATER_EQ) {
		op := p.prev()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(PLUS, MINUS) {
		op := p.prev()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(STAR, SLASH) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Right: right}, nil
	}
	return p.call()
}

// call parses chained invocations: f(a)(b).
func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(LPAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RPAREN) {
		for {
			if len(args) >= maxCallArgs {
				p.record(p.errAt(p.peek(), fmt.Sprintf("cannot have more than %d arguments", maxCallArgs)))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren, err := p.need(RPAREN, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(NUMBER, STRING, TRUE, FALSE, NIL):
		return &LiteralExpr{Value: p.prev().Literal}, nil
	case p.match(ID):
		return &VariableExpr{Name: p.prev()}, nil
	case p.match(LPAREN):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &GroupingExpr{Inner: inner}, nil
	default:
		return nil, p.errAt(p.peek(), "expected expression")
	}
}
