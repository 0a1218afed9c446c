// ast.go — expression and statement nodes produced by the parser.
//
// Expr and Stmt are closed sums: each is a sealed interface with an
// unexported marker method, so every variant lives in this file and every
// consumer dispatches with an exhaustive type switch. Nodes are pure data;
// evaluation lives in interpreter.go.
package lox

// Expr is the sealed interface over all expression variants.
type Expr interface {
	exprNode()
}

// LiteralExpr holds a scanned literal value: float64, string, bool or nil.
type LiteralExpr struct {
	Value interface{}
}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Inner Expr
}

// UnaryExpr applies a prefix operator ("-" or "!") to its operand.
type UnaryExpr struct {
	Op    Token
	Right Expr
}

// BinaryExpr applies an arithmetic, comparison or equality operator.
type BinaryExpr struct {
	Op    Token
	Left  Expr
	Right Expr
}

// LogicalExpr is a short-circuiting "and"/"or".
type LogicalExpr struct {
	Op    Token
	Left  Expr
	Right Expr
}

// VariableExpr reads a name from the environment chain.
type VariableExpr struct {
	Name Token
}

// AssignExpr writes to an existing binding; the parser only builds one when
// the left side of "=" was a VariableExpr.
type AssignExpr struct {
	Name  Token
	Value Expr
}

// CallExpr invokes a callee with evaluated arguments. Paren is the closing
// ")", kept for runtime error locations.
type CallExpr struct {
	Callee Expr
	Paren  Token
	Args   []Expr
}

func (*LiteralExpr) exprNode() {}
func (*GroupingExpr) exprNode() {}
func (*UnaryExpr) exprNode() {}
func (*BinaryExpr) exprNode() {}
func (*LogicalExpr) exprNode() {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode() {}
func (*CallExpr) exprNode() {}

// Stmt is the sealed interface over all statement variants. A parsed program
// is a []Stmt.
type Stmt interface {
	stmtNode()
}

// ExpressionStmt evaluates an expression for its side effects.
type ExpressionStmt struct {
	Expr Expr
}

// PrintStmt evaluates an expression and writes its formatted value.
type PrintStmt struct {
	Expr Expr
}

// VarStmt declares (or redeclares) a name in the current scope. Init may be
// nil, in which case the variable starts out nil.
type VarStmt struct {
	Name Token
	Init Expr
}

// BlockStmt runs its statements in a fresh child scope.
type BlockStmt struct {
	Stmts []Stmt
}

// IfStmt branches on the truthiness of Cond. Else may be nil.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt loops while Cond is truthy. "for" loops are desugared into this
// by the parser and have no node of their own.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// FunctionStmt declares a named function. Params are ID tokens.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// ReturnStmt transfers a value (nil when the expression is omitted) to the
// nearest enclosing call boundary. Keyword locates runtime diagnostics.
type ReturnStmt struct {
	Keyword Token
	Value   Expr
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode() {}
func (*VarStmt) stmtNode() {}
func (*BlockStmt) stmtNode() {}
func (*IfStmt) stmtNode() {}
func (*WhileStmt) stmtNode() {}
func (*FunctionStmt) stmtNode() {}
func (*ReturnStmt) stmtNode() {}
