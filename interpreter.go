// interpreter.go — tree-walking evaluator for Lox.
//
// The interpreter owns the session's global environment (created once,
// persisted across REPL inputs) and walks parsed statements depth-first.
// Executing a statement yields an explicit two-case outcome: nil for normal
// completion, or a *returnSig carrying a value. Callers check and propagate
// the signal upward through blocks and loop bodies until the function-call
// boundary that created the frame absorbs it; at the outermost program level
// a bare return is ignored. Return is control transfer, never an error.
//
// Runtime faults (type mismatches, undefined variables, calling a
// non-callable, arity mismatches) follow a different discipline: evaluation
// panics with a private rtErr signal, which the public entry point recovers
// into a *RuntimeError. A fault aborts the current execution only; the
// global environment stays intact, so later REPL inputs keep working.
package lox

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil  ValueTag = iota // nil (no payload)
	VTBool                 // bool
	VTNum                  // float64
	VTStr                  // string
	VTFun                  // Callable (user function or native)
)

// Value is the universal runtime carrier used by the interpreter. The tag
// determines which Go type Data holds (see ValueTag).
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Primitive constructors for convenience.
func BoolVal(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func NumVal(f float64) Value { return Value{Tag: VTNum, Data: f} }
func StrVal(s string) Value  { return Value{Tag: VTStr, Data: s} }

// FunVal wraps a Callable into a Value (Tag=VTFun).
func FunVal(c Callable) Value { return Value{Tag: VTFun, Data: c} }

// Callable is anything a CallExpr may invoke: user-declared functions and
// registered natives. Arity is fixed and checked before Call runs.
type Callable interface {
	Arity() int
	Call(ip *Interpreter, args []Value) Value
	String() string
}

// Fun is a user function value: its declaration plus the environment it
// closed over. Env is shared, not copied, so sibling closures observe each
// other's mutations of captured variables.
type Fun struct {
	Decl *FunctionStmt
	Env  *Env
}

func (f *Fun) Arity() int     { return len(f.Decl.Params) }
func (f *Fun) String() string { return "<fn " + f.Decl.Name.Lexeme + ">" }

// Call binds parameters in a fresh child of the captured defining
// environment (the call site's environment plays no part: scoping is
// lexical) and runs the body. A return signal yields the call's result;
// falling off the end yields nil.
func (f *Fun) Call(ip *Interpreter, args []Value) Value {
	env := NewEnv(f.Env)
	for i, p := range f.Decl.Params {
		env.Define(p.Lexeme, args[i])
	}
	for _, st := range f.Decl.Body {
		if sig := ip.exec(st, env); sig != nil {
			return sig.v
		}
	}
	return Nil
}

// Native is a builtin implemented by the host.
type Native struct {
	Name  string
	NArgs int
	Impl  func(ip *Interpreter, args []Value) Value
}

func (n *Native) Arity() int                               { return n.NArgs }
func (n *Native) String() string                           { return "<native fn>" }
func (n *Native) Call(ip *Interpreter, args []Value) Value { return n.Impl(ip, args) }

// RuntimeError represents an execution-time failure with a source location.
// Line is 1-based, Col 0-based (rendered 1-based).
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// returnSig is the non-error outcome of a return statement; exec hands it
// upward until a call boundary absorbs it.
type returnSig struct{ v Value }

// rtErr is the private panic payload for runtime faults.
type rtErr struct {
	line int
	col  int
	msg  string
}

// failAt aborts the current execution with a runtime fault at tok.
func failAt(tok Token, msg string) {
	panic(rtErr{line: tok.Line, col: tok.Col, msg: msg})
}

// Interpreter is the entry point for executing Lox programs. One interpreter
// owns one Globals environment for its whole life; in interactive use it
// persists across inputs, so earlier definitions stay visible.
type Interpreter struct {
	Globals *Env
	out     io.Writer
}

// NewInterpreter constructs an engine with the clock native predefined in a
// fresh global environment. Output defaults to stdout.
func NewInterpreter() *Interpreter {
	g := NewEnv(nil)
	ip := &Interpreter{Globals: g, out: os.Stdout}
	g.Define("clock", FunVal(&Native{
		Name:  "clock",
		NArgs: 0,
		Impl: func(_ *Interpreter, _ []Value) Value {
			return NumVal(float64(time.Now().UnixNano()) / 1e9)
		},
	}))
	return ip
}

// SetOutput redirects print output (tests capture it here).
func (ip *Interpreter) SetOutput(w io.Writer) { ip.out = w }

// Interpret executes a parsed program against the session Globals. It
// returns the value of the last top-level expression statement (Nil when the
// program ends with any other statement) so interactive hosts can echo it.
// On a runtime fault it returns a *RuntimeError; Globals keeps every binding
// made before the fault.
func (ip *Interpreter) Interpret(stmts []Stmt) (out Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(rtErr)
			if !ok {
				panic(r)
			}
			out = Nil
			err = &RuntimeError{Line: sig.line, Col: sig.col, Msg: sig.msg}
		}
	}()

	out = Nil
	for _, st := range stmts {
		if es, ok := st.(*ExpressionStmt); ok {
			out = ip.eval(es.Expr, ip.Globals)
			continue
		}
		out = Nil
		// A bare top-level return is absorbed here.
		_ = ip.exec(st, ip.Globals)
	}
	return out, nil
}

// ───────────────────────── statement execution ────────────────────────

func (ip *Interpreter) exec(st Stmt, env *Env) *returnSig {
	switch s := st.(type) {
	case *ExpressionStmt:
		ip.eval(s.Expr, env)
		return nil

	case *PrintStmt:
		v := ip.eval(s.Expr, env)
		fmt.Fprintln(ip.out, FormatValue(v))
		return nil

	case *VarStmt:
		v := Nil
		if s.Init != nil {
			v = ip.eval(s.Init, env)
		}
		env.Define(s.Name.Lexeme, v)
		return nil

	case *BlockStmt:
		return ip.execBlock(s.Stmts, NewEnv(env))

	case *IfStmt:
		if isTruthy(ip.eval(s.Cond, env)) {
			return ip.exec(s.Then, env)
		}
		if s.Else != nil {
			return ip.exec(s.Else, env)
		}
		return nil

	case *WhileStmt:
		for isTruthy(ip.eval(s.Cond, env)) {
			if sig := ip.exec(s.Body, env); sig != nil {
				return sig
			}
		}
		return nil

	case *FunctionStmt:
		env.Define(s.Name.Lexeme, FunVal(&Fun{Decl: s, Env: env}))
		return nil

	case *ReturnStmt:
		v := Nil
		if s.Value != nil {
			v = ip.eval(s.Value, env)
		}
		return &returnSig{v: v}

	default:
		panic(fmt.Sprintf("unhandled statement %T", st))
	}
}

func (ip *Interpreter) execBlock(stmts []Stmt, env *Env) *returnSig {
	for _, st := range stmts {
		if sig := ip.exec(st, env); sig != nil {
			return sig
		}
	}
	return nil
}

// ───────────────────────── expression evaluation ──────────────────────

func (ip *Interpreter) eval(e Expr, env *Env) Value {
	switch x := e.(type) {
	case *LiteralExpr:
		return litValue(x.Value)

	case *GroupingExpr:
		return ip.eval(x.Inner, env)

	case *UnaryExpr:
		right := ip.eval(x.Right, env)
		switch x.Op.Type {
		case MINUS:
			if right.Tag != VTNum {
				failAt(x.Op, "operand must be a number")
			}
			return NumVal(-right.Data.(float64))
		case BANG:
			return BoolVal(!isTruthy(right))
		}
		panic(fmt.Sprintf("unhandled unary operator %q", x.Op.Lexeme))

	case *BinaryExpr:
		return ip.evalBinary(x, env)

	case *LogicalExpr:
		left := ip.eval(x.Left, env)
		// Short-circuit: the result is one of the operand values as-is,
		// not a Boolean.
		if x.Op.Type == OR {
			if isTruthy(left) {
				return left
			}
		} else {
			if !isTruthy(left) {
				return left
			}
		}
		return ip.eval(x.Right, env)

	case *VariableExpr:
		v, err := env.Get(x.Name.Lexeme)
		if err != nil {
			failAt(x.Name, err.Error())
		}
		return v

	case *AssignExpr:
		v := ip.eval(x.Value, env)
		if err := env.Set(x.Name.Lexeme, v); err != nil {
			failAt(x.Name, err.Error())
		}
		return v

	case *CallExpr:
		return ip.evalCall(x, env)

	default:
		panic(fmt.Sprintf("unhandled expression %T", e))
	}
}

func (ip *Interpreter) evalBinary(x *BinaryExpr, env *Env) Value {
	left := ip.eval(x.Left, env)
	right := ip.eval(x.Right, env)

	switch x.Op.Type {
	case PLUS:
		// Overloaded: numeric addition or string concatenation, never a
		// mix of the two.
		if left.Tag == VTNum && right.Tag == VTNum {
			return NumVal(left.Data.(float64) + right.Data.(float64))
		}
		if left.Tag == VTStr && right.Tag == VTStr {
			return StrVal(left.Data.(string) + right.Data.(string))
		}
		failAt(x.Op, "operands must be two numbers or two strings")
	case MINUS:
		a, b := ip.numOperands(x.Op, left, right)
		return NumVal(a - b)
	case STAR:
		a, b := ip.numOperands(x.Op, left, right)
		return NumVal(a * b)
	case SLASH:
		a, b := ip.numOperands(x.Op, left, right)
		return NumVal(a / b)
	case LESS:
		a, b := ip.numOperands(x.Op, left, right)
		return BoolVal(a < b)
	case LESS_EQ:
		a, b := ip.numOperands(x.Op, left, right)
		return BoolVal(a <= b)
	case GREATER:
		a, b := ip.numOperands(x.Op, left, right)
		return BoolVal(a > b)
	case GREATER_EQ:
		a, b := ip.numOperands(x.Op, left, right)
		return BoolVal(a >= b)
	case EQ:
		return BoolVal(valuesEqual(left, right))
	case NEQ:
		return BoolVal(!valuesEqual(left, right))
	}
	panic(fmt.Sprintf("unhandled binary operator %q", x.Op.Lexeme))
}

func (ip *Interpreter) numOperands(op Token, left, right Value) (float64, float64) {
	if left.Tag != VTNum || right.Tag != VTNum {
		failAt(op, "operands must be numbers")
	}
	return left.Data.(float64), right.Data.(float64)
}

func (ip *Interpreter) evalCall(x *CallExpr, env *Env) Value {
	callee := ip.eval(x.Callee, env)
	args := make([]Value, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, ip.eval(a, env))
	}

	if callee.Tag != VTFun {
		failAt(x.Paren, "can only call functions")
	}
	fn := callee.Data.(Callable)
	if len(args) != fn.Arity() {
		failAt(x.Paren, fmt.Sprintf("arity mismatch: expected %d arguments, got %d", fn.Arity(), len(args)))
	}
	return fn.Call(ip, args)
}

// ───────────────────────────── value rules ────────────────────────────

// isTruthy: only nil and false are falsey; everything else (zero, the empty
// string) is truthy.
func isTruthy(v Value) bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// valuesEqual: values of differing variants are never equal; nil equals only
// nil; functions compare by identity of the underlying callable.
func valuesEqual(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNil:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTFun:
		return a.Data == b.Data
	default:
		return false
	}
}

// litValue converts a token literal (float64, string, bool, nil) to a Value.
func litValue(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolVal(x)
	case float64:
		return NumVal(x)
	case string:
		return StrVal(x)
	default:
		panic(fmt.Sprintf("unhandled literal %T", v))
	}
}
