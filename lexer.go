// lexer.go — scanner for Lox source text.
//
// The lexer consumes the full source string and produces an ordered token
// slice terminated by an EOF token, plus the list of lexical diagnostics it
// collected along the way. Scanning is total: an invalid character or an
// unterminated string records a *LexError and scanning keeps going, so one
// pass reports every lexical error in the file.
package lox

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	LBRACE    // "{"
	RBRACE    // "}"
	COMMA     // ","
	DOT       // "."
	SEMICOLON // ";"

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	BANG
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ

	// Literals & identifiers
	ID
	STRING
	NUMBER

	// Keywords
	AND
	OR
	IF
	ELSE
	FOR
	WHILE
	FUN
	RETURN
	VAR
	PRINT
	TRUE
	FALSE
	NIL
)

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals (float64 or string)
	Line    int
	Col     int
}

// keywords map
var keywords = map[string]TokenType{
	"and":    AND,
	"or":     OR,
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"while":  WHILE,
	"fun":    FUN,
	"return": RETURN,
	"var":    VAR,
	"print":  PRINT,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
}

// LexError is a lexical diagnostic with a 1-based line and 0-based column.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans a Lox source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token
	errs   []*LexError

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

// matchNext consumes the next byte when it equals want (maximal munch).
func (l *Lexer) matchNext(want byte) bool {
	b, ok := l.peek()
	if !ok || b != want {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) {
	lex := l.src[l.start:l.cur]
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
	l.start = l.cur
}

// err records a diagnostic at the current token's start; scanning continues.
func (l *Lexer) err(msg string) {
	l.errs = append(l.errs, &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg})
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// ----- scanners -----

// scanString consumes a double-quoted string literal. Lox strings carry no
// escape sequences and may span lines. Reaching EOF before the closing quote
// is a diagnostic; no STRING token is emitted for it.
func (l *Lexer) scanString() {
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			// trim the delimiters off the lexeme
			text := l.src[l.start+1 : l.cur-1]
			l.addToken(STRING, text)
			return
		}
	}
	l.err("string was not terminated")
	l.start = l.cur
}

// scanNumber consumes an unbroken digit run, optionally followed by a single
// fractional dot and more digits. A trailing dot with no following digit is
// left unconsumed.
func (l *Lexer) scanNumber() {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	if b, ok := l.peek(); ok && b == '.' {
		if b2, ok2 := l.peekN(1); ok2 && isDigit(b2) {
			l.advance() // consume '.'
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}

	lex := l.src[l.start:l.cur]
	v, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		l.err("invalid number literal")
		l.start = l.cur
		return
	}
	l.addToken(NUMBER, v)
}

// scanIdentifier consumes [A-Za-z_][A-Za-z0-9_]* and classifies it against
// the reserved-word table.
func (l *Lexer) scanIdentifier() {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	if tt, ok := keywords[lex]; ok {
		switch tt {
		case TRUE:
			l.addToken(TRUE, true)
		case FALSE:
			l.addToken(FALSE, false)
		case NIL:
			l.addToken(NIL, nil)
		default:
			l.addToken(tt, nil)
		}
		return
	}
	l.addToken(ID, nil)
}

// ignoreUntilNewline eats until '\n' or EOF.
func (l *Lexer) ignoreUntilNewline() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

// ----- main scanner -----

func (l *Lexer) scanToken() {
	ch, _ := l.advance()

	switch ch {
	case '(':
		l.addToken(LPAREN, nil)
		return
	case ')':
		l.addToken(RPAREN, nil)
		return
	case '{':
		l.addToken(LBRACE, nil)
		return
	case '}':
		l.addToken(RBRACE, nil)
		return
	case ',':
		l.addToken(COMMA, nil)
		return
	case '.':
		l.addToken(DOT, nil)
		return
	case ';':
		l.addToken(SEMICOLON, nil)
		return
	case '+':
		l.addToken(PLUS, nil)
		return
	case '-':
		l.addToken(MINUS, nil)
		return
	case '*':
		l.addToken(STAR, nil)
		return
	case '/':
		if l.matchNext('/') {
			// single-line comment, discarded
			l.ignoreUntilNewline()
			l.start = l.cur
			return
		}
		l.addToken(SLASH, nil)
		return
	case '!':
		if l.matchNext('=') {
			l.addToken(NEQ, nil)
			return
		}
		l.addToken(BANG, nil)
		return
	case '=':
		if l.matchNext('=') {
			l.addToken(EQ, nil)
			return
		}
		l.addToken(ASSIGN, nil)
		return
	case '<':
		if l.matchNext('=') {
			l.addToken(LESS_EQ, nil)
			return
		}
		l.addToken(LESS, nil)
		return
	case '>':
		if l.matchNext('=') {
			l.addToken(GREATER_EQ, nil)
			return
		}
		l.addToken(GREATER, nil)
		return
	case '"':
		l.scanString()
		return
	}

	if isDigit(ch) {
		l.scanNumber()
		return
	}
	if isAlpha(ch) {
		l.scanIdentifier()
		return
	}

	l.err(fmt.Sprintf("unexpected character: %q", ch))
	l.start = l.cur
}

// Scan tokenizes the entire source and returns tokens (EOF included) together
// with every lexical diagnostic encountered.
func (l *Lexer) Scan() ([]Token, []*LexError) {
	for {
		l.skipWhitespace()
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		l.start = l.cur
		if l.isAtEnd() {
			l.addToken(EOF, nil)
			return l.tokens, l.errs
		}
		l.scanToken()
	}
}
