package syntax

import "meld/logging"

// Token represents a token read in by the scanner
type Token struct {
	Kind  int
	Value string

	// Line is the line number starting at 1
	Line int

	// Col is the column number counting tabs as four columns
	Col int
}

// The various kinds of tokens supported by the scanner
const (
	// definition keywords
	REQUIRE = iota
	PROVIDE
	DEF
	STRUCT
	CONST

	// expression keywords
	LET
	IN
	IF
	THEN
	ELSE
	LOOP
	DO
	RETURN
	IS
	AS
	FAIL

	// arithmetic operators
	PLUS
	MINUS
	STAR
	DIVIDE
	MOD

	// comparison operators
	LT
	GT
	LTEQ
	GTEQ
	EQ
	NEQ

	// assignment/binding operators
	ASSIGN  // =
	BINDTO  // <-
	UPDATER // =>

	// dots
	DOT
	RANGETO

	// punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMICOLON
	COLON
	PIPE
	DOLLAR

	// literals (and identifiers)
	IDENTIFIER
	STRINGLIT
	INTLIT

	// used in the parsing algorithm
	EOF
)

// token patterns (matching strings) for keywords
var keywordPatterns = map[string]int{
	"require": REQUIRE,
	"provide": PROVIDE,
	"def":     DEF,
	"struct":  STRUCT,
	"const":   CONST,
	"let":     LET,
	"in":      IN,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"loop":    LOOP,
	"do":      DO,
	"return":  RETURN,
	"is":      IS,
	"as":      AS,
	"fail!":   FAIL,
}

// token patterns for symbolic items - longest match wins
var symbolPatterns = map[string]int{
	"+":  PLUS,
	"-":  MINUS,
	"*":  STAR,
	"/":  DIVIDE,
	"%":  MOD,
	"<":  LT,
	">":  GT,
	"<=": LTEQ,
	">=": GTEQ,
	"==": EQ,
	"!=": NEQ,
	"=":  ASSIGN,
	"<-": BINDTO,
	"=>": UPDATER,
	".":  DOT,
	"..": RANGETO,
	"(":  LPAREN,
	")":  RPAREN,
	"{":  LBRACE,
	"}":  RBRACE,
	"[":  LBRACKET,
	"]":  RBRACKET,
	",":  COMMA,
	";":  SEMICOLON,
	":":  COLON,
	"|":  PIPE,
	"$":  DOLLAR,
}

// TextPositionOfToken takes in a token and returns its text position
func TextPositionOfToken(tok *Token) *logging.TextPosition {
	return &logging.TextPosition{StartLn: tok.Line, StartCol: tok.Col - len(tok.Value), EndLn: tok.Line, EndCol: tok.Col}
}

// TextPositionOfSpan takes two positions and returns a position spanning them
func TextPositionOfSpan(start, end *logging.TextPosition) *logging.TextPosition {
	return &logging.TextPosition{
		StartLn:  start.StartLn,
		StartCol: start.StartCol,
		EndLn:    end.EndLn,
		EndCol:   end.EndCol,
	}
}
