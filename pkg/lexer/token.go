package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	// Single-character tokens.
	LeftParen  TokenType = "LEFT_PAREN"
	RightParen TokenType = "RIGHT_PAREN"
	LeftBrace  TokenType = "LEFT_BRACE"
	RightBrace TokenType = "RIGHT_BRACE"
	Comma      TokenType = "COMMA"
	Dot        TokenType = "DOT"
	Minus      TokenType = "MINUS"
	Plus       TokenType = "PLUS"
	Semicolon  TokenType = "SEMICOLON"
	Slash      TokenType = "SLASH"
	Star       TokenType = "STAR"

	// One or two character tokens.
	Bang         TokenType = "BANG"
	BangEqual    TokenType = "BANG_EQUAL"
	Equal        TokenType = "EQUAL"
	EqualEqual   TokenType = "EQUAL_EQUAL"
	Greater      TokenType = "GREATER"
	GreaterEqual TokenType = "GREATER_EQUAL"
	Less         TokenType = "LESS"
	LessEqual    TokenType = "LESS_EQUAL"

	// Literals.
	Identifier TokenType = "IDENTIFIER"
	String     TokenType = "STRING"
	Number     TokenType = "NUMBER"

	// Keywords.
	And    TokenType = "AND"
	Class  TokenType = "CLASS"
	Else   TokenType = "ELSE"
	False  TokenType = "FALSE"
	Fun    TokenType = "FUN"
	For    TokenType = "FOR"
	If     TokenType = "IF"
	Nil    TokenType = "NIL"
	Or     TokenType = "OR"
	Print  TokenType = "PRINT"
	Return TokenType = "RETURN"
	Super  TokenType = "SUPER"
	This   TokenType = "THIS"
	True   TokenType = "TRUE"
	Var    TokenType = "VAR"
	While  TokenType = "WHILE"

	EOF TokenType = "EOF"
)

var keywords = map[string]TokenType{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// LookupKeyword reclassifies an identifier lexeme when it is reserved.
func LookupKeyword(text string) TokenType {
	if tt, ok := keywords[text]; ok {
		return tt
	}
	return Identifier
}

// Token is a classified lexeme. Literal holds a float64 for NUMBER, a string
// for STRING and nil otherwise.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

// NewToken builds a token.
func NewToken(tt TokenType, lexeme string, literal any, line int) Token {
	return Token{Type: tt, Lexeme: lexeme, Literal: literal, Line: line}
}

// String renders "TYPE lexeme literal", with "null" for an absent literal.
// Number literals always carry a fractional part, so 1 renders as 1.0.
func (t Token) String() string {
	literal := "null"
	switch v := t.Literal.(type) {
	case nil:
	case float64:
		literal = strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(literal, ".") {
			literal += ".0"
		}
	default:
		literal = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, literal)
}
