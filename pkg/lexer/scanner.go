// Package lexer turns Lox source text into a token stream.
//
// Scanning is a single left-to-right pass with at most two characters of
// lookahead. Errors are reported to a diagnostics.Reporter and never stop the
// pass; the stream always ends with exactly one EOF token.
package lexer

import (
	"strconv"
	"unicode/utf8"

	"lox/interpreter-go/pkg/diagnostics"
)

// Scanner holds the cursor state for one source string.
type Scanner struct {
	source   string
	reporter diagnostics.Reporter

	tokens  []Token
	start   int
	current int
	line    int
}

// NewScanner prepares a scanner. A nil reporter discards diagnostics.
func NewScanner(source string, reporter diagnostics.Reporter) *Scanner {
	if reporter == nil {
		reporter = diagnostics.Discard
	}
	return &Scanner{source: source, reporter: reporter, line: 1}
}

// ScanTokens scans the whole source and returns the token sequence.
func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, NewToken(EOF, "", nil, s.line))
	return s.tokens
}

// Scan is a convenience wrapper around NewScanner(...).ScanTokens().
func Scan(source string, reporter diagnostics.Reporter) []Token {
	return NewScanner(source, reporter).ScanTokens()
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(LeftParen)
	case ')':
		s.addToken(RightParen)
	case '{':
		s.addToken(LeftBrace)
	case '}':
		s.addToken(RightBrace)
	case ',':
		s.addToken(Comma)
	case '.':
		s.addToken(Dot)
	case '-':
		s.addToken(Minus)
	case '+':
		s.addToken(Plus)
	case ';':
		s.addToken(Semicolon)
	case '*':
		s.addToken(Star)
	case '!':
		s.addToken(s.choose('=', BangEqual, Bang))
	case '=':
		s.addToken(s.choose('=', EqualEqual, Equal))
	case '<':
		s.addToken(s.choose('=', LessEqual, Less))
	case '>':
		s.addToken(s.choose('=', GreaterEqual, Greater))
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(Slash)
		}
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.string()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			// Skip the rest of a multi-byte character so it yields one report.
			if c >= utf8.RuneSelf {
				_, size := utf8.DecodeRuneInString(s.source[s.start:])
				s.current = s.start + size
			}
			s.error("Unexpected character.")
		}
	}
}

func (s *Scanner) string() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.error("Unterminated string.")
		return
	}
	s.advance() // closing quote
	value := s.source[s.start+1 : s.current-1]
	s.addLiteral(String, value)
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	// The fraction is only taken when a digit follows the dot.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	// The lexeme is always well formed; out-of-range values come back as ±Inf.
	value, _ := strconv.ParseFloat(s.source[s.start:s.current], 64)
	s.addLiteral(Number, value)
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	s.addToken(LookupKeyword(s.source[s.start:s.current]))
}

func (s *Scanner) choose(expected byte, matched, otherwise TokenType) TokenType {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) addToken(tt TokenType) {
	s.addLiteral(tt, nil)
}

func (s *Scanner) addLiteral(tt TokenType, literal any) {
	s.tokens = append(s.tokens, NewToken(tt, s.source[s.start:s.current], literal, s.line))
}

func (s *Scanner) error(message string) {
	s.reporter.Report(diagnostics.Diagnostic{
		Stage:   diagnostics.StageScanner,
		Line:    s.line,
		Message: message,
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
