// Package parser builds statement trees from a token stream.
//
// The parser is recursive descent with one token of lookahead. Syntax errors
// are reported to a diagnostics.Reporter; the declaration containing the error
// is dropped and parsing resumes at the next statement boundary, so one pass
// can surface several independent problems.
package parser

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
	"lox/interpreter-go/pkg/lexer"
)

// DefaultMaxDepth bounds expression and statement nesting.
const DefaultMaxDepth = 512

// ErrAborted is returned by Parse when a failure escapes declaration-level
// recovery. The statement result is absent in that case.
var ErrAborted = errors.New("parse aborted")

// parseError marks a syntax error that has already been reported.
type parseError struct {
	token   lexer.Token
	message string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.token.Line, e.message)
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth overrides DefaultMaxDepth. Zero or less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser consumes one token sequence. Create one with New.
type Parser struct {
	tokens   []lexer.Token
	current  int
	reporter diagnostics.Reporter

	depth    int
	maxDepth int
}

// New creates a parser over tokens, which must end with an EOF token. A nil
// reporter discards diagnostics.
func New(tokens []lexer.Token, reporter diagnostics.Reporter, opts ...Option) *Parser {
	if reporter == nil {
		reporter = diagnostics.Discard
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.NewToken(lexer.EOF, "", nil, line))
	}
	p := &Parser{tokens: tokens, reporter: reporter, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the top-level statements.
//
// Declarations containing syntax errors are reported and left out, so the
// result may be partial; callers decide whether to run it by checking their
// reporter. When the parse aborts the result is nil and the error wraps
// ErrAborted. A valid empty program yields an empty, non-nil slice.
func (p *Parser) Parse() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements, nil
}

// Parse is shorthand for New(tokens, reporter, opts...).Parse().
func Parse(tokens []lexer.Token, reporter diagnostics.Reporter, opts ...Option) ([]ast.Statement, error) {
	return New(tokens, reporter, opts...).Parse()
}

// nest tracks recursion into nested constructs.
func (p *Parser) nest() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.report(p.peek(), "Too much nesting.")
		return fmt.Errorf("%w: nesting deeper than %d", ErrAborted, p.maxDepth)
	}
	return nil
}

func (p *Parser) unnest() {
	p.depth--
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(tt lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) consume(tt lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.error(p.peek(), message)
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

// error reports a diagnostic at token and returns the matching parseError.
func (p *Parser) error(token lexer.Token, message string) error {
	p.report(token, message)
	return &parseError{token: token, message: message}
}

func (p *Parser) report(token lexer.Token, message string) {
	p.reporter.Report(Diagnostic(token, message))
}

// Diagnostic locates a syntax error message at token.
func Diagnostic(token lexer.Token, message string) diagnostics.Diagnostic {
	where := fmt.Sprintf(" at '%s'", token.Lexeme)
	if token.Type == lexer.EOF {
		where = " at end"
	}
	return diagnostics.Diagnostic{
		Stage:   diagnostics.StageParser,
		Line:    token.Line,
		Where:   where,
		Message: message,
	}
}
