package parser

import (
	mapset "github.com/deckarep/golang-set"

	"lox/interpreter-go/pkg/lexer"
)

// statementStarts are the tokens synchronize stops in front of.
var statementStarts = mapset.NewSetFromSlice([]interface{}{
	lexer.Class,
	lexer.Fun,
	lexer.Var,
	lexer.For,
	lexer.If,
	lexer.While,
	lexer.Print,
	lexer.Return,
})

// synchronize discards tokens until just after a ';' or just before a token
// that starts a new declaration.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.Semicolon {
			return
		}
		if statementStarts.Contains(p.peek().Type) {
			return
		}
		p.advance()
	}
}
