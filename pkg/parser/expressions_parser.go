package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
)

func (p *Parser) expression() (ast.Expression, error) {
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()
	return p.assignment()
}

// assignment is right-associative. The target is checked after parsing the
// left side as an ordinary expression; anything but a variable is reported
// and the left side is kept.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.Equal) {
		return expr, nil
	}
	equals := p.previous()
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if variable, ok := expr.(*ast.Variable); ok {
		return ast.NewAssign(variable.Name, value), nil
	}
	p.report(equals, "Invalid assignment target.")
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.Or) {
		operator := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, operator, right)
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.And) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, operator, right)
	}
	return expr, nil
}

// binaryLevel parses one left-associative tier: operand (op operand)*.
func (p *Parser) binaryLevel(operand func() (ast.Expression, error), operators ...lexer.TokenType) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, operator, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, lexer.BangEqual, lexer.EqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.term, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLevel(p.factor, lexer.Minus, lexer.Plus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLevel(p.unary, lexer.Slash, lexer.Star)
}

func (p *Parser) unary() (ast.Expression, error) {
	if !p.match(lexer.Bang, lexer.Minus) {
		return p.primary()
	}
	operator := p.previous()
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()
	right, err := p.unary()
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(operator, right), nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(lexer.False):
		return ast.NewLiteral(false), nil
	case p.match(lexer.True):
		return ast.NewLiteral(true), nil
	case p.match(lexer.Nil):
		return ast.NewLiteral(nil), nil
	case p.match(lexer.Number, lexer.String):
		return ast.NewLiteral(p.previous().Literal), nil
	case p.match(lexer.Identifier):
		return ast.NewVariable(p.previous()), nil
	case p.match(lexer.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	default:
		return nil, p.error(p.peek(), "Expect expression.")
	}
}
