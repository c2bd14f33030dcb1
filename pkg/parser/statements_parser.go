package parser

import (
	"errors"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
)

// declaration parses one declaration and recovers from syntax errors inside
// it. A recovered declaration yields a nil statement and no error.
func (p *Parser) declaration() (ast.Statement, error) {
	var (
		stmt ast.Statement
		err  error
	)
	if p.match(lexer.Var) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err != nil {
		var perr *parseError
		if errors.As(err, &perr) {
			p.synchronize()
			return nil, nil
		}
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(lexer.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(lexer.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarStmt(name, initializer), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()

	switch {
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.Print):
		return p.printStatement()
	case p.match(lexer.LeftBrace):
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(statements), nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(lexer.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(condition, thenBranch, elseBranch), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(condition, body), nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.NewPrintStmt(value), nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStmt(expr), nil
}

// block parses declarations up to the closing brace. The opening brace has
// already been consumed.
func (p *Parser) block() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(lexer.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}
