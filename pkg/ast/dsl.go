package ast

import "lox/interpreter-go/pkg/lexer"

// Token helpers. Synthesized tokens sit on line 1.

var operatorTypes = map[string]lexer.TokenType{
	"-":   lexer.Minus,
	"+":   lexer.Plus,
	"/":   lexer.Slash,
	"*":   lexer.Star,
	"!":   lexer.Bang,
	"!=":  lexer.BangEqual,
	"==":  lexer.EqualEqual,
	">":   lexer.Greater,
	">=":  lexer.GreaterEqual,
	"<":   lexer.Less,
	"<=":  lexer.LessEqual,
	"and": lexer.And,
	"or":  lexer.Or,
}

func Op(lexeme string) lexer.Token {
	tt, ok := operatorTypes[lexeme]
	if !ok {
		panic("ast.Op: unknown operator " + lexeme)
	}
	return lexer.NewToken(tt, lexeme, nil, 1)
}

func Name(name string) lexer.Token {
	return lexer.NewToken(lexer.Identifier, name, nil, 1)
}

// Expression helpers.

func Num(value float64) *Literal {
	return NewLiteral(value)
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func Nil() *Literal {
	return NewLiteral(nil)
}

func Group(inner Expression) *Grouping {
	return NewGrouping(inner)
}

func Un(op string, right Expression) *Unary {
	return NewUnary(Op(op), right)
}

func Bin(op string, left, right Expression) *Binary {
	return NewBinary(left, Op(op), right)
}

func Logic(op string, left, right Expression) *Logical {
	return NewLogical(left, Op(op), right)
}

func ID(name string) *Variable {
	return NewVariable(Name(name))
}

func Set(name string, value Expression) *Assign {
	return NewAssign(Name(name), value)
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStmt {
	return NewExpressionStmt(expr)
}

func PrintS(expr Expression) *PrintStmt {
	return NewPrintStmt(expr)
}

func Var(name string, initializer Expression) *VarStmt {
	return NewVarStmt(Name(name), initializer)
}

func BlockS(statements ...Statement) *Block {
	return NewBlock(statements)
}

func IfS(condition Expression, thenBranch, elseBranch Statement) *If {
	return NewIf(condition, thenBranch, elseBranch)
}

func WhileS(condition Expression, body Statement) *While {
	return NewWhile(condition, body)
}

func Program(statements ...Statement) []Statement {
	return statements
}
