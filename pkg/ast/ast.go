package ast

import "lox/interpreter-go/pkg/lexer"

type NodeType string

const (
	NodeLiteral        NodeType = "Literal"
	NodeGrouping       NodeType = "Grouping"
	NodeUnary          NodeType = "Unary"
	NodeBinary         NodeType = "Binary"
	NodeLogical        NodeType = "Logical"
	NodeVariable       NodeType = "Variable"
	NodeAssign         NodeType = "Assign"
	NodeExpressionStmt NodeType = "ExpressionStmt"
	NodePrintStmt      NodeType = "PrintStmt"
	NodeVarStmt        NodeType = "VarStmt"
	NodeBlock          NodeType = "Block"
	NodeIf             NodeType = "If"
	NodeWhile          NodeType = "While"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

// Literal holds nil, a bool, a float64 or a string.
type Literal struct {
	nodeImpl
	expressionMarker

	Value any `json:"value"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGrouping(inner Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expression: inner}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator lexer.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewUnary(operator lexer.Token, right Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Right: right}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator lexer.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewBinary(left Expression, operator lexer.Token, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: operator, Right: right}
}

// Logical is an `and` / `or` expression; its right side is evaluated lazily.
type Logical struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator lexer.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewLogical(left Expression, operator lexer.Token, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Left: left, Operator: operator, Right: right}
}

type Variable struct {
	nodeImpl
	expressionMarker

	Name lexer.Token `json:"name"`
}

func NewVariable(name lexer.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type Assign struct {
	nodeImpl
	expressionMarker

	Name  lexer.Token `json:"name"`
	Value Expression  `json:"value"`
}

func NewAssign(name lexer.Token, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

// Statements

type ExpressionStmt struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStmt(expr Expression) *ExpressionStmt {
	return &ExpressionStmt{nodeImpl: newNodeImpl(NodeExpressionStmt), Expression: expr}
}

type PrintStmt struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStmt(expr Expression) *PrintStmt {
	return &PrintStmt{nodeImpl: newNodeImpl(NodePrintStmt), Expression: expr}
}

// VarStmt declares a variable; Initializer is nil when omitted.
type VarStmt struct {
	nodeImpl
	statementMarker

	Name        lexer.Token `json:"name"`
	Initializer Expression  `json:"initializer,omitempty"`
}

func NewVarStmt(name lexer.Token, initializer Expression) *VarStmt {
	return &VarStmt{nodeImpl: newNodeImpl(NodeVarStmt), Name: name, Initializer: initializer}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// If has an optional ElseBranch (nil when absent).
type If struct {
	nodeImpl
	statementMarker

	Condition  Expression `json:"condition"`
	ThenBranch Statement  `json:"thenBranch"`
	ElseBranch Statement  `json:"elseBranch,omitempty"`
}

func NewIf(condition Expression, thenBranch, elseBranch Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

type While struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhile(condition Expression, body Statement) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Body: body}
}
