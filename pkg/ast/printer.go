package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a node in parenthesized prefix form, e.g.
// `(* (- 123) (group 45.67))`.
func Print(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

// PrintProgram renders one statement per line.
func PrintProgram(statements []Statement) string {
	lines := make([]string, 0, len(statements))
	for _, stmt := range statements {
		lines = append(lines, Print(stmt))
	}
	return strings.Join(lines, "\n")
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Literal:
		b.WriteString(formatLiteral(n.Value))
	case *Grouping:
		parenthesize(b, "group", n.Expression)
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, n.Right)
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)
	case *ExpressionStmt:
		parenthesize(b, "expr", n.Expression)
	case *PrintStmt:
		parenthesize(b, "print", n.Expression)
	case *VarStmt:
		if n.Initializer == nil {
			parenthesize(b, "var "+n.Name.Lexeme)
		} else {
			parenthesize(b, "var "+n.Name.Lexeme, n.Initializer)
		}
	case *Block:
		nodes := make([]Node, 0, len(n.Statements))
		for _, stmt := range n.Statements {
			nodes = append(nodes, stmt)
		}
		parenthesize(b, "block", nodes...)
	case *If:
		if n.ElseBranch == nil {
			parenthesize(b, "if", n.Condition, n.ThenBranch)
		} else {
			parenthesize(b, "if", n.Condition, n.ThenBranch, n.ElseBranch)
		}
	case *While:
		parenthesize(b, "while", n.Condition, n.Body)
	case nil:
		b.WriteString("<nil>")
	default:
		fmt.Fprintf(b, "<%s>", n.NodeType())
	}
}

func parenthesize(b *strings.Builder, name string, nodes ...Node) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, node := range nodes {
		b.WriteByte(' ')
		writeNode(b, node)
	}
	b.WriteByte(')')
}

func formatLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
