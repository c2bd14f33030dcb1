package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluateExpression(n.Expression, env)
		return err
	case *ast.PrintStmt:
		return i.executePrint(n, env)
	case *ast.VarStmt:
		return i.executeVar(n, env)
	case *ast.Block:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.If:
		return i.executeIf(n, env)
	case *ast.While:
		return i.executeWhile(n, env)
	default:
		return fmt.Errorf("unsupported statement type: %T", node)
	}
}

func (i *Interpreter) executePrint(stmt *ast.PrintStmt, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.out, valueToString(val)); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) executeVar(stmt *ast.VarStmt, env *runtime.Environment) error {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Initializer != nil {
		val, err := i.evaluateExpression(stmt.Initializer, env)
		if err != nil {
			return err
		}
		value = val
	}
	env.Define(stmt.Name.Lexeme, value)
	return nil
}

// executeBlock runs statements in scope. The caller's environment is
// untouched, so leaving the block on any path restores it.
func (i *Interpreter) executeBlock(statements []ast.Statement, scope *runtime.Environment) error {
	i.log.Debug("enter block", "depth", scope.Depth(), "statements", len(statements))
	for _, stmt := range statements {
		if err := i.executeStatement(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.If, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.executeStatement(stmt.ThenBranch, env)
	}
	if stmt.ElseBranch != nil {
		return i.executeStatement(stmt.ElseBranch, env)
	}
	return nil
}

func (i *Interpreter) executeWhile(loop *ast.While, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.executeStatement(loop.Body, env); err != nil {
			return err
		}
	}
}
