package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return runtime.FromLiteral(n.Value)
	case *ast.Grouping:
		return i.evaluateExpression(n.Expression, env)
	case *ast.Variable:
		val, err := env.Get(n.Name)
		if err != nil {
			return nil, runtimeErrorFrom(err)
		}
		return val, nil
	case *ast.Assign:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(n.Name, val); err != nil {
			return nil, runtimeErrorFrom(err)
		}
		return val, nil
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", node)
	}
}

func (i *Interpreter) evaluateUnary(expr *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case lexer.Bang:
		return runtime.BoolValue{Val: !isTruthy(right)}, nil
	case lexer.Minus:
		num, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, &RuntimeError{Token: expr.Operator, Message: "Operand must be a number."}
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator.Lexeme)
	}
}

// evaluateBinary evaluates both operands left to right before checking types.
func (i *Interpreter) evaluateBinary(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case lexer.EqualEqual:
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case lexer.BangEqual:
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	case lexer.Plus:
		switch l := left.(type) {
		case runtime.NumberValue:
			if r, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: l.Val + r.Val}, nil
			}
		case runtime.StringValue:
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
		return nil, &RuntimeError{Token: expr.Operator, Message: "Operands must be two numbers or two strings."}
	}

	l, r, err := numberOperands(expr.Operator, left, right)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case lexer.Minus:
		return runtime.NumberValue{Val: l - r}, nil
	case lexer.Star:
		return runtime.NumberValue{Val: l * r}, nil
	case lexer.Slash:
		return runtime.NumberValue{Val: l / r}, nil
	case lexer.Greater:
		return runtime.BoolValue{Val: l > r}, nil
	case lexer.GreaterEqual:
		return runtime.BoolValue{Val: l >= r}, nil
	case lexer.Less:
		return runtime.BoolValue{Val: l < r}, nil
	case lexer.LessEqual:
		return runtime.BoolValue{Val: l <= r}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", expr.Operator.Lexeme)
	}
}

// evaluateLogical short-circuits and yields the deciding operand itself.
func (i *Interpreter) evaluateLogical(expr *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Type == lexer.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return i.evaluateExpression(expr.Right, env)
}

func numberOperands(operator lexer.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, &RuntimeError{Token: operator, Message: "Operands must be numbers."}
	}
	return l.Val, r.Val, nil
}

func isTruthy(val runtime.Value) bool {
	switch v := val.(type) {
	case runtime.BoolValue:
		return v.Val
	case runtime.NilValue:
		return false
	default:
		return true
	}
}

// valuesEqual is total: values of different kinds are never equal, numbers
// compare with IEEE semantics (NaN != NaN).
func valuesEqual(left, right runtime.Value) bool {
	switch l := left.(type) {
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	default:
		return false
	}
}
