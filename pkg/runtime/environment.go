package runtime

import (
	"fmt"
	"sort"

	"lox/interpreter-go/pkg/lexer"
)

// UndefinedVariableError is returned when a name is not bound in any
// enclosing scope. Token locates the offending reference.
type UndefinedVariableError struct {
	Token lexer.Token
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Token.Lexeme)
}

// Environment provides lexical scoping for Lox runtime values.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Depth counts the enclosing scopes; the global scope has depth 0.
func (e *Environment) Depth() int {
	depth := 0
	for env := e.parent; env != nil; env = env.parent {
		depth++
	}
	return depth
}

// Define inserts or overwrites a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the first scope where it appears.
// It never creates a binding.
func (e *Environment) Assign(name lexer.Token, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return &UndefinedVariableError{Token: name}
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name lexer.Token) (Value, error) {
	if v, ok := e.Lookup(name.Lexeme); ok {
		return v, nil
	}
	return nil, &UndefinedVariableError{Token: name}
}

// Lookup is Get by plain name, without an error.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Keys returns the current scope's names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
