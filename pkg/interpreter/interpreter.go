package interpreter

import (
	"errors"
	"io"
	"os"

	"github.com/inconshreveable/log15"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/runtime"
)

// RuntimeError is an evaluation failure attributed to the token that caused
// it. It aborts the rest of the current Interpret call.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Line is the source line of the offending token.
func (e *RuntimeError) Line() int {
	return e.Token.Line
}

// Interpreter drives evaluation of Lox statements against a persistent
// global environment.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
	log    log15.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput directs print statements to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithLogger attaches a logger for evaluation tracing.
func WithLogger(logger log15.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.log = logger
		}
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	logger := log15.New("module", "interpreter")
	logger.SetHandler(log15.DiscardHandler())
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    os.Stdout,
		log:    logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interpret executes statements in order in the global environment. The first
// runtime error stops execution and is returned as a *RuntimeError; bindings
// made before it persist.
func (i *Interpreter) Interpret(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := i.executeStatement(stmt, i.global); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression in the global environment.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	return i.evaluateExpression(expr, i.global)
}

// runtimeErrorFrom converts environment lookup failures into runtime errors
// and passes everything else through.
func runtimeErrorFrom(err error) error {
	var undefined *runtime.UndefinedVariableError
	if errors.As(err, &undefined) {
		return &RuntimeError{Token: undefined.Token, Message: undefined.Error()}
	}
	return err
}
