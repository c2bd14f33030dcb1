// Package driver wires the scanner, parser and interpreter into a session
// that runs scripts and REPL lines, reporting errors the way the command-line
// tool needs them.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/inconshreveable/log15"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
)

// Process exit statuses (sysexits.h).
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
	ExitConfig   = 78
)

// Session owns one interpreter; globals persist across Run calls.
type Session struct {
	interp   *interpreter.Interpreter
	console  *Console
	log      log15.Logger
	cache    *parseCache
	maxDepth int
}

// NewSession builds a session printing program output to out and errors to
// console. A nil logger discards records.
func NewSession(cfg Config, out io.Writer, console *Console, logger log15.Logger) (*Session, error) {
	if console == nil {
		return nil, fmt.Errorf("session: console is required")
	}
	if logger == nil {
		logger = DiscardLogger()
	}
	cache, err := newParseCache(cfg.ParseCacheSize)
	if err != nil {
		return nil, fmt.Errorf("session: parse cache: %w", err)
	}
	return &Session{
		interp: interpreter.New(
			interpreter.WithOutput(out),
			interpreter.WithLogger(logger.New("module", "interpreter")),
		),
		console:  console,
		log:      logger,
		cache:    cache,
		maxDepth: cfg.MaxDepth,
	}, nil
}

// Console returns the session's error sink.
func (s *Session) Console() *Console {
	return s.console
}

// Interpreter exposes the underlying interpreter.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Run compiles and executes one unit of source. Compile errors and runtime
// errors are reported to the console and are not returned; the returned error
// is reserved for failures outside the program, such as a broken output
// stream.
func (s *Session) Run(source string) error {
	statements := s.compile(source)
	if statements == nil || s.console.HadError() {
		return nil
	}
	start := time.Now()
	err := s.interp.Interpret(statements)
	s.log.Debug("interpreted", "statements", len(statements), "elapsed", time.Since(start))
	if err == nil {
		return nil
	}
	var rerr *interpreter.RuntimeError
	if errors.As(err, &rerr) {
		s.console.RuntimeError(rerr)
		return nil
	}
	return err
}

// RunFile reads path and runs its contents as one unit.
func (s *Session) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	s.log.Debug("running file", "path", path, "bytes", len(data))
	return s.Run(string(data))
}

// RunLine runs one REPL line. A compile error on a previous line does not
// block this one; globals from earlier lines remain visible.
func (s *Session) RunLine(line string) error {
	err := s.Run(line)
	s.console.ResetError()
	s.log.Debug("globals", "names", strings.Join(s.interp.GlobalEnvironment().Keys(), ","))
	return err
}

// ExitStatus maps the session's error flags to a process exit status.
func (s *Session) ExitStatus() int {
	switch {
	case s.console.HadError():
		return ExitDataErr
	case s.console.HadRuntimeError():
		return ExitSoftware
	default:
		return ExitOK
	}
}

// compile scans and parses source. It returns nil when the parse was aborted.
func (s *Session) compile(source string) []ast.Statement {
	if statements, ok := s.cache.get(source); ok {
		s.log.Debug("parse cache hit", "statements", len(statements))
		return statements
	}
	errorsBefore := s.console.HadError()
	tokens := lexer.Scan(source, s.console)
	s.log.Debug("scanned", "tokens", len(tokens))

	statements, err := parser.Parse(tokens, s.console, parser.WithMaxDepth(s.maxDepth))
	if err != nil {
		s.log.Debug("parse aborted", "err", err)
		return nil
	}
	s.log.Debug("parsed", "statements", len(statements))
	if !errorsBefore && !s.console.HadError() {
		s.cache.add(source, statements)
	}
	return statements
}
