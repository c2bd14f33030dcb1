package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
)

// compileSource scans and parses src, failing the test on any diagnostic.
func compileSource(t *testing.T, src string) []ast.Statement {
	t.Helper()
	diags := &diagnostics.Collector{}
	statements, err := parser.Parse(lexer.Scan(src, diags), diags)
	if err != nil {
		t.Fatalf("parse aborted: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", diags)
	}
	return statements
}

// runSource executes src in a fresh interpreter and returns its printed lines.
func runSource(t *testing.T, src string) ([]string, error) {
	t.Helper()
	interp, out := newCapturing()
	err := interp.Interpret(compileSource(t, src))
	return outputLines(out), err
}

func newCapturing() (*Interpreter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(WithOutput(out)), out
}

func outputLines(buf *bytes.Buffer) []string {
	text := strings.TrimSuffix(buf.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
