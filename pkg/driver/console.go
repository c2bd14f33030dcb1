package driver

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"lox/interpreter-go/pkg/diagnostics"
	"lox/interpreter-go/pkg/interpreter"
)

// Console is the error sink of a session. It renders diagnostics and
// runtime errors to its writer and latches whether either occurred.
type Console struct {
	w               io.Writer
	colorize        bool
	compileColor    *color.Color
	runtimeColor    *color.Color
	hadError        bool
	hadRuntimeError bool
}

// NewConsole writes to w, coloring messages when colorize is set.
func NewConsole(w io.Writer, colorize bool) *Console {
	c := &Console{
		w:            w,
		colorize:     colorize,
		compileColor: color.New(color.FgRed, color.Bold),
		runtimeColor: color.New(color.FgMagenta),
	}
	if colorize {
		c.compileColor.EnableColor()
		c.runtimeColor.EnableColor()
	}
	return c
}

// Report renders a compile-time diagnostic and sets the error flag.
func (c *Console) Report(d diagnostics.Diagnostic) {
	c.hadError = true
	c.writeLine(c.compileColor, d.String())
}

// RuntimeError renders an uncaught runtime error and sets the runtime flag.
func (c *Console) RuntimeError(err *interpreter.RuntimeError) {
	c.hadRuntimeError = true
	c.writeLine(c.runtimeColor, diagnostics.FormatRuntime(err.Message, err.Line()))
}

func (c *Console) writeLine(paint *color.Color, text string) {
	if c.colorize {
		text = paint.Sprint(text)
	}
	fmt.Fprintln(c.w, text)
}

func (c *Console) HadError() bool        { return c.hadError }
func (c *Console) HadRuntimeError() bool { return c.hadRuntimeError }

// ResetError clears the compile-error flag only; the REPL calls it between
// lines.
func (c *Console) ResetError() {
	c.hadError = false
}

// ColorEnabled resolves a color mode for w; auto means color only on a
// terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}
