package diagnostics

import (
	"fmt"
	"strings"
)

// Stage identifies which pipeline phase produced a diagnostic.
type Stage string

const (
	StageScanner Stage = "scanner"
	StageParser  Stage = "parser"
)

// Diagnostic is a compile-time (lexical or syntax) error.
type Diagnostic struct {
	Stage   Stage
	Line    int
	Where   string
	Message string
}

// String renders the diagnostic as "[line <n>] Error<where>: <message>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Reporter receives compile-time diagnostics as they are discovered.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// FormatRuntime renders an uncaught runtime error as "<message>\n[line <n>]".
func FormatRuntime(message string, line int) string {
	return fmt.Sprintf("%s\n[line %d]", message, line)
}

// Collector records diagnostics in order. The zero value is ready to use.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors reports whether anything was collected.
func (c *Collector) HasErrors() bool {
	return len(c.Diagnostics) > 0
}

// Messages returns the rendered form of each collected diagnostic.
func (c *Collector) Messages() []string {
	out := make([]string, 0, len(c.Diagnostics))
	for _, d := range c.Diagnostics {
		out = append(out, d.String())
	}
	return out
}

// Reset forgets everything collected so far.
func (c *Collector) Reset() {
	c.Diagnostics = nil
}

func (c *Collector) String() string {
	return strings.Join(c.Messages(), "\n")
}
