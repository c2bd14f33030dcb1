package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/driver"
)

// lineReader yields REPL input one line at a time; io.EOF ends the session.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// scanReader serves non-interactive input such as pipes.
type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newScanReader(in io.Reader, out io.Writer) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *scanReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scanReader) Close() error { return nil }

// linerReader provides line editing and history on a terminal.
type linerReader struct {
	state   *liner.State
	history string
}

func newLinerReader(history string) *linerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	r := &linerReader{state: state, history: history}
	if history != "" {
		if f, err := os.Open(history); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

func (r *linerReader) Close() error {
	if r.history != "" {
		if f, err := os.Create(r.history); err == nil {
			r.state.WriteHistory(f)
			f.Close()
		}
	}
	return r.state.Close()
}

func (env *cliEnv) newLineReader(cfg driver.Config) lineReader {
	if in, ok := env.stdin.(*os.File); ok && env.stdin == os.Stdin && isatty.IsTerminal(in.Fd()) {
		return newLinerReader(cfg.HistoryPath())
	}
	return newScanReader(env.stdin, env.stdout)
}

func (env *cliEnv) replCommand(ctx *cli.Context) error {
	session, cfg, err := env.newSession(ctx)
	if err != nil {
		return err
	}
	reader := env.newLineReader(cfg)
	defer reader.Close()
	return repl(session, reader, cfg.Prompt)
}

// repl feeds lines to the session until input ends. Errors in one line never
// end the loop.
func repl(session *driver.Session, reader lineReader, prompt string) error {
	for {
		line, err := reader.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if err := session.RunLine(line); err != nil {
			return err
		}
	}
}
