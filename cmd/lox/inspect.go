package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
)

// readScript loads the single script argument of an inspection command.
func (env *cliEnv) readScript(ctx *cli.Context, usage string) (string, driver.Config, *driver.Console, error) {
	if ctx.NArg() != 1 {
		return "", driver.Config{}, nil, usageError{msg: usage}
	}
	cfg, err := env.loadConfig(ctx)
	if err != nil {
		return "", cfg, nil, err
	}
	data, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return "", cfg, nil, err
	}
	return string(data), cfg, env.newConsole(cfg), nil
}

func (env *cliEnv) tokensCommand(ctx *cli.Context) error {
	source, _, console, err := env.readScript(ctx, "Usage: lox tokens <script>")
	if err != nil {
		return err
	}
	tokens := lexer.Scan(source, console)

	table := tablewriter.NewWriter(env.stdout)
	table.SetHeader([]string{"Line", "Type", "Lexeme", "Literal"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	for _, tok := range tokens {
		table.Append([]string{strconv.Itoa(tok.Line), string(tok.Type), tok.Lexeme, literalText(tok.Literal)})
	}
	table.Render()

	if console.HadError() {
		env.status = driver.ExitDataErr
	}
	return nil
}

func (env *cliEnv) astCommand(ctx *cli.Context) error {
	source, cfg, console, err := env.readScript(ctx, "Usage: lox ast <script>")
	if err != nil {
		return err
	}
	statements, err := parser.Parse(lexer.Scan(source, console), console, parser.WithMaxDepth(cfg.MaxDepth))
	if err != nil || console.HadError() {
		env.status = driver.ExitDataErr
		return nil
	}
	if len(statements) > 0 {
		fmt.Fprintln(env.stdout, ast.PrintProgram(statements))
	}
	return nil
}

func (env *cliEnv) configCommand(ctx *cli.Context) error {
	cfg, err := env.loadConfig(ctx)
	if err != nil {
		return err
	}
	out, err := cfg.EncodeTOML()
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		fmt.Fprintf(env.stdout, "# Loaded from %s\n\n", cfg.Path)
	}
	_, err = env.stdout.Write(out)
	return err
}

func literalText(literal any) string {
	switch v := literal.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}
