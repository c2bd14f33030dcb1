package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/driver"
)

const cliToolVersion = "0.1.0-dev"

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML or TOML configuration file (default: nearest lox.yml, lox.yaml or lox.toml)",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level: crit, error, warn, info, debug",
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "color diagnostics: auto, always, never",
	}
	maxDepthFlag = cli.IntFlag{
		Name:  "max-depth",
		Usage: "maximum syntax nesting depth (0 disables the limit)",
	}
)

// usageError marks failures caused by how the tool was invoked.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

// cliEnv carries the process streams and the exit status chosen by whichever
// action ran.
type cliEnv struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	status int
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	env := &cliEnv{stdin: stdin, stdout: stdout, stderr: stderr, status: driver.ExitOK}
	app := newApp(env)
	if err := app.Run(args); err != nil {
		var (
			uerr    usageError
			cfgErr  *driver.ConfigError
			pathErr *fs.PathError
		)
		if errors.As(err, &uerr) {
			fmt.Fprintln(stdout, uerr.msg)
			return driver.ExitUsage
		}
		fmt.Fprintln(stderr, err)
		switch {
		case errors.As(err, &cfgErr):
			return driver.ExitConfig
		case errors.As(err, &pathErr):
			return driver.ExitNoInput
		default:
			return driver.ExitSoftware
		}
	}
	return env.status
}

func newApp(env *cliEnv) *cli.App {
	app := cli.NewApp()
	app.Name = "lox"
	app.Usage = "tree-walking interpreter for the Lox language"
	app.Version = cliToolVersion
	app.ArgsUsage = "[script]"
	app.Writer = env.stdout
	app.ErrWriter = env.stderr
	app.Flags = []cli.Flag{configFileFlag, verbosityFlag, colorFlag, maxDepthFlag}
	app.OnUsageError = func(ctx *cli.Context, err error, isSubcommand bool) error {
		return usageError{msg: err.Error()}
	}
	app.Action = env.defaultAction
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "Run a script",
			ArgsUsage: "<script>",
			Action:    env.runCommand,
		},
		{
			Name:   "repl",
			Usage:  "Start an interactive prompt",
			Action: env.replCommand,
		},
		{
			Name:      "tokens",
			Usage:     "Print the token stream of a script as a table",
			ArgsUsage: "<script>",
			Action:    env.tokensCommand,
		},
		{
			Name:      "ast",
			Usage:     "Print the syntax tree of a script",
			ArgsUsage: "<script>",
			Action:    env.astCommand,
		},
		{
			Name:   "config",
			Usage:  "Show effective configuration values as TOML",
			Action: env.configCommand,
		},
	}
	return app
}

// defaultAction runs a script when one is given and starts the REPL
// otherwise.
func (env *cliEnv) defaultAction(ctx *cli.Context) error {
	switch ctx.NArg() {
	case 0:
		return env.replCommand(ctx)
	case 1:
		return env.runCommand(ctx)
	default:
		return usageError{msg: "Usage: lox [script]"}
	}
}

func (env *cliEnv) runCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return usageError{msg: "Usage: lox run <script>"}
	}
	session, _, err := env.newSession(ctx)
	if err != nil {
		return err
	}
	if err := session.RunFile(ctx.Args().First()); err != nil {
		return err
	}
	env.status = session.ExitStatus()
	return nil
}

// loadConfig resolves the config file and applies command-line overrides.
func (env *cliEnv) loadConfig(ctx *cli.Context) (driver.Config, error) {
	cfg, err := driver.ResolveConfig(ctx.GlobalString(configFileFlag.Name), ".")
	if err != nil {
		return cfg, err
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.GlobalString(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(colorFlag.Name) {
		cfg.Color = ctx.GlobalString(colorFlag.Name)
	}
	if ctx.GlobalIsSet(maxDepthFlag.Name) {
		cfg.MaxDepth = ctx.GlobalInt(maxDepthFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (env *cliEnv) newLogger(cfg driver.Config) (log15.Logger, error) {
	return driver.NewLogger(env.stderr, cfg.Verbosity)
}

// newConsole writes diagnostics to stderr, through go-colorable when stderr is
// a real file so escape sequences work on every platform.
func (env *cliEnv) newConsole(cfg driver.Config) *driver.Console {
	w := env.stderr
	if f, ok := w.(*os.File); ok {
		w = colorable.NewColorable(f)
	}
	return driver.NewConsole(w, driver.ColorEnabled(cfg.Color, env.stderr))
}

func (env *cliEnv) newSession(ctx *cli.Context) (*driver.Session, driver.Config, error) {
	cfg, err := env.loadConfig(ctx)
	if err != nil {
		return nil, cfg, err
	}
	logger, err := env.newLogger(cfg)
	if err != nil {
		return nil, cfg, err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	session, err := driver.NewSession(cfg, env.stdout, env.newConsole(cfg), logger)
	if err != nil {
		return nil, cfg, err
	}
	return session, cfg, nil
}
