package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lox/interpreter-go/pkg/driver"
)

type cliResult struct {
	status int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	argv := append([]string{"lox", "--color", "never"}, args...)
	status := run(argv, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{status: status, stdout: stdout.String(), stderr: stderr.String()}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestRunScript(t *testing.T) {
	path := writeScript(t, "var a = \"hi\";\nprint a + \"!\";\n")
	for _, args := range [][]string{{path}, {"run", path}} {
		res := runCLI(t, "", args...)
		assert.Equal(t, driver.ExitOK, res.status)
		assert.Equal(t, "hi!\n", res.stdout)
		assert.Empty(t, res.stderr)
	}
}

func TestRunScriptCompileError(t *testing.T) {
	path := writeScript(t, "print 1;\nprint (;\n")
	res := runCLI(t, "", path)
	assert.Equal(t, driver.ExitDataErr, res.status)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "[line 2] Error at ';': Expect expression.\n", res.stderr)
}

func TestRunScriptRuntimeError(t *testing.T) {
	path := writeScript(t, "print \"start\";\nprint nope;\n")
	res := runCLI(t, "", path)
	assert.Equal(t, driver.ExitSoftware, res.status)
	assert.Equal(t, "start\n", res.stdout)
	assert.Equal(t, "Undefined variable 'nope'.\n[line 2]\n", res.stderr)
}

func TestRunMissingScript(t *testing.T) {
	res := runCLI(t, "", filepath.Join(t.TempDir(), "absent.lox"))
	assert.Equal(t, driver.ExitNoInput, res.status)
	assert.Contains(t, res.stderr, "absent.lox")
}

func TestTooManyArguments(t *testing.T) {
	res := runCLI(t, "", "a.lox", "b.lox")
	assert.Equal(t, driver.ExitUsage, res.status)
	assert.Equal(t, "Usage: lox [script]\n", res.stdout)
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	res := runCLI(t, "", "--no-such-flag")
	assert.Equal(t, driver.ExitUsage, res.status)
}

func TestReplFromPipe(t *testing.T) {
	input := "var x = 40;\nprint x +;\nx = x + 2;\nprint x;\nprint y;\nprint x;\n"
	res := runCLI(t, input, "repl")
	assert.Equal(t, driver.ExitOK, res.status)
	assert.Equal(t, strings.Repeat("> ", 3)+"> 42\n> > 42\n> ", res.stdout)
	assert.Equal(t, "[line 1] Error at ';': Expect expression.\nUndefined variable 'y'.\n[line 1]\n", res.stderr)

	res = runCLI(t, "print 7;\n")
	assert.Equal(t, "> 7\n> ", res.stdout, "no script argument starts the REPL")
}

func TestTokensCommand(t *testing.T) {
	path := writeScript(t, "var pi = 3.5;\nprint \"s\";")
	res := runCLI(t, "", "tokens", path)
	assert.Equal(t, driver.ExitOK, res.status)
	for _, want := range []string{"Line", "Type", "VAR", "IDENTIFIER", "pi", "3.5", "STRING", `"s"`, "EOF"} {
		assert.Contains(t, res.stdout, want)
	}

	bad := writeScript(t, "@")
	res = runCLI(t, "", "tokens", bad)
	assert.Equal(t, driver.ExitDataErr, res.status)
	assert.Equal(t, "[line 1] Error: Unexpected character.\n", res.stderr)
}

func TestAstCommand(t *testing.T) {
	path := writeScript(t, "var a = -1 * (2 + 3);\nif (a) print a; else { print nil; }\n")
	res := runCLI(t, "", "ast", path)
	assert.Equal(t, driver.ExitOK, res.status)
	assert.Equal(t, "(var a (* (- 1) (group (+ 2 3))))\n(if a (print a) (block (print nil)))\n", res.stdout)

	res = runCLI(t, "", "ast", writeScript(t, "print ;"))
	assert.Equal(t, driver.ExitDataErr, res.status)
	assert.Empty(t, res.stdout)
}

func TestMaxDepthFlag(t *testing.T) {
	path := writeScript(t, "print ((((1))));")
	res := runCLI(t, "", "--max-depth", "3", path)
	assert.Equal(t, driver.ExitDataErr, res.status)
	assert.Contains(t, res.stderr, "Too much nesting.")

	res = runCLI(t, "", "--max-depth", "0", path)
	assert.Equal(t, driver.ExitOK, res.status)
	assert.Equal(t, "1\n", res.stdout)
}

func TestConfigFileAndCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lox.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("prompt: \"lox> \"\nmax_depth: 16\n"), 0o644))

	res := runCLI(t, "print 1;\n", "--config", cfgPath, "repl")
	assert.Equal(t, "lox> 1\nlox> ", res.stdout)

	res = runCLI(t, "", "--config", cfgPath, "config")
	assert.Equal(t, driver.ExitOK, res.status)
	assert.Contains(t, res.stdout, "# Loaded from "+cfgPath)
	assert.Contains(t, res.stdout, `prompt = "lox> "`)
	assert.Contains(t, res.stdout, "max_depth = 16")
}

func TestInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "lox.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("color = \"purple\"\n"), 0o644))
	res := runCLI(t, "", "--config", cfgPath, "config")
	assert.Equal(t, driver.ExitConfig, res.status)
	assert.Contains(t, res.stderr, "color must be one of")

	res = runCLI(t, "", "--verbosity", "shouty", "config")
	assert.Equal(t, driver.ExitConfig, res.status)
}

func TestUnreadableConfigIsConfigError(t *testing.T) {
	script := writeScript(t, "print 1;")
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.toml")
	res := runCLI(t, "", "--config", missing, script)
	assert.Equal(t, driver.ExitConfig, res.status)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, missing)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("prompt = \"open\n"), 0o644))
	res = runCLI(t, "", "--config", broken, "config")
	assert.Equal(t, driver.ExitConfig, res.status)
	assert.Contains(t, res.stderr, broken)
}
