package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/inconshreveable/log15"
	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/parser"
)

// Config file names searched by FindConfig, in order of preference.
var configNames = []string{"lox.yml", "lox.yaml", "lox.toml"}

// ErrConfigNotFound is returned by FindConfig when no config file exists in
// the start directory or any of its parents.
var ErrConfigNotFound = errors.New("config file not found")

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the tunables of the command-line driver.
type Config struct {
	Prompt         string `yaml:"prompt" toml:"prompt"`
	HistoryFile    string `yaml:"history_file" toml:"history_file"`
	Color          string `yaml:"color" toml:"color"`
	Verbosity      string `yaml:"verbosity" toml:"verbosity"`
	MaxDepth       int    `yaml:"max_depth" toml:"max_depth"`
	ParseCacheSize int    `yaml:"parse_cache_size" toml:"parse_cache_size"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Prompt:         "> ",
		HistoryFile:    ".lox_history",
		Color:          ColorAuto,
		Verbosity:      "warn",
		MaxDepth:       parser.DefaultMaxDepth,
		ParseCacheSize: 128,
	}
}

// ConfigError reports a config file that could not be read, decoded or
// validated. Err holds the underlying read or decode failure; Issues lists
// validation problems.
type ConfigError struct {
	Path   string
	Issues []string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return "config: " + e.Err.Error()
	}
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Validate checks field values and returns a *ConfigError listing every
// problem found.
func (c Config) Validate() error {
	errs := ConfigError{Path: c.Path}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never (got %q)", c.Color))
	}
	if _, err := log15.LvlFromString(c.Verbosity); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("verbosity %q is not a log level", c.Verbosity))
	}
	if c.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, "max_depth must not be negative")
	}
	if c.ParseCacheSize < 0 {
		errs.Issues = append(errs.Issues, "parse_cache_size must not be negative")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// HistoryPath resolves HistoryFile against the user's home directory. An
// empty HistoryFile disables history.
func (c Config) HistoryPath() string {
	if c.HistoryFile == "" || filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}

var tomlSettings = toml.Config{
	NormFieldName: toml.DefaultConfig.NormFieldName,
	FieldToKey:    toml.DefaultConfig.FieldToKey,
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadConfig reads a YAML or TOML config file over the defaults and
// validates the result. Every failure is a *ConfigError.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, &ConfigError{Err: errors.New("empty path")}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return cfg, &ConfigError{Path: path, Err: fmt.Errorf("resolve %s: %w", path, err)}
	}
	file, err := os.Open(absPath)
	if err != nil {
		return cfg, &ConfigError{Path: absPath, Err: err}
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".yml", ".yaml":
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, &ConfigError{Path: absPath, Err: fmt.Errorf("parse %s: %w", absPath, err)}
		}
	case ".toml":
		err := tomlSettings.NewDecoder(bufio.NewReader(file)).Decode(&cfg)
		if _, ok := err.(*toml.LineError); ok {
			err = errors.New(absPath + ", " + err.Error())
		} else if err != nil {
			err = fmt.Errorf("parse %s: %w", absPath, err)
		}
		if err != nil {
			return cfg, &ConfigError{Path: absPath, Err: err}
		}
	default:
		return cfg, &ConfigError{Path: absPath, Err: fmt.Errorf("unsupported format %q", filepath.Ext(absPath))}
	}

	cfg.Path = absPath
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FindConfig walks from start up to the filesystem root looking for a
// config file and returns the first one found.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no lox config found from %s upwards: %w", origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig loads the file at path, or the nearest config above start
// when path is empty. Having no config file at all yields the defaults.
func ResolveConfig(path, start string) (Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	found, err := FindConfig(start)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfig(found)
}

// EncodeTOML renders the config in the TOML form LoadConfig accepts.
func (c Config) EncodeTOML() ([]byte, error) {
	return tomlSettings.Marshal(&c)
}
