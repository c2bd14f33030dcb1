package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
)

// NewLogger returns a logger writing records at or above level to w.
// Terminals get the colored terminal format, anything else logfmt.
func NewLogger(w io.Writer, level string) (log15.Logger, error) {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	format := log15.LogfmtFormat()
	if isTerminal(w) {
		format = log15.TerminalFormat()
	}
	logger := log15.New()
	logger.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, format)))
	return logger, nil
}

// DiscardLogger drops every record.
func DiscardLogger() log15.Logger {
	logger := log15.New()
	logger.SetHandler(log15.DiscardHandler())
	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
