// Package charmlog provides an implementation of astrosched.Logger using charmbracelet/log
package charmlog

import (
	"io"
	"os"

	"github.com/benjamonnguyen/astrosched"
	"github.com/charmbracelet/log"
)

type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
}

// NewLogger falls back to INFO when Level does not parse.
func NewLogger(opts Options) astrosched.Logger {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
	})
}
