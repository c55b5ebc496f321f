// Package driver runs the lexer and parser over files and directories.
//
// Every file gets an independent pipeline: its own FileSet, Builder,
// Interner and Bag. Directory runs fan out over an errgroup and return
// results in path order.
package driver

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"jsfront/internal/parser"
)

// ErrNoSources is returned by directory runs that find no script files.
var ErrNoSources = errors.New("no .js, .mjs or .cjs files found")

const defaultMaxDiagnostics = 256

// Options configures Parse, ParseSource and ParseDir.
type Options struct {
	Language       parser.Language
	MaxDiagnostics int
	// Jobs bounds directory fan-out; 0 means GOMAXPROCS.
	Jobs int
	// Cache is optional. Cached results are shared and must not be mutated.
	Cache *Cache
	// Progress receives one Event per file state change when non-nil.
	// The caller must drain it until the run returns.
	Progress chan<- Event
	// Timings records per-file phase durations in ParseResult.Timing.
	Timings bool
	Log     logrus.FieldLogger
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) logger() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
