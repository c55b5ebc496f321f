package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/observ"
	"jsfront/internal/parser"
	"jsfront/internal/source"
)

type ParseResult struct {
	Path     string
	FileSet  *source.FileSet
	File     *source.File
	Builder  *ast.Builder
	FileID   ast.FileID
	Bag      *diag.Bag
	Features []parser.FeatureUse
	// Err is a *lexer.LexError, a *parser.SyntaxError, a context error,
	// or nil for a clean parse.
	Err error
	// Timing is set when Options.Timings is on.
	Timing *observ.Report
}

// Parse loads path from fsys and parses it. The returned error is only for
// I/O failures; parse failures are reported through ParseResult.Err and Bag.
func Parse(fsys afero.Fs, path string, opts Options) (*ParseResult, error) {
	return parsePath(context.Background(), fsys, source.NewFileSet(), path, opts)
}

// ParseSource parses src as a file named name without touching a file system.
func ParseSource(name string, src []byte, opts Options) *ParseResult {
	return ParseSourceContext(context.Background(), name, src, opts)
}

// ParseSourceContext is ParseSource with cancellation between statements.
func ParseSourceContext(ctx context.Context, name string, src []byte, opts Options) *ParseResult {
	fileSet := source.NewFileSet()
	timer := newTimer(opts)
	fileID := fileSet.AddNormalized(name, src)
	return parseFile(ctx, fileSet, fileSet.Get(fileID), opts, timer)
}

func parsePath(ctx context.Context, fsys afero.Fs, fileSet *source.FileSet, path string, opts Options) (*ParseResult, error) {
	timer := newTimer(opts)
	idx := timer.Begin("load")
	fileID, err := fileSet.LoadFS(fsys, path)
	timer.End(idx, "")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(ctx, fileSet, fileSet.Get(fileID), opts, timer), nil
}

func newTimer(opts Options) *observ.Timer {
	if !opts.Timings {
		return nil
	}
	return observ.NewTimer()
}

func parseFile(ctx context.Context, fileSet *source.FileSet, file *source.File, opts Options, timer *observ.Timer) *ParseResult {
	log := opts.logger().WithField("file", file.Path)
	key := cacheKey{
		path:     file.Path,
		content:  ContentDigest(file.Content),
		language: opts.Language,
		maxDiag:  opts.maxDiagnostics(),
	}
	if res, ok := opts.Cache.get(key); ok {
		log.Debug("parse cache hit")
		return res
	}

	idx := timer.Begin("parse")
	builder := ast.NewBuilder(hintsFor(file), nil)
	pres, err := parser.Parse(ctx, fileSet, file, builder, parser.Options{
		Language:       opts.Language,
		MaxDiagnostics: opts.maxDiagnostics(),
	})
	timer.End(idx, fmt.Sprintf("%d statements", len(builder.Files.Get(pres.File).Body)))

	res := &ParseResult{
		Path:     file.Path,
		FileSet:  fileSet,
		File:     file,
		Builder:  builder,
		FileID:   pres.File,
		Bag:      pres.Bag,
		Features: pres.Features,
		Err:      err,
	}
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}

	log.WithFields(logrus.Fields{
		"errors":   pres.Bag.Count(diag.SevError),
		"warnings": pres.Bag.Count(diag.SevWarning),
		"features": len(pres.Features),
	}).Debug("parsed")

	// не кэшируем прерванный разбор
	if ctx.Err() == nil {
		opts.Cache.put(key, res)
	}
	return res
}

// hintsFor sizes the arenas from the file length.
func hintsFor(file *source.File) ast.Hints {
	n, err := safecast.Conv[uint](len(file.Content))
	if err != nil {
		return ast.Hints{}
	}
	return ast.Hints{Files: 1, Stmts: n/32 + 16, Exprs: n/8 + 64}
}
