package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

var scriptExts = []string{".js", ".mjs", ".cjs"}

// IsScript reports whether path has a script extension.
func IsScript(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range scriptExts {
		if ext == e {
			return true
		}
	}
	return false
}

// ListSources returns every script file under dir, sorted.
func ListSources(fsys afero.Fs, dir string) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && IsScript(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// loadFailure builds the bag for a file that could not be read.
func loadFailure(path string, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  fmt.Sprintf("failed to load file %s: %v", path, err),
		Primary:  source.Span{},
	})
	return bag
}

// FanOut runs work for every file with at most jobs goroutines.
// Each call owns results slot i, so no locking is needed.
func FanOut(ctx context.Context, files []string, jobs int, progress chan<- Event, work func(ctx context.Context, i int, path string) int) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	total := len(files)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(gctx, progress, Event{Path: path, Index: i, Total: total, Status: FileStarted})
			errs := work(gctx, i, path)
			status := FileDone
			if errs > 0 {
				status = FileFailed
			}
			emit(gctx, progress, Event{Path: path, Index: i, Total: total, Status: status, Errors: errs})
			return gctx.Err()
		})
	}
	return g.Wait()
}

// TokenizeDir lexes every script under dir in parallel.
// Load failures become IOLoadFileError diagnostics on that file's result.
func TokenizeDir(ctx context.Context, fsys afero.Fs, dir string, opts Options) ([]*TokenizeResult, error) {
	files, err := ListSources(fsys, dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSources
	}

	maxDiag := opts.maxDiagnostics()
	results := make([]*TokenizeResult, len(files))
	err = FanOut(ctx, files, opts.Jobs, opts.Progress, func(_ context.Context, i int, path string) int {
		fileSet := source.NewFileSetWithBase(dir)
		fileID, loadErr := fileSet.LoadFS(fsys, path)
		if loadErr != nil {
			results[i] = &TokenizeResult{Path: path, FileSet: fileSet, Bag: loadFailure(path, loadErr, maxDiag), Err: loadErr}
			return 1
		}
		results[i] = tokenizeFile(fileSet, fileSet.Get(fileID), maxDiag)
		return results[i].Bag.Count(diag.SevError)
	})
	if err != nil {
		return results, err
	}
	return results, nil
}

// ParseDir parses every script under dir in parallel. Results are in path
// order; each has its own FileSet and Builder.
func ParseDir(ctx context.Context, fsys afero.Fs, dir string, opts Options) ([]*ParseResult, error) {
	files, err := ListSources(fsys, dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSources
	}

	log := opts.logger()
	log.WithField("files", len(files)).Debug("parse dir")

	maxDiag := opts.maxDiagnostics()
	results := make([]*ParseResult, len(files))
	err = FanOut(ctx, files, opts.Jobs, opts.Progress, func(gctx context.Context, i int, path string) int {
		res, loadErr := parsePath(gctx, fsys, source.NewFileSetWithBase(dir), path, opts)
		if loadErr != nil {
			log.WithField("file", path).WithError(loadErr).Warn("load failed")
			results[i] = &ParseResult{
				Path:    path,
				FileSet: source.NewFileSetWithBase(dir),
				Bag:     loadFailure(path, loadErr, maxDiag),
				Err:     loadErr,
			}
			return 1
		}
		results[i] = res
		return res.Bag.Count(diag.SevError)
	})
	if err != nil {
		return results, err
	}
	return results, nil
}
