package processor

import (
	"context"

	"github.com/spf13/afero"

	"jsfront/internal/driver"
)

// FileOutcome is the result of one file in RunDir.
type FileOutcome struct {
	Path   string
	Result *Result
	Err    error
}

// RunDir runs every script under dir through Run with at most jobs
// workers. Outcomes are in path order. A per-file error is kept on its
// outcome; the returned error is for listing and cancellation.
func (p *Processor) RunDir(ctx context.Context, fsys afero.Fs, dir string, t LibraryType, opts map[string]string, jobs int, progress chan<- driver.Event) ([]FileOutcome, error) {
	files, err := driver.ListSources(fsys, dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, driver.ErrNoSources
	}

	out := make([]FileOutcome, len(files))
	err = driver.FanOut(ctx, files, jobs, progress, func(gctx context.Context, i int, path string) int {
		res, runErr := p.Run(gctx, t, FileScript{Fs: fsys, Path: path}, opts)
		out[i] = FileOutcome{Path: path, Result: res, Err: runErr}
		switch {
		case runErr != nil:
			return 1
		case res.Handled && !res.OK:
			return max(res.Errors, 1)
		}
		return 0
	})
	return out, err
}
