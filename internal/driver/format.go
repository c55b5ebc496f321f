package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"

	"jsfront/internal/lexer"
	"jsfront/internal/printer"
	"jsfront/internal/token"
)

// ErrCommentsPresent is returned for files that would lose comments when
// rewritten; the printer does not carry comments through.
var ErrCommentsPresent = errors.New("format: file has comments that would be dropped")

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check  bool
	Stdout bool
	Print  printer.Options
	Parse  Options
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths formats provided files or directories (recursively collecting scripts).
// When opts.Check is true, files are not modified; Changed indicates whether formatting
// would update the file contents. When opts.Stdout is true, formatted content is returned
// in the results without touching files on disk.
func FormatPaths(ctx context.Context, fsys afero.Fs, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(fsys, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := FormatResult{Path: path}
		formatted, changed, commented, err := formatSingleFile(ctx, fsys, path, opts)
		switch {
		case err != nil:
			result.Err = err
		case opts.Check:
			result.Changed = changed
		case opts.Stdout:
			result.Formatted = formatted
			result.Changed = changed
		case changed && commented:
			result.Err = ErrCommentsPresent
		case changed:
			mode := os.FileMode(0o644)
			if info, statErr := fsys.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := afero.WriteFile(fsys, path, formatted, mode.Perm()); err != nil {
				result.Err = err
			} else {
				result.Changed = true
			}
		}
		results = append(results, result)
	}

	return results, nil
}

func formatSingleFile(ctx context.Context, fsys afero.Fs, path string, opts FormatOptions) (formatted []byte, changed, commented bool, err error) {
	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, false, false, err
	}

	res := ParseSourceContext(ctx, path, src, opts.Parse)
	if res.Err != nil {
		return nil, false, false, fmt.Errorf("format: %w", res.Err)
	}
	if res.Bag.HasErrors() {
		return nil, false, false, errors.New("format: parse errors present")
	}

	formatted, err = printer.Print(res.Builder, res.FileID, opts.Print)
	if err != nil {
		return nil, false, false, err
	}
	changed = !bytes.Equal(res.File.Content, formatted)
	if changed {
		commented = hasComments(res)
	}
	return formatted, changed, commented, nil
}

func hasComments(res *ParseResult) bool {
	toks, _, err := lexer.Tokenize(res.File, 1)
	if err != nil {
		return true
	}
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			switch tr.Kind {
			case token.TriviaLineComment, token.TriviaBlockComment, token.TriviaHashbang:
				return true
			}
		}
	}
	return false
}

func collectSourceFiles(fsys afero.Fs, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		info, err := fsys.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if IsScript(p) {
				addFile(p)
			}
			continue
		}
		found, err := ListSources(fsys, p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			addFile(f)
		}
	}

	sort.Strings(files)
	return files, nil
}
