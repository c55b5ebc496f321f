package printer

import (
	"context"
	"errors"
	"fmt"

	"jsfront/internal/ast"
	"jsfront/internal/parser"
	"jsfront/internal/source"
)

type Mode uint8

const (
	// Pretty prints one statement per line with indentation.
	Pretty Mode = iota
	// Compact drops all optional whitespace.
	Compact
)

func (m Mode) String() string {
	if m == Compact {
		return "compact"
	}
	return "pretty"
}

// ParseMode accepts "pretty" and "compact".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "pretty", "PRETTY_PRINT", "":
		return Pretty, nil
	case "compact":
		return Compact, nil
	}
	return Pretty, fmt.Errorf("unknown print mode %q", s)
}

type Options struct {
	Mode        Mode
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

// ErrIncompleteTree is returned when the tree has holes left by a failed parse.
var ErrIncompleteTree = errors.New("printer: incomplete syntax tree")

type printer struct {
	builder *ast.Builder
	file    *ast.File
	writer  *Writer
	missing int
}

// Print renders the given file of b as JavaScript source.
func Print(b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if b == nil {
		return nil, errors.New("printer: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("printer: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("printer: missing ast file")
	}

	pr := printer{
		builder: b,
		file:    file,
		writer:  NewWriter(opt, int(file.Span.Len())),
	}
	pr.printFile()
	if pr.missing > 0 {
		return pr.writer.Bytes(), fmt.Errorf("%w: %d missing nodes", ErrIncompleteTree, pr.missing)
	}
	return pr.writer.Bytes(), nil
}

func (p *printer) printFile() {
	for _, id := range p.file.Body {
		p.printStmt(id)
		p.writer.Newline()
	}
}

func (p *printer) name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return p.builder.Name(id)
}

// CheckRoundTrip prints the file, re-parses the output and prints it again.
// The two printed texts must match and the top-level statement kinds must
// stay the same.
func CheckRoundTrip(ctx context.Context, b *ast.Builder, fid ast.FileID, opt Options) (ok bool, msg string) {
	first, err := Print(b, fid, opt)
	if err != nil {
		return false, "print-check: printer failed: " + err.Error()
	}

	fs := source.NewFileSetWithBase("")
	file := fs.Get(fs.AddVirtual("roundtrip.js", first))
	rebuilt := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.Parse(ctx, fs, file, rebuilt, parser.Options{})
	if err != nil {
		return false, "print-check: reparse failed: " + err.Error()
	}

	if !sameTopStmtKinds(b, fid, rebuilt, res.File) {
		return false, "print-check: top-level statement kinds differ after round-trip"
	}
	second, err := Print(rebuilt, res.File, opt)
	if err != nil {
		return false, "print-check: second print failed: " + err.Error()
	}
	if string(first) != string(second) {
		return false, "print-check: output is not stable"
	}
	return true, ""
}

func sameTopStmtKinds(a *ast.Builder, af ast.FileID, b *ast.Builder, bf ast.FileID) bool {
	left, right := a.Files.Get(af).Body, b.Files.Get(bf).Body
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if a.Stmts.Get(left[i]).Kind != b.Stmts.Get(right[i]).Kind {
			return false
		}
	}
	return true
}
