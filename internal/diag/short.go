package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"jsfront/internal/source"
)

type shortLine struct {
	sev, code, path string
	line, col       uint32
	msg             string
}

// FormatShortDiagnostics renders one "sev CODE path:line:col message" line
// per diagnostic, ordered by position. Notes become "note" lines when
// includeNotes is set. Spans in files unknown to fs are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	add := func(sev string, code Code, sp source.Span, msg string) {
		file := fs.Get(sp.File)
		if file == nil {
			return
		}
		pos, _ := fs.Resolve(sp)
		path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
		lines = append(lines, shortLine{
			sev:  sev,
			code: code.ID(),
			path: strings.TrimPrefix(path, "./"),
			line: pos.Line,
			col:  pos.Col,
			msg:  strings.Join(strings.Fields(msg), " "),
		})
	}
	for _, d := range diags {
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			strings.Compare(a.sev, b.sev),
			strings.Compare(a.code, b.code),
			strings.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
	}
	return strings.Join(out, "\n")
}
