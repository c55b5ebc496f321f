package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	path   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
	added  *color.Color
	remove *color.Color
}

func paint(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func newPalette(enabled bool) palette {
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   paint(enabled, color.FgRed, color.Bold),
			diag.SevWarning: paint(enabled, color.FgYellow, color.Bold),
			diag.SevInfo:    paint(enabled, color.FgCyan, color.Bold),
		},
		path:   paint(enabled, color.Bold),
		gutter: paint(enabled, color.FgBlue),
		caret:  paint(enabled, color.FgGreen, color.Bold),
		note:   paint(enabled, color.FgCyan),
		added:  paint(enabled, color.FgGreen),
		remove: paint(enabled, color.FgRed),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", formatPath(file, fs, opts.PathMode), start.Line, start.Col),
		pal.sev[d.Severity].Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)
	if file != nil {
		writeSnippet(w, fs, file, d.Primary, int(opts.Context), opts.Width, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"),
				formatPath(nf, fs, opts.PathMode)+fmt.Sprintf(":%d:%d", pos.Line, pos.Col), n.Msg)
			if nf != nil {
				writeSnippet(w, fs, nf, n.Span, 0, opts.Width, pal)
			}
		}
	}

	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("fix:"), fix.Title)
			for _, edit := range fix.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, line := range preview.before {
					fmt.Fprintf(w, "    %s\n", pal.remove.Sprint("- "+line))
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "    %s\n", pal.added.Sprint("+ "+line))
				}
			}
		}
	}
}

// writeSnippet prints context lines, the line holding span and a caret
// underline aligned by display width.
func writeSnippet(w io.Writer, fs *source.FileSet, file *source.File, span source.Span, context int, width uint8, pal palette) {
	start, end := fs.Resolve(span)
	first := max(int(start.Line)-context, 1)
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= int(start.Line); ln++ {
		text := file.GetLine(uint32(ln)) //nolint:gosec // ln >= 1 and bounded by start.Line
		if width > 0 {
			text = runewidth.Truncate(text, int(width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := file.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	stop = max(stop, col)

	var pad strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	underline := "^" + strings.Repeat("~", max(runewidth.StringWidth(line[col:stop])-1, 0))
	if width > 0 && runewidth.StringWidth(pad.String()) >= int(width) {
		return
	}
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), pad.String(), pal.caret.Sprint(underline))
}
