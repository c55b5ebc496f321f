package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jsfront/internal/ast"
	"jsfront/internal/source"
)

type treeStyles struct {
	kind   lipgloss.Style
	name   lipgloss.Style
	value  lipgloss.Style
	detail lipgloss.Style
	guide  lipgloss.Style
}

func newTreeStyles() treeStyles {
	return treeStyles{
		kind:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		name:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		detail: lipgloss.NewStyle().Faint(true),
		guide:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

type treePrinter struct {
	w      io.Writer
	fs     *source.FileSet
	opts   TreeOpts
	styles treeStyles
	file   source.FileID
}

func (tp *treePrinter) style(s lipgloss.Style, text string) string {
	if !tp.opts.Color || text == "" {
		return text
	}
	return s.Render(text)
}

// FormatASTTree prints the AST of fileID as an indented tree:
//
//	Program main.js
//	├─ VariableDeclaration let
//	│  └─ VariableDeclarator t
//	│     └─ Literal 0 (number)
func FormatASTTree(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet, opts TreeOpts) error {
	root, err := BuildASTOutput(builder, fileID)
	if err != nil {
		return err
	}
	tp := &treePrinter{w: w, fs: fs, opts: opts, styles: newTreeStyles()}
	if file := builder.Files.Get(fileID); file != nil {
		tp.file = file.Span.File
		if fs != nil {
			if sf := fs.Get(file.Span.File); sf != nil {
				root.Name = sf.FormatPath("auto", "")
			}
		}
	}
	if _, err := fmt.Fprintln(w, tp.label(&root)); err != nil {
		return err
	}
	return tp.children(root.Children, "")
}

func (tp *treePrinter) children(nodes []ASTNodeOutput, prefix string) error {
	for i := range nodes {
		last := i == len(nodes)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(tp.w, "%s%s\n", tp.style(tp.styles.guide, prefix+branch), tp.label(&nodes[i])); err != nil {
			return err
		}
		if err := tp.children(nodes[i].Children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func (tp *treePrinter) label(n *ASTNodeOutput) string {
	parts := []string{tp.style(tp.styles.kind, n.Type)}
	if n.Name != "" {
		parts = append(parts, tp.style(tp.styles.name, n.Name))
	}
	if n.Value != "" {
		parts = append(parts, tp.style(tp.styles.value, oneLine(n.Value)))
	}
	if n.Detail != "" {
		parts = append(parts, tp.style(tp.styles.detail, "("+n.Detail+")"))
	}
	if tp.opts.Spans {
		sp := source.Span{File: tp.file, Start: n.Span.Start, End: n.Span.End}
		parts = append(parts, tp.style(tp.styles.detail, "@"+formatSpan(sp, tp.fs)))
	}
	return strings.Join(parts, " ")
}

// oneLine keeps multi-line template chunks on one tree row.
func oneLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return fmt.Sprintf("%q", s)
}
