package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"jsfront/internal/source"
	"jsfront/internal/token"
)

type TokenOutput struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Start   uint32   `json:"start"`
	End     uint32   `json:"end"`
	Line    uint32   `json:"line,omitempty"`
	Col     uint32   `json:"col,omitempty"`
	Newline bool     `json:"newline_before,omitempty"`
	Leading []string `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, len(tok.Leading))
	for i, tr := range tok.Leading {
		out[i] = tr.Kind.String()
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате, до EOF включительно.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		line := fmt.Sprintf("%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := leadingKinds(tok); len(leading) > 0 {
			line += fmt.Sprintf(" (leading: %s)", strings.Join(leading, ", "))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате; fs may be nil, then
// line/col are omitted.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Newline: tok.NewlineBefore(),
			Leading: leadingKinds(tok),
		}
		if fs != nil {
			pos, _ := fs.Resolve(tok.Span)
			out.Line, out.Col = pos.Line, pos.Col
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
