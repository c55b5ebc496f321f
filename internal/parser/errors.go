package parser

import (
	"fmt"
	"strings"

	"jsfront/internal/diag"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// SyntaxError is a token sequence that violates the grammar.
type SyntaxError struct {
	Code     diag.Code
	Found    token.Token
	Expected []string
	Span     source.Span
	Message  string
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %s: %s", e.Code.ID(), e.Span, e.Message)
	if len(e.Expected) > 0 {
		sb.WriteString(" (expected ")
		sb.WriteString(strings.Join(e.Expected, " or "))
		sb.WriteString(")")
	}
	return sb.String()
}

// describe renders a token for messages: `'foo'`, `end of input`.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.StringLit, token.TemplateLit:
		return "string literal"
	case token.NumberLit, token.BigIntLit:
		return "number " + tok.Text
	case token.Invalid:
		if tok.Text == "" {
			return "invalid token"
		}
	}
	return "'" + tok.Text + "'"
}

func quote(k token.Kind) string {
	return "'" + k.String() + "'"
}
