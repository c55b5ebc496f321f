package lexer

import (
	"fmt"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

// LexError is a malformed token surfaced to callers.
type LexError struct {
	Code    diag.Code
	Span    source.Span
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Span, e.Message)
}

// IsLexCode reports whether c belongs to the lexical range.
func IsLexCode(c diag.Code) bool {
	return c >= diag.LexInfo && c < diag.SynInfo
}

// ErrorFromBag returns the first lexical error in bag, or nil.
func ErrorFromBag(bag *diag.Bag) *LexError {
	if bag == nil {
		return nil
	}
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError && IsLexCode(d.Code) {
			return &LexError{Code: d.Code, Span: d.Primary, Message: d.Message}
		}
	}
	return nil
}
