package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// RescanRegExp re-reads a `/` or `/=` token as a regular expression literal.
// The parser calls it when a slash appears where an expression starts; the
// lexer alone cannot tell division from a regexp.
func (lx *Lexer) RescanRegExp(tok token.Token) token.Token {
	if tok.Kind != token.Slash && tok.Kind != token.SlashAssign {
		return tok
	}
	lx.look = nil
	lx.hold = nil
	lx.cursor.Off = tok.Span.Start

	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	for {
		r, sz := lx.peekRune()
		if sz == 0 || isLineTerminatorRune(r) {
			out := lx.emit(token.Invalid, start)
			out.Leading = tok.Leading
			lx.errLex(diag.LexUnterminatedRegExp, out.Span, "unterminated regular expression literal")
			return out
		}
		switch {
		case r == '\\':
			lx.cursor.Bump()
			if r2, _ := lx.peekRune(); !isLineTerminatorRune(r2) {
				lx.bumpRune()
			}
			continue
		case r == '[':
			inClass = true
		case r == ']':
			inClass = false
		case r == '/' && !inClass:
			lx.cursor.Bump()
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			out := lx.emit(token.RegExpLit, start)
			out.Leading = tok.Leading
			return out
		}
		lx.bumpRune()
	}
}
