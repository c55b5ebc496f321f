package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// scanString читает '...' или "...". Escape-последовательности проверяются,
// но не декодируются: Token.Text хранит исходный срез вместе с кавычками.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case b == '\\':
			lx.scanEscape()
		case b == '\n' || b == '\r':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		default:
			// U+2028/U+2029 допустимы внутри строк
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanEscape consumes a backslash sequence and reports malformed \x and \u forms.
func (lx *Lexer) scanEscape() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	if lx.cursor.EOF() {
		return
	}
	switch lx.cursor.Peek() {
	case 'x':
		lx.cursor.Bump()
		if !lx.eatHexDigits(2) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid hexadecimal escape sequence")
		}
	case 'u':
		lx.cursor.Bump()
		if lx.cursor.Eat('{') {
			n := 0
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
				n++
			}
			if n == 0 || !lx.cursor.Eat('}') {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid unicode escape sequence")
			}
			return
		}
		if !lx.eatHexDigits(4) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid unicode escape sequence")
		}
	default:
		// продолжение строки, \n, \t, \', legacy octal и т.п.
		lx.bumpRune()
	}
}

func (lx *Lexer) eatHexDigits(n int) bool {
	for range n {
		if !isHex(lx.cursor.Peek()) {
			return false
		}
		lx.cursor.Bump()
	}
	return true
}
