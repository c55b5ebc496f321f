package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// scanTemplate reads a whole template literal as one TemplateLit token.
// Interpolations are skipped by brace depth, stepping over nested strings,
// comments and templates; the parser re-lexes them with SetRange.
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	if lx.skipTemplate() {
		return lx.emit(token.TemplateLit, start)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedTemplate, tok.Span, "unterminated template literal")
	return tok
}

// skipTemplate expects the cursor on a backtick and reports whether the
// closing backtick was found.
func (lx *Lexer) skipTemplate() bool {
	lx.cursor.Bump() // '`'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '`':
			lx.cursor.Bump()
			return true
		case '\\':
			lx.scanEscape()
		case '$':
			lx.cursor.Bump()
			if lx.cursor.Eat('{') && !lx.skipInterpolation() {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// skipInterpolation runs after "${" up to and including the matching '}'.
func (lx *Lexer) skipInterpolation() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return true
			}
		case '\'', '"':
			lx.skipQuoted(b)
		case '`':
			if !lx.skipTemplate() {
				return false
			}
		case '/':
			switch lx.cursor.PeekAt(1) {
			case '/':
				lx.skipToLineEnd()
			case '*':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for !lx.cursor.EOF() && !lx.tryBytes('*', '/') {
					lx.cursor.Bump()
				}
			default:
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// skipQuoted steps over a string without reporting; the sub-lexer that
// re-reads the interpolation reports any problem with it.
func (lx *Lexer) skipQuoted(quote byte) {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case quote:
			lx.cursor.Bump()
			return
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case '\n':
			return
		default:
			lx.cursor.Bump()
		}
	}
}
