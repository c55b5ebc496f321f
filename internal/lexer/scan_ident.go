package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Token.Text, ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.emit(token.Invalid, start)
	}
	if !isIdentStartRune(r) {
		return lx.scanUnknown()
	}

	ascii := true
	if r < utf8RuneSelf {
		lx.cursor.Bump()
	} else {
		ascii = false
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		ascii = false
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
		return tok
	}
	if !ascii && !norm.NFC.IsNormalString(tok.Text) {
		lx.warnLex(diag.LexIdentNotNormalized, tok.Span, "identifier "+tok.Text+" is not in Unicode NFC form")
	}
	return tok
}

// scanPrivateName reads #name.
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unexpected character '#'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.scanIdentOrKeyword()
	return lx.emit(token.PrivateName, start)
}

func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character %q", r)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
