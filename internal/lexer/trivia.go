package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - пробелы, табы и юникодные пробелы коалесцируются в один TriviaSpace
// - последовательные переводы строк коалесцируются в один TriviaNewline
// - //... до конца строки -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (без вложенности)
// - #! в самом начале файла -> TriviaHashbang
func (lx *Lexer) collectLeadingTrivia() {
	if lx.cursor.Off == 0 && lx.tryBytes('#', '!') {
		lx.cursor.Reset(0)
		lx.pushTrivia(token.TriviaHashbang, 0, lx.skipToLineEnd)
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		r, _ := lx.peekRune()

		switch {
		case r == ' ' || r == '\t' || r == '\v' || r == '\f' || isSpaceRune(r):
			lx.pushTrivia(token.TriviaSpace, start, func() {
				for {
					r2, sz := lx.peekRune()
					if sz == 0 || !(r2 == ' ' || r2 == '\t' || r2 == '\v' || r2 == '\f' || isSpaceRune(r2)) {
						return
					}
					lx.bumpRune()
				}
			})
			continue

		case isLineTerminatorRune(r):
			lx.pushTrivia(token.TriviaNewline, start, func() {
				for {
					r2, sz := lx.peekRune()
					if sz == 0 || !isLineTerminatorRune(r2) {
						return
					}
					lx.bumpRune()
				}
			})
			continue

		case r == '/':
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		// нет больше trivia
		return
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark, consume func()) {
	consume()
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) skipToLineEnd() {
	for {
		r, sz := lx.peekRune()
		if sz == 0 || isLineTerminatorRune(r) {
			return
		}
		lx.bumpRune()
	}
}

// //... и /*...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		lx.pushTrivia(token.TriviaLineComment, start, lx.skipToLineEnd)
		return true

	case '*':
		closed := false
		lx.pushTrivia(token.TriviaBlockComment, start, func() {
			lx.cursor.Bump()
			lx.cursor.Bump()
			for !lx.cursor.EOF() {
				if lx.tryBytes('*', '/') {
					closed = true
					return
				}
				lx.cursor.Bump()
			}
		})
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		return true

	default:
		// это не комментарий, пусть сканируется как оператор '/'
		return false
	}
}
