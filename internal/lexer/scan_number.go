package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// Поддержка: 0, 123, .5, 1., 1e-3, 0b..., 0o..., 0x..., разделители '_' и BigInt-суффикс n.
// Неверные формы, репорт, токен получает Kind Invalid, но лексинг продолжается.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.NumberLit
	bad := ""

	fraction := false
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			bad = lx.scanRadixDigits(isHex)
			goto suffix
		case 'o', 'O':
			bad = lx.scanRadixDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			goto suffix
		case 'b', 'B':
			bad = lx.scanRadixDigits(func(b byte) bool { return b == '0' || b == '1' })
			goto suffix
		}
	}

	// целая часть (может отсутствовать для ".5")
	if lx.cursor.Peek() != '.' {
		bad = lx.scanDigits(isDec)
	}
	if lx.cursor.Peek() == '.' {
		fraction = true
		lx.cursor.Bump()
		if isDec(lx.cursor.Peek()) {
			if msg := lx.scanDigits(isDec); bad == "" {
				bad = msg
			}
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		fraction = true
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			if bad == "" {
				bad = "missing exponent digits"
			}
		} else if msg := lx.scanDigits(isDec); bad == "" {
			bad = msg
		}
	}

suffix:
	if lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		kind = token.BigIntLit
		if fraction && bad == "" {
			bad = "BigInt literal cannot have a fraction or exponent"
		}
	}

	// 3in, 1abc, идентификатор вплотную к числу
	if r, sz := lx.peekRune(); sz > 0 && isIdentStartRune(r) {
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
		if bad == "" {
			bad = "identifier starts immediately after numeric literal"
		}
	}

	tok := lx.emit(kind, start)
	if bad != "" {
		lx.errLex(diag.LexBadNumber, tok.Span, "invalid number %q: %s", tok.Text, bad)
		tok.Kind = token.Invalid
	}
	return tok
}

// scanRadixDigits consumes the 0x/0o/0b prefix and its digits.
func (lx *Lexer) scanRadixDigits(isDigit func(byte) bool) string {
	lx.cursor.Bump() // '0'
	lx.cursor.Bump() // x/o/b
	if !isDigit(lx.cursor.Peek()) {
		// съедаем мусорные цифры, чтобы не развалить следующий токен
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		return "missing digits after radix prefix"
	}
	msg := lx.scanDigits(isDigit)
	if msg == "" && isDec(lx.cursor.Peek()) {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		msg = "digit out of range for radix"
	}
	return msg
}

// scanDigits reads digits with '_' separators placed only between digits.
func (lx *Lexer) scanDigits(isDigit func(byte) bool) string {
	msg := ""
	prevSep := false
	first := true
	for {
		b := lx.cursor.Peek()
		switch {
		case isDigit(b):
			prevSep = false
		case b == '_':
			if (first || prevSep) && msg == "" {
				msg = "misplaced numeric separator"
			}
			prevSep = true
		default:
			if prevSep && msg == "" {
				msg = "numeric separator at end of digits"
			}
			return msg
		}
		first = false
		lx.cursor.Bump()
	}
}
