package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = 0x80

const (
	zwnj = '\u200C'
	zwj  = '\u200D'
	lsep = '\u2028'
	psep = '\u2029'
	bom  = '\uFEFF'
	nbsp = '\u00A0'
)

// ===== Работа с рунами поверх Cursor =====

func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// ===== Классификаторы =====

// ASCII fast-path для идентификаторов; Unicode, через isIdentStartRune/Continue.
func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
func isIdentStartRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentStartByte(byte(r))
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}
func isIdentContinueRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	return r == zwnj || r == zwj ||
		unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

// isSpaceRune covers JS WhiteSpace outside ASCII.
func isSpaceRune(r rune) bool {
	return r == bom || r == ' ' || unicode.Is(unicode.Zs, r)
}

func isLineTerminatorRune(r rune) bool {
	return r == '\n' || r == '\r' || r == lsep || r == psep
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// ===== Матчеры последовательностей операторов (жадность) =====

func (lx *Lexer) tryBytes(seq ...byte) bool {
	rest := lx.cursor.Rest()
	if len(rest) < len(seq) {
		return false
	}
	for i, b := range seq {
		if rest[i] != b {
			return false
		}
	}
	lx.cursor.Off += uint32(len(seq)) //nolint:gosec // seq is at most 4 bytes
	return true
}
