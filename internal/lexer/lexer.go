package lexer

import (
	"iter"

	"jsfront/internal/diag"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// maxTokenLength caps a single lexeme; longer tokens are reported and the
// rest of the input is skipped.
const maxTokenLength = 1 << 20

type Lexer struct {
	file       *source.File
	cursor     Cursor
	opts       Options
	look       *token.Token   // 1 элементный буфер для токена
	hold       []token.Trivia // накопленные leading trivia
	rangeStart uint32
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// SetRange restricts lexing to [start, limit) and rewinds to start.
// Template interpolations are parsed through a lexer limited this way.
func (lx *Lexer) SetRange(start, limit uint32) {
	limit = min(limit, NewCursor(lx.file).Limit)
	start = min(start, limit)
	lx.cursor.Off = start
	lx.cursor.Limit = limit
	lx.rangeStart = start
	lx.look = nil
	lx.hold = nil
}

// Range returns the byte window the lexer is limited to.
func (lx *Lexer) Range() (start, limit uint32) {
	return lx.rangeStart, lx.cursor.Limit
}

// Reset restarts the token sequence from the beginning of the current range.
func (lx *Lexer) Reset() {
	lx.cursor.Off = lx.rangeStart
	lx.look = nil
	lx.hold = nil
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind:    token.EOF,
			Span:    lx.EmptySpan(),
			Leading: lx.hold,
		}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString()

	case ch == '`':
		tok = lx.scanTemplate()

	case ch == '#':
		tok = lx.scanPrivateName()

	case ch == '\\':
		// \uXXXX в идентификаторах не поддерживаем
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.cursor.Peek() == 'u' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadEscape, sp, "unicode escape sequences in identifiers are not supported")
		tok = token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}

	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds %d bytes", maxTokenLength)
		tok.Kind = token.Invalid
		tok.Text = ""
		// остаток файла пропускаем целиком
		lx.cursor.Off = lx.cursor.Limit
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All yields the remaining tokens lazily, EOF included.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// EmptySpan is a zero-width span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}

// Tokenize lexes the whole file. The bag receives every diagnostic; the
// returned error is the first lexical error, if any.
func Tokenize(file *source.File, maxDiagnostics int) ([]token.Token, *diag.Bag, error) {
	bag := diag.NewBag(maxDiagnostics)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}})
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for tok := range lx.All() {
		toks = append(toks, tok)
	}
	if lexErr := ErrorFromBag(bag); lexErr != nil {
		return toks, bag, lexErr
	}
	return toks, bag, nil
}
