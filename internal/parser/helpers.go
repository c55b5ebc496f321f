package parser

import (
	"fmt"
	"slices"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the next token if it has kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// spanFrom covers everything from start to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// diagSpan: лучший span для диагностики: на EOF указываем сразу за
// последним съеденным токеном.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен; иначе ошибка с ожидаемой альтернативой.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errExpected(code, msg, quote(k))
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// expectClose reports a missing closing delimiter with a note at the opener.
func (p *Parser) expectClose(k token.Kind, code diag.Code, open source.Span) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	found := p.lx.Peek()
	if found.Kind == token.Invalid {
		return false
	}
	msg := fmt.Sprintf("expected %s, found %s", quote(k), describe(found))
	sp := p.diagSpan()
	p.record(code, sp, msg, []string{quote(k)})
	if p.st.stopped || p.limitReached() || p.opts.Reporter == nil {
		p.report(code, diag.SevError, sp, msg)
		return false
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).
		WithNote(open, "unclosed delimiter opened here").
		Emit()
	return false
}

// errExpected reports at the current token and remembers the expected
// alternatives for the SyntaxError.
func (p *Parser) errExpected(code diag.Code, msg string, expected ...string) {
	found := p.lx.Peek()
	if found.Kind == token.Invalid {
		// лексер уже сообщил об ошибке
		p.st.errors++
		return
	}
	if msg == "" {
		msg = "unexpected " + describe(found)
	}
	p.errAt(code, p.diagSpan(), msg, expected...)
}

func (p *Parser) err(code diag.Code, msg string) {
	p.errExpected(code, msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string, expected ...string) {
	p.record(code, sp, msg, expected)
	p.report(code, diag.SevError, sp, msg)
}

// errFix is errAt with a suggested edit attached.
func (p *Parser) errFix(code diag.Code, sp source.Span, msg string, fix diag.Fix) {
	p.record(code, sp, msg, nil)
	if p.st.stopped || p.limitReached() || p.opts.Reporter == nil {
		p.report(code, diag.SevError, sp, msg)
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).
		WithFix(fix.Title, fix.Edits...).
		Emit()
}

func (p *Parser) warnAt(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevWarning, sp, msg)
}

// record counts an error and keeps the first one as a SyntaxError.
func (p *Parser) record(code diag.Code, sp source.Span, msg string, expected []string) {
	p.st.errors++
	if p.st.first == nil {
		p.st.first = &SyntaxError{
			Code:     code,
			Found:    p.lx.Peek(),
			Expected: expected,
			Span:     sp,
			Message:  msg,
		}
	}
}

func (p *Parser) limitReached() bool {
	return p.opts.MaxErrors != 0 && p.st.errors > p.opts.MaxErrors
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.st.stopped {
		return
	}
	if sev == diag.SevError && p.limitReached() {
		p.st.stopped = true
		if p.opts.Reporter != nil {
			diag.ReportError(p.opts.Reporter, diag.SynTooManyErrors, sp,
				fmt.Sprintf("too many errors (limit %d), parsing stopped", p.opts.MaxErrors)).Emit()
		}
		return
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}

// use records a post-ES5 construct and rejects it when the configured
// language does not have it.
func (p *Parser) use(f Feature, sp source.Span) bool {
	if !p.st.seen[f] {
		p.st.seen[f] = true
		p.st.features = append(p.st.features, FeatureUse{Feature: f, Span: sp})
	}
	if f.Since() > p.lang {
		p.errAt(diag.SynFeatureNotInLanguage, sp,
			fmt.Sprintf("%s require %s or later (language is %s)", f, f.Since(), p.lang))
		return false
	}
	return true
}

// unsupported reports a construct this front-end does not parse.
func (p *Parser) unsupported(what string) {
	p.errAt(diag.SynUnsupportedSyntax, p.diagSpan(), what+" are not supported")
}

// semicolon implements automatic semicolon insertion: a statement ends at
// `;`, before `}`, at EOF or before a token on a new line.
func (p *Parser) semicolon() bool {
	if p.eat(token.Semicolon) {
		return true
	}
	next := p.lx.Peek()
	if next.Kind == token.RBrace || next.Kind == token.EOF || next.NewlineBefore() {
		return true
	}
	p.errExpected(diag.SynExpectSemicolon, "expected ';' before "+describe(next), quote(token.Semicolon))
	return false
}

// canInsertSemicolon reports whether a statement may end before the next token.
func (p *Parser) canInsertSemicolon() bool {
	next := p.lx.Peek()
	return next.Kind == token.Semicolon || next.Kind == token.RBrace ||
		next.Kind == token.EOF || next.NewlineBefore()
}

// ahead returns a silent lexer positioned after the current peek token.
func (p *Parser) ahead() *lexer.Lexer {
	tok := p.lx.Peek()
	_, limit := p.lx.Range()
	lx := lexer.New(p.lx.File(), lexer.Options{})
	lx.SetRange(tok.Span.End, limit)
	return lx
}

// peekSecond returns the token after the current peek token.
func (p *Parser) peekSecond() token.Token {
	return p.ahead().Next()
}

// arrowAhead reports whether the `(` at the current position opens an
// arrow function parameter list: the matching `)` is followed by `=>` on
// the same line.
func (p *Parser) arrowAhead() bool {
	if !p.at(token.LParen) {
		return false
	}
	lx := p.ahead()
	depth := 1
	for tok := range lx.All() {
		switch tok.Kind {
		case token.EOF:
			return false
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth == 0 {
				next := lx.Next()
				return tok.Kind == token.RParen && next.Kind == token.Arrow && !next.NewlineBefore()
			}
		}
	}
	return false
}

// allowIn re-enables the `in` operator until the returned func runs.
func (p *Parser) allowIn() func() {
	saved := p.noIn
	p.noIn = false
	return func() { p.noIn = saved }
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.Intern(s)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}
