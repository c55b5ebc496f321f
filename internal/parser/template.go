package parser

import (
	"fortio.org/safecast"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// parseTemplate splits a TemplateLit token into quasis and parses every
// `${...}` with a sub-parser limited to the template body.
func (p *Parser) parseTemplate() (ast.ExprID, bool) {
	tok := p.advance()
	p.use(FeatTemplate, tok.Span)
	raw := tok.Text
	if len(raw) < 2 || raw[0] != '`' || raw[len(raw)-1] != '`' {
		p.errAt(diag.SynUnexpectedToken, tok.Span, "malformed template literal")
		return ast.NoExprID, false
	}
	content := raw[1 : len(raw)-1]
	contentStart := tok.Span.Start + 1
	contentEnd := tok.Span.End - 1
	file := tok.Span.File

	offset := func(i int) (uint32, bool) {
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			p.errAt(diag.SynUnexpectedToken, tok.Span, "template literal too large")
			return 0, false
		}
		return contentStart + off, true
	}
	quasi := func(from, to int) (ast.TemplateQuasi, bool) {
		s, ok1 := offset(from)
		e, ok2 := offset(to)
		return ast.TemplateQuasi{
			Raw:  content[from:to],
			Span: source.Span{File: file, Start: s, End: e},
		}, ok1 && ok2
	}

	var (
		quasis []ast.TemplateQuasi
		exprs  []ast.ExprID
	)
	chunk := 0
	for i := 0; i < len(content); {
		switch content[i] {
		case '\\':
			i += 2
			continue
		case '$':
			if i+1 < len(content) && content[i+1] == '{' {
				q, ok := quasi(chunk, i)
				if !ok {
					return ast.NoExprID, false
				}
				quasis = append(quasis, q)
				exprStart, ok := offset(i + 2)
				if !ok {
					return ast.NoExprID, false
				}
				expr, closeEnd, ok := p.parseInterpolation(exprStart, contentEnd)
				if !ok {
					return ast.NoExprID, false
				}
				exprs = append(exprs, expr)
				i = int(closeEnd - contentStart)
				chunk = i
				continue
			}
		}
		i++
	}
	last, ok := quasi(chunk, len(content))
	if !ok {
		return ast.NoExprID, false
	}
	quasis = append(quasis, last)
	return p.arenas.Exprs.NewTemplate(tok.Span, quasis, exprs), true
}

// parseInterpolation parses the expression starting at start and returns
// the offset just past its closing `}`.
func (p *Parser) parseInterpolation(start, limit uint32) (ast.ExprID, uint32, bool) {
	sub := p.sub(start, limit)
	if closeTok := sub.lx.Peek(); closeTok.Kind == token.RBrace {
		sp := source.Span{File: closeTok.Span.File, Start: start - 2, End: closeTok.Span.End}
		p.errAt(diag.SynEmptyInterpolation, sp, "empty template interpolation")
		return ast.NoExprID, 0, false
	}
	expr, ok := sub.parseExpression()
	if !ok {
		return ast.NoExprID, 0, false
	}
	closeTok := sub.lx.Peek()
	if closeTok.Kind != token.RBrace {
		sub.errExpected(diag.SynUnclosedBrace,
			"expected '}' to close template interpolation, found "+describe(closeTok), quote(token.RBrace))
		return ast.NoExprID, 0, false
	}
	return expr, closeTok.Span.End, true
}
