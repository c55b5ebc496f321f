package parser

import (
	"strings"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident, token.KwLet:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok.Text)), true

	case token.KwThis:
		p.advance()
		return p.arenas.Exprs.NewThis(tok.Span), true

	case token.KwSuper:
		p.advance()
		if !p.atOr(token.Dot, token.LBracket, token.LParen) {
			p.errExpected(diag.SynUnexpectedToken, "'super' must be followed by a call or property access",
				quote(token.Dot), quote(token.LBracket), quote(token.LParen))
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewSuper(tok.Span), true

	case token.NumberLit:
		p.advance()
		if strings.Contains(tok.Text, "_") {
			p.use(FeatNumericSeparator, tok.Span)
		}
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitNumber, p.intern(tok.Text)), true

	case token.BigIntLit:
		p.advance()
		p.use(FeatBigInt, tok.Span)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitBigInt, p.intern(tok.Text)), true

	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, p.intern(tok.Text)), true

	case token.KwTrue, token.KwFalse, token.KwNull:
		p.advance()
		kind := ast.LitNull
		switch tok.Kind {
		case token.KwTrue:
			kind = ast.LitTrue
		case token.KwFalse:
			kind = ast.LitFalse
		}
		return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.intern(tok.Text)), true

	case token.Slash, token.SlashAssign:
		re := p.lx.RescanRegExp(tok)
		if re.Kind != token.RegExpLit {
			// лексер уже сообщил
			p.st.errors++
			return ast.NoExprID, false
		}
		p.lastSpan = re.Span
		return p.arenas.Exprs.NewLiteral(re.Span, ast.LitRegExp, p.intern(re.Text)), true

	case token.TemplateLit:
		return p.parseTemplate()

	case token.LParen:
		return p.parseParen()

	case token.LBracket:
		return p.parseArray()

	case token.LBrace:
		return p.parseObject()

	case token.KwFunction:
		return p.parseFunctionExpr()

	case token.KwClass:
		return p.parseClassExpr()

	case token.PrivateName:
		p.unsupported("private name checks ('#x in obj')")
		return ast.NoExprID, false

	case token.KwImport:
		p.unsupported("dynamic imports")
		return ast.NoExprID, false

	case token.Invalid:
		p.advance()
		p.st.errors++
		return ast.NoExprID, false
	}

	p.errExpected(diag.SynExpectExpression, "expected expression, found "+describe(tok), "expression")
	return ast.NoExprID, false
}

func (p *Parser) parseParen() (ast.ExprID, bool) {
	open := p.advance()
	defer p.allowIn()()
	if p.at(token.RParen) {
		p.errExpected(diag.SynExpectExpression, "expected expression inside parentheses", "expression")
		return ast.NoExprID, false
	}
	inner, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span) {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewWrap(p.spanFrom(open.Span), ast.ExprParen, inner), true
}

// parseArray parses `[a, , ...b]`; holes are NoExprID.
func (p *Parser) parseArray() (ast.ExprID, bool) {
	open := p.advance()
	defer p.allowIn()()
	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.eat(token.Comma) {
			elems = append(elems, ast.NoExprID)
			continue
		}
		el, ok := p.parseSpreadOrAssign()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, el)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span) {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(p.spanFrom(open.Span), elems), true
}
