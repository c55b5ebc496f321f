package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// parseLeftHandSide parses `new`, a primary expression and its member,
// call and tagged-template suffixes.
func (p *Parser) parseLeftHandSide() (ast.ExprID, bool) {
	var (
		expr ast.ExprID
		ok   bool
	)
	if p.at(token.KwNew) {
		expr, ok = p.parseNew()
	} else {
		expr, ok = p.parsePrimary()
	}
	if !ok {
		return ast.NoExprID, false
	}
	return p.parseSuffixes(expr, true)
}

// parseSuffixes applies `.x`, `[x]`, `(args)`, `?.` and tagged templates.
// Calls are skipped when allowCall is false (callee of `new`).
func (p *Parser) parseSuffixes(expr ast.ExprID, allowCall bool) (ast.ExprID, bool) {
	inChain := false
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Dot:
			p.advance()
			next, ok := p.parseMemberName(expr, false)
			if !ok {
				return ast.NoExprID, false
			}
			expr = next

		case token.LBracket:
			next, ok := p.parseComputedMember(expr, false)
			if !ok {
				return ast.NoExprID, false
			}
			expr = next

		case token.LParen:
			if !allowCall {
				return expr, true
			}
			args, ok := p.parseArguments()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewCall(p.exprSpan(expr).Cover(p.lastSpan), expr, args, false)

		case token.QuestionDot:
			if !allowCall {
				p.errAt(diag.SynUnexpectedToken, tok.Span, "optional chain is not allowed in a 'new' callee")
				return ast.NoExprID, false
			}
			p.advance()
			p.use(FeatOptionalChain, tok.Span)
			inChain = true
			var (
				next ast.ExprID
				ok   bool
			)
			switch {
			case p.at(token.LParen):
				var args []ast.ExprID
				args, ok = p.parseArguments()
				if ok {
					next = p.arenas.Exprs.NewCall(p.exprSpan(expr).Cover(p.lastSpan), expr, args, true)
				}
			case p.at(token.LBracket):
				next, ok = p.parseComputedMember(expr, true)
			default:
				next, ok = p.parseMemberName(expr, true)
			}
			if !ok {
				return ast.NoExprID, false
			}
			expr = next

		case token.TemplateLit:
			if inChain {
				p.errAt(diag.SynUnexpectedToken, tok.Span, "tagged template cannot be used in an optional chain")
				return ast.NoExprID, false
			}
			quasi, ok := p.parseTemplate()
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.exprSpan(expr).Cover(p.exprSpan(quasi))
			expr = p.arenas.Exprs.NewTaggedTemplate(sp, expr, quasi)

		default:
			return expr, true
		}
	}
}

// parseMemberName parses the name after `.` or `?.`.
func (p *Parser) parseMemberName(object ast.ExprID, optional bool) (ast.ExprID, bool) {
	tok := p.lx.Peek()
	data := ast.ExprMemberData{Object: object, Optional: optional}
	switch {
	case tok.IsName():
		data.Property = p.intern(tok.Text)
	case tok.Kind == token.PrivateName:
		p.use(FeatPrivateNames, tok.Span)
		data.Property = p.intern(tok.Text)
		data.Private = true
	default:
		p.errExpected(diag.SynExpectIdentifier, "expected property name after '.', found "+describe(tok), "property name")
		return ast.NoExprID, false
	}
	p.advance()
	data.PropertySpan = tok.Span
	return p.arenas.Exprs.NewMember(p.exprSpan(object).Cover(tok.Span), data), true
}

func (p *Parser) parseComputedMember(object ast.ExprID, optional bool) (ast.ExprID, bool) {
	open := p.advance() // [
	restore := p.allowIn()
	prop, ok := p.parseExpression()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span) {
		return ast.NoExprID, false
	}
	data := ast.ExprMemberData{Object: object, Computed: prop, Optional: optional}
	return p.arenas.Exprs.NewMember(p.exprSpan(object).Cover(p.lastSpan), data), true
}

// parseArguments parses `( arg, ...spread, )`.
func (p *Parser) parseArguments() ([]ast.ExprID, bool) {
	open := p.advance() // (
	defer p.allowIn()()
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, ok := p.parseSpreadOrAssign()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span) {
		return nil, false
	}
	return args, true
}

// parseSpreadOrAssign parses an argument or array element.
func (p *Parser) parseSpreadOrAssign() (ast.ExprID, bool) {
	if !p.at(token.Ellipsis) {
		return p.parseAssign()
	}
	dots := p.advance()
	p.use(FeatSpread, dots.Span)
	inner, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewWrap(dots.Span.Cover(p.exprSpan(inner)), ast.ExprSpread, inner), true
}

// parseNew parses `new Callee`, `new Callee(args)` and nested `new new X()()`.
func (p *Parser) parseNew() (ast.ExprID, bool) {
	newTok := p.advance()
	if p.at(token.Dot) {
		p.unsupported("meta properties (new.target)")
		return ast.NoExprID, false
	}
	var (
		callee ast.ExprID
		ok     bool
	)
	if p.at(token.KwNew) {
		callee, ok = p.parseNew()
	} else {
		callee, ok = p.parsePrimary()
	}
	if !ok {
		return ast.NoExprID, false
	}
	callee, ok = p.parseSuffixes(callee, false)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.LParen) {
		return p.arenas.Exprs.NewNew(newTok.Span.Cover(p.exprSpan(callee)), callee, nil, false), true
	}
	args, ok := p.parseArguments()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewNew(p.spanFrom(newTok.Span), callee, args, true), true
}
