package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// parseExpression: точка входа, выражение с запятыми (SequenceExpression).
func (p *Parser) parseExpression() (ast.ExprID, bool) {
	first, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	exprs := []ast.ExprID{first}
	for p.eat(token.Comma) {
		next, ok := p.parseAssign()
		if !ok {
			return ast.NoExprID, false
		}
		exprs = append(exprs, next)
	}
	sp := p.exprSpan(first).Cover(p.exprSpan(exprs[len(exprs)-1]))
	return p.arenas.Exprs.NewSeq(sp, exprs), true
}

// parseAssign parses AssignmentExpression, arrow functions included.
func (p *Parser) parseAssign() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Ident && tok.Text == "async":
		if next := p.peekSecond(); !next.NewlineBefore() &&
			(next.Kind == token.KwFunction || next.Kind == token.Ident || next.Kind == token.LParen) {
			if next.Kind != token.LParen || p.asyncArrowAhead() {
				p.unsupported("async functions")
				return ast.NoExprID, false
			}
		}
	case tok.Kind == token.Ident || tok.Kind == token.KwLet:
		if next := p.peekSecond(); next.Kind == token.Arrow && !next.NewlineBefore() {
			return p.parseArrowFunction()
		}
	case tok.Kind == token.LParen:
		if p.arrowAhead() {
			return p.parseArrowFunction()
		}
	case tok.Kind == token.KwYield:
		p.unsupported("generators")
		return ast.NoExprID, false
	}

	left, ok := p.parseConditional()
	if !ok {
		return ast.NoExprID, false
	}

	opTok := p.lx.Peek()
	op, isAssign := assignOps[opTok.Kind]
	if !isAssign {
		return left, true
	}
	if !p.checkAssignTarget(left) {
		return ast.NoExprID, false
	}
	p.advance()
	switch {
	case op.IsLogical():
		p.use(FeatLogicalAssign, opTok.Span)
	case op == ast.AssignExp:
		p.use(FeatExponent, opTok.Span)
	}
	value, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.exprSpan(left).Cover(p.exprSpan(value))
	return p.arenas.Exprs.NewAssign(sp, op, left, value), true
}

// asyncArrowAhead reports `async (...) =>`; the current token is `async`.
func (p *Parser) asyncArrowAhead() bool {
	saved := p.lx
	p.lx = p.ahead()
	defer func() { p.lx = saved }()
	return p.arrowAhead()
}

// checkAssignTarget accepts identifiers and non-optional member accesses,
// possibly parenthesised.
func (p *Parser) checkAssignTarget(id ast.ExprID) bool {
	inner := p.arenas.Exprs.Unparen(id)
	e := p.arenas.Exprs.Get(inner)
	if e != nil {
		switch e.Kind {
		case ast.ExprIdent:
			return true
		case ast.ExprMember:
			if m, _ := p.arenas.Exprs.Member(inner); !m.Optional {
				return true
			}
		case ast.ExprArray, ast.ExprObject:
			p.errAt(diag.SynUnsupportedSyntax, e.Span, "destructuring patterns are not supported")
			return false
		}
	}
	p.errAt(diag.SynInvalidAssignTarget, p.exprSpan(id), "invalid assignment target")
	return false
}

func (p *Parser) parseConditional() (ast.ExprID, bool) {
	test, ok := p.parseBinary(ast.PrecCoalesce)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.eat(token.Question) {
		return test, true
	}
	restore := p.allowIn()
	then, ok := p.parseAssign()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseAssign()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.exprSpan(test).Cover(p.exprSpan(els))
	return p.arenas.Exprs.NewCond(sp, test, then, els), true
}

// parseBinary реализует Pratt parsing для бинарных операторов.
// minPrec: минимальный приоритет для текущего уровня.
func (p *Parser) parseBinary(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		opTok := p.lx.Peek()
		op, isOp := p.binaryOp(opTok.Kind)
		if !isOp {
			break
		}
		prec := op.Precedence()
		if prec < minPrec {
			break
		}
		if op == ast.OpExp {
			if l := p.arenas.Exprs.Get(left); l != nil && (l.Kind == ast.ExprUnary) {
				p.errAt(diag.SynUnexpectedToken, opTok.Span,
					"unary expression before '**' must be parenthesized")
				return ast.NoExprID, false
			}
		}
		p.advance()
		switch op {
		case ast.OpExp:
			p.use(FeatExponent, opTok.Span)
		case ast.OpCoalesce:
			p.use(FeatNullish, opTok.Span)
		}

		nextMin := prec + 1
		if op.RightAssoc() {
			nextMin = prec
		}
		right, ok := p.parseBinary(nextMin)
		if !ok {
			return ast.NoExprID, false
		}
		if !p.checkCoalesceMix(op, left, right) {
			return ast.NoExprID, false
		}
		sp := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.arenas.Exprs.NewBinary(sp, op, left, right)
	}
	return left, true
}

// checkCoalesceMix rejects `a ?? b || c` and friends without parentheses.
func (p *Parser) checkCoalesceMix(op ast.BinaryOp, left, right ast.ExprID) bool {
	if !op.IsLogical() {
		return true
	}
	for _, side := range [...]ast.ExprID{left, right} {
		data, ok := p.arenas.Exprs.Binary(side)
		if !ok || !data.Op.IsLogical() {
			continue
		}
		if (op == ast.OpCoalesce) != (data.Op == ast.OpCoalesce) {
			inner := p.exprSpan(side)
			p.errFix(diag.SynMixedCoalesce, p.exprSpan(left).Cover(p.exprSpan(right)),
				"'??' cannot be mixed with '||' or '&&' without parentheses",
				diag.Fix{Title: "parenthesize the inner expression", Edits: []diag.FixEdit{
					{Span: source.Span{File: inner.File, Start: inner.Start, End: inner.Start}, NewText: "("},
					{Span: source.Span{File: inner.File, Start: inner.End, End: inner.End}, NewText: ")"},
				}})
			return false
		}
	}
	return true
}

// parseUnary handles prefix operators and postfix ++/--.
func (p *Parser) parseUnary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	if op, ok := unaryOps[tok.Kind]; ok {
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(p.spanFrom(tok.Span), op, operand), true
	}
	switch tok.Kind {
	case token.PlusPlus, token.MinusMinus:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok || !p.checkAssignTarget(operand) {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUpdate(p.spanFrom(tok.Span), updateOp(tok.Kind), true, operand), true
	case token.KwAwait:
		p.unsupported("async functions")
		return ast.NoExprID, false
	}

	expr, ok := p.parseLeftHandSide()
	if !ok {
		return ast.NoExprID, false
	}
	post := p.lx.Peek()
	if (post.Kind == token.PlusPlus || post.Kind == token.MinusMinus) && !post.NewlineBefore() {
		if !p.checkAssignTarget(expr) {
			return ast.NoExprID, false
		}
		p.advance()
		sp := p.exprSpan(expr).Cover(post.Span)
		return p.arenas.Exprs.NewUpdate(sp, updateOp(post.Kind), false, expr), true
	}
	return expr, true
}

func updateOp(k token.Kind) ast.UpdateOp {
	if k == token.MinusMinus {
		return ast.UpdateDec
	}
	return ast.UpdateInc
}
