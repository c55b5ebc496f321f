package parser

import (
	"fmt"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// parseCondition parses `( expr )`.
func (p *Parser) parseCondition(what string) (ast.ExprID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '"+what+"'")
	if !ok {
		return ast.NoExprID, false
	}
	restore := p.allowIn()
	cond, ok := p.parseExpression()
	restore()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span) {
		return ast.NoExprID, false
	}
	return cond, true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition("if")
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBodyStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		if els, ok = p.parseBodyStatement(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(kw.Span), cond, then, els), true
}

// loopBody parses a loop body with break/continue allowed.
func (p *Parser) loopBody() (ast.StmtID, bool) {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	return p.parseBodyStatement()
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition("while")
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.loopBody()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLoop(p.spanFrom(kw.Span), ast.StmtWhile, cond, body), true
}

func (p *Parser) parseDoWhile() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.loopBody()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do-while body"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseCondition("while")
	if !ok {
		return ast.NoStmtID, false
	}
	// после do-while точка с запятой всегда может быть вставлена
	p.eat(token.Semicolon)
	return p.arenas.Stmts.NewLoop(p.spanFrom(kw.Span), ast.StmtDoWhile, cond, body), true
}

// parseFor handles classic, for-in and for-of loops.
func (p *Parser) parseFor() (ast.StmtID, bool) {
	kw := p.advance()
	if p.at(token.KwAwait) {
		p.unsupported("async iteration (for await)")
		return ast.NoStmtID, false
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'")
	if !ok {
		return ast.NoStmtID, false
	}

	var (
		init   ast.StmtID
		target ast.ExprID
		kind   ast.VarKind
		decls  []ast.VarDeclarator
	)
	savedIn := p.noIn
	p.noIn = true
	switch {
	case p.at(token.Semicolon):
	case p.at(token.KwVar), p.at(token.KwConst), p.at(token.KwLet) && p.letDeclAhead():
		kind = ast.VarVar
		switch p.lx.Peek().Kind {
		case token.KwLet:
			kind = ast.VarLet
		case token.KwConst:
			kind = ast.VarConst
		}
		start := p.lx.Peek().Span
		decls, ok = p.parseVarDeclarators(kind, true)
		if ok {
			init = p.arenas.Stmts.NewVarDecl(p.spanFrom(start), kind, decls)
		}
	default:
		target, ok = p.parseExpression()
	}
	p.noIn = savedIn
	if !ok {
		return ast.NoStmtID, false
	}

	if tok := p.lx.Peek(); tok.Kind == token.KwIn || tok.IsIdentNamed("of") {
		return p.parseForInOf(kw.Span, open.Span, init, decls, target)
	}

	if kind == ast.VarConst {
		for _, d := range decls {
			if !d.Init.IsValid() {
				p.errAt(diag.SynConstWithoutInit, d.NameSpan,
					fmt.Sprintf("missing initializer in const declaration '%s'", p.arenas.Name(d.Name)))
				return ast.NoStmtID, false
			}
		}
	}
	if target.IsValid() {
		init = p.arenas.Stmts.NewExpr(p.exprSpan(target), target)
	}
	data := ast.ForData{Init: init}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}
	restore := p.allowIn()
	defer restore()
	if !p.at(token.Semicolon) {
		if data.Test, ok = p.parseExpression(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.RParen) {
		if data.Update, ok = p.parseExpression(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span) {
		return ast.NoStmtID, false
	}
	if data.Body, ok = p.loopBody(); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(kw.Span), data), true
}

func (p *Parser) parseForInOf(start, open source.Span, decl ast.StmtID, decls []ast.VarDeclarator, target ast.ExprID) (ast.StmtID, bool) {
	opTok := p.lx.Peek()
	isOf := opTok.Kind != token.KwIn
	switch {
	case decl.IsValid():
		if len(decls) != 1 || decls[0].Init.IsValid() {
			p.errAt(diag.SynForBadHeader, p.arenas.Stmts.Get(decl).Span,
				"for-in/of declaration must declare exactly one variable without initializer")
			return ast.NoStmtID, false
		}
	case target.IsValid():
		if !p.checkAssignTarget(target) {
			return ast.NoStmtID, false
		}
	default:
		p.errAt(diag.SynForBadHeader, opTok.Span, "missing loop variable before '"+opTok.Text+"'")
		return ast.NoStmtID, false
	}
	p.advance()

	kind := ast.StmtForIn
	if isOf {
		kind = ast.StmtForOf
		p.use(FeatForOf, opTok.Span)
	}
	restore := p.allowIn()
	defer restore()
	var (
		right ast.ExprID
		ok    bool
	)
	if isOf {
		right, ok = p.parseAssign()
	} else {
		right, ok = p.parseExpression()
	}
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectClose(token.RParen, diag.SynUnclosedParen, open) {
		return ast.NoStmtID, false
	}
	body, ok := p.loopBody()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewForInOf(p.spanFrom(start), kind, ast.ForInOfData{
		Decl:   decl,
		Target: target,
		Right:  right,
		Body:   body,
	}), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance()
	if p.funcDepth == 0 {
		p.errAt(diag.SynReturnOutsideFunction, kw.Span, "'return' outside of a function")
		return ast.NoStmtID, false
	}
	arg := ast.NoExprID
	if !p.canInsertSemicolon() {
		var ok bool
		if arg, ok = p.parseExpression(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.semicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(kw.Span), arg), true
}

// parseJump handles break and continue.
func (p *Parser) parseJump() (ast.StmtID, bool) {
	kw := p.advance()
	kind := ast.StmtBreak
	if kw.Kind == token.KwContinue {
		kind = ast.StmtContinue
	}
	if next := p.lx.Peek(); next.Kind == token.Ident && !next.NewlineBefore() {
		p.unsupported("labelled statements")
		return ast.NoStmtID, false
	}
	if p.loopDepth == 0 {
		p.errAt(diag.SynIllegalBreak, kw.Span, fmt.Sprintf("'%s' outside of a loop", kw.Text))
		return ast.NoStmtID, false
	}
	if !p.semicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewJump(p.spanFrom(kw.Span), kind), true
}

func (p *Parser) parseThrow() (ast.StmtID, bool) {
	kw := p.advance()
	if next := p.lx.Peek(); next.NewlineBefore() {
		p.errAt(diag.SynIllegalNewline, next.Span, "line terminator not allowed after 'throw'")
		return ast.NoStmtID, false
	}
	arg, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.semicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewThrow(p.spanFrom(kw.Span), arg), true
}
