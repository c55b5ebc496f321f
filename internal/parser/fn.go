package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// parseFunctionDecl parses `function name(params) { body }` as a statement.
func (p *Parser) parseFunctionDecl() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	fn, ok := p.parseFunction(true)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFuncDecl(p.spanFrom(start), fn), true
}

func (p *Parser) parseFunctionExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	fn, ok := p.parseFunction(false)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewFunc(p.spanFrom(start), ast.ExprFunc, fn), true
}

// parseFunction starts at `function`.
func (p *Parser) parseFunction(requireName bool) (ast.FuncID, bool) {
	kw := p.advance()
	if p.at(token.Star) {
		p.unsupported("generators")
		return ast.NoFuncID, false
	}
	data := ast.FuncData{Kind: ast.FuncPlain}
	if tok := p.lx.Peek(); tok.Kind == token.Ident || tok.Kind == token.KwLet {
		p.advance()
		data.Name = p.intern(tok.Text)
		data.NameSpan = tok.Span
	} else if requireName {
		p.errExpected(diag.SynExpectIdentifier, "expected function name, found "+describe(tok), "identifier")
		return ast.NoFuncID, false
	}
	return p.parseFunctionTail(kw.Span, data)
}

// parseMethod parses the parameter list and body of a method whose key has
// already been consumed.
func (p *Parser) parseMethod(start source.Span, key ast.PropKey) (ast.FuncID, bool) {
	data := ast.FuncData{Kind: ast.FuncMethod, NameSpan: key.Span}
	if key.Kind != ast.KeyComputed {
		data.Name = key.Name
	}
	return p.parseFunctionTail(start, data)
}

func (p *Parser) parseFunctionTail(start source.Span, data ast.FuncData) (ast.FuncID, bool) {
	params, ok := p.parseParams()
	if !ok {
		return ast.NoFuncID, false
	}
	data.Params = params
	body, ok := p.parseFunctionBody()
	if !ok {
		return ast.NoFuncID, false
	}
	data.Body = body
	data.Span = p.spanFrom(start)
	return p.arenas.Funcs.New(data), true
}

// parseParams parses `(a, b = 1, ...rest)`.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to start parameter list")
	if !ok {
		return nil, false
	}
	defer p.allowIn()()
	var params []ast.Param
	for !p.at(token.RParen) {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
		if param.Rest {
			p.errAt(diag.SynRestNotLast, param.Span, "rest parameter must be the last parameter")
			return nil, false
		}
	}
	if !p.expectClose(token.RParen, diag.SynUnclosedParen, open.Span) {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseParam() (ast.Param, bool) {
	start := p.lx.Peek().Span
	var param ast.Param
	if dots := p.lx.Peek(); dots.Kind == token.Ellipsis {
		p.advance()
		p.use(FeatRestParam, dots.Span)
		param.Rest = true
	}
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident, token.KwLet:
		p.advance()
		param.Name = p.intern(tok.Text)
		param.NameSpan = tok.Span
	case token.LBracket, token.LBrace:
		p.unsupported("destructuring patterns")
		return param, false
	default:
		p.errExpected(diag.SynExpectIdentifier, "expected parameter name, found "+describe(tok), "identifier")
		return param, false
	}
	if eq := p.lx.Peek(); eq.Kind == token.Assign {
		if param.Rest {
			p.errAt(diag.SynUnexpectedToken, eq.Span, "rest parameter cannot have a default value")
			return param, false
		}
		p.advance()
		p.use(FeatDefaultParam, eq.Span)
		def, ok := p.parseAssign()
		if !ok {
			return param, false
		}
		param.Default = def
	}
	param.Span = p.spanFrom(start)
	return param, true
}

// parseFunctionBody parses a block in a fresh function context.
func (p *Parser) parseFunctionBody() (ast.StmtID, bool) {
	savedLoop, savedIn := p.loopDepth, p.noIn
	p.funcDepth++
	p.loopDepth = 0
	p.noIn = false
	defer func() {
		p.funcDepth--
		p.loopDepth, p.noIn = savedLoop, savedIn
	}()
	return p.parseBlock()
}

// parseArrowFunction starts at the single parameter or at `(`; the caller
// has already checked that `=>` follows.
func (p *Parser) parseArrowFunction() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	data := ast.FuncData{Kind: ast.FuncArrow}
	if tok := p.lx.Peek(); tok.Kind == token.Ident || tok.Kind == token.KwLet {
		p.advance()
		data.Params = []ast.Param{{Name: p.intern(tok.Text), NameSpan: tok.Span, Span: tok.Span}}
	} else {
		params, ok := p.parseParams()
		if !ok {
			return ast.NoExprID, false
		}
		data.Params = params
	}
	arrow := p.lx.Peek()
	if arrow.Kind == token.Arrow && arrow.NewlineBefore() {
		p.errAt(diag.SynIllegalNewline, arrow.Span, "line terminator not allowed before '=>'")
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '=>'"); !ok {
		return ast.NoExprID, false
	}
	p.use(FeatArrow, arrow.Span)

	if p.at(token.LBrace) {
		body, ok := p.parseFunctionBody()
		if !ok {
			return ast.NoExprID, false
		}
		data.Body = body
	} else {
		savedLoop := p.loopDepth
		p.funcDepth++
		p.loopDepth = 0
		body, ok := p.parseAssign()
		p.funcDepth--
		p.loopDepth = savedLoop
		if !ok {
			return ast.NoExprID, false
		}
		data.ExprBody = body
	}
	data.Span = p.spanFrom(start)
	fn := p.arenas.Funcs.New(data)
	return p.arenas.Exprs.NewFunc(data.Span, ast.ExprArrow, fn), true
}
