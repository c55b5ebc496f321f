package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// parseObject parses an object literal; properties keep source order.
func (p *Parser) parseObject() (ast.ExprID, bool) {
	open := p.advance()
	defer p.allowIn()()
	var props []ast.Property
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		prop, ok := p.parseProperty()
		if !ok {
			return ast.NoExprID, false
		}
		props = append(props, prop)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span) {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewObject(p.spanFrom(open.Span), props), true
}

func (p *Parser) parseProperty() (ast.Property, bool) {
	tok := p.lx.Peek()
	start := tok.Span

	switch {
	case tok.Kind == token.Ellipsis:
		p.advance()
		p.use(FeatObjectSpread, tok.Span)
		arg, ok := p.parseAssign()
		if !ok {
			return ast.Property{}, false
		}
		return ast.Property{Kind: ast.PropSpread, Value: arg, Span: p.spanFrom(start)}, true

	case tok.Kind == token.Star:
		p.unsupported("generators")
		return ast.Property{}, false

	case tok.IsIdentNamed("async") && p.keyFollows(false):
		p.unsupported("async functions")
		return ast.Property{}, false

	case (tok.IsIdentNamed("get") || tok.IsIdentNamed("set")) && p.keyFollows(false):
		p.advance()
		kind := ast.PropGet
		if tok.Text == "set" {
			kind = ast.PropSet
		}
		key, ok := p.parsePropertyKey(false)
		if !ok {
			return ast.Property{}, false
		}
		fn, ok := p.parseMethod(start, key)
		if !ok || !p.checkAccessorArity(fn, kind == ast.PropSet) {
			return ast.Property{}, false
		}
		return ast.Property{Kind: kind, Key: key, Func: fn, Span: p.spanFrom(start)}, true
	}

	key, ok := p.parsePropertyKey(false)
	if !ok {
		return ast.Property{}, false
	}
	next := p.lx.Peek()
	switch {
	case next.Kind == token.Colon:
		p.advance()
		value, ok := p.parseAssign()
		if !ok {
			return ast.Property{}, false
		}
		return ast.Property{Kind: ast.PropInit, Key: key, Value: value, Span: p.spanFrom(start)}, true

	case next.Kind == token.LParen:
		p.use(FeatObjectLiteralExt, key.Span)
		fn, ok := p.parseMethod(start, key)
		if !ok {
			return ast.Property{}, false
		}
		return ast.Property{Kind: ast.PropMethod, Key: key, Func: fn, Span: p.spanFrom(start)}, true

	case (next.Kind == token.Comma || next.Kind == token.RBrace) &&
		key.Kind == ast.KeyIdent && (tok.Kind == token.Ident || tok.Kind == token.KwLet):
		p.use(FeatObjectLiteralExt, key.Span)
		value := p.arenas.Exprs.NewIdent(key.Span, key.Name)
		return ast.Property{Kind: ast.PropShorthand, Key: key, Value: value, Span: key.Span}, true

	case next.Kind == token.Assign:
		p.unsupported("destructuring patterns")
		return ast.Property{}, false
	}
	p.errExpected(diag.SynExpectColon, "expected ':' after property name, found "+describe(next),
		quote(token.Colon), quote(token.LParen))
	return ast.Property{}, false
}

// keyFollows reports whether the token after the current one starts a
// property key on the same logical member, i.e. `get x`, not `get: 1`.
func (p *Parser) keyFollows(allowPrivate bool) bool {
	next := p.peekSecond()
	switch {
	case next.IsName(), next.Kind == token.StringLit, next.Kind == token.NumberLit,
		next.Kind == token.BigIntLit, next.Kind == token.LBracket:
		return true
	case next.Kind == token.PrivateName:
		return allowPrivate
	}
	return false
}

// parsePropertyKey parses an identifier, string, number, computed or
// (in classes) private key.
func (p *Parser) parsePropertyKey(inClass bool) (ast.PropKey, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.IsName():
		p.advance()
		return ast.PropKey{Kind: ast.KeyIdent, Name: p.intern(tok.Text), Span: tok.Span}, true
	case tok.Kind == token.StringLit:
		p.advance()
		return ast.PropKey{Kind: ast.KeyString, Name: p.intern(tok.Text), Span: tok.Span}, true
	case tok.Kind == token.NumberLit, tok.Kind == token.BigIntLit:
		p.advance()
		return ast.PropKey{Kind: ast.KeyNumber, Name: p.intern(tok.Text), Span: tok.Span}, true
	case tok.Kind == token.PrivateName && inClass:
		p.advance()
		p.use(FeatPrivateNames, tok.Span)
		return ast.PropKey{Kind: ast.KeyPrivate, Name: p.intern(tok.Text), Span: tok.Span}, true
	case tok.Kind == token.LBracket:
		open := p.advance()
		if !inClass {
			p.use(FeatObjectLiteralExt, open.Span)
		}
		restore := p.allowIn()
		expr, ok := p.parseAssign()
		restore()
		if !ok {
			return ast.PropKey{}, false
		}
		if !p.expectClose(token.RBracket, diag.SynUnclosedBracket, open.Span) {
			return ast.PropKey{}, false
		}
		return ast.PropKey{Kind: ast.KeyComputed, Computed: expr, Span: p.spanFrom(open.Span)}, true
	}
	p.errExpected(diag.SynExpectIdentifier, "expected property name, found "+describe(tok), "property name")
	return ast.PropKey{}, false
}

// checkAccessorArity: getters take no parameters, setters exactly one.
func (p *Parser) checkAccessorArity(fn ast.FuncID, setter bool) bool {
	data := p.arenas.Funcs.Get(fn)
	if data == nil {
		return false
	}
	switch {
	case setter && (len(data.Params) != 1 || data.Params[0].Rest):
		p.errAt(diag.SynUnexpectedToken, data.Span, "setter must have exactly one parameter")
		return false
	case !setter && len(data.Params) != 0:
		p.errAt(diag.SynUnexpectedToken, data.Span, "getter must not have parameters")
		return false
	}
	return true
}
