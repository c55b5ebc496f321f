package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

func (p *Parser) parseClassDecl() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	cls, ok := p.parseClass(true)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewClassDecl(p.spanFrom(start), cls), true
}

func (p *Parser) parseClassExpr() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	cls, ok := p.parseClass(false)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewClass(p.spanFrom(start), cls), true
}

// parseClass starts at `class`. Members are kept in source order; a member
// with a parameter list is a method, anything else is a field.
func (p *Parser) parseClass(requireName bool) (ast.ClassID, bool) {
	kw := p.advance()
	p.use(FeatClass, kw.Span)

	var data ast.ClassData
	if tok := p.lx.Peek(); tok.Kind == token.Ident {
		p.advance()
		data.Name = p.intern(tok.Text)
		data.NameSpan = tok.Span
	} else if requireName {
		p.errExpected(diag.SynExpectIdentifier, "expected class name, found "+describe(tok), "identifier")
		return ast.NoClassID, false
	}

	if p.eat(token.KwExtends) {
		super, ok := p.parseLeftHandSide()
		if !ok {
			return ast.NoClassID, false
		}
		data.Super = super
	}

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start class body")
	if !ok {
		return ast.NoClassID, false
	}
	restore := p.allowIn()
	defer restore()

	var ctor source.Span
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		member, ok := p.parseClassMember()
		if !ok {
			return ast.NoClassID, false
		}
		if member.IsConstructor(p.arenas) {
			if ctor != (source.Span{}) {
				p.errAt(diag.SynDuplicateConstructor, member.Key.Span, "a class may only have one constructor")
				return ast.NoClassID, false
			}
			ctor = member.Key.Span
		}
		data.Members = append(data.Members, member)
	}
	if !p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span) {
		return ast.NoClassID, false
	}
	data.Span = p.spanFrom(kw.Span)
	return p.arenas.Classes.New(data), true
}

func (p *Parser) parseClassMember() (ast.ClassMember, bool) {
	start := p.lx.Peek().Span
	var member ast.ClassMember

	if p.lx.Peek().IsIdentNamed("static") {
		switch next := p.peekSecond(); {
		case next.Kind == token.LBrace:
			p.unsupported("static initialization blocks")
			return member, false
		case p.keyFollows(true) || next.Kind == token.Star:
			p.advance()
			member.Static = true
		}
	}

	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Star:
		p.unsupported("generators")
		return member, false
	case tok.IsIdentNamed("async") && p.keyFollows(true):
		p.unsupported("async functions")
		return member, false
	case (tok.IsIdentNamed("get") || tok.IsIdentNamed("set")) && p.keyFollows(true):
		p.advance()
		member.Kind = ast.MemberGetter
		if tok.Text == "set" {
			member.Kind = ast.MemberSetter
		}
		key, ok := p.parsePropertyKey(true)
		if !ok {
			return member, false
		}
		member.Key = key
		fn, ok := p.parseMethod(start, key)
		if !ok || !p.checkAccessorArity(fn, member.Kind == ast.MemberSetter) {
			return member, false
		}
		member.Func = fn
		member.Span = p.spanFrom(start)
		return member, true
	}

	key, ok := p.parsePropertyKey(true)
	if !ok {
		return member, false
	}
	member.Key = key

	if p.at(token.LParen) {
		member.Kind = ast.MemberMethod
		fn, ok := p.parseMethod(start, key)
		if !ok {
			return member, false
		}
		member.Func = fn
		member.Span = p.spanFrom(start)
		return member, true
	}

	member.Kind = ast.MemberField
	p.use(FeatClassFields, key.Span)
	if key.Kind == ast.KeyIdent && p.arenas.Name(key.Name) == "constructor" {
		p.errAt(diag.SynUnexpectedToken, key.Span, "class field cannot be named 'constructor'")
		return member, false
	}
	if p.eat(token.Assign) {
		value, ok := p.parseAssign()
		if !ok {
			return member, false
		}
		member.Value = value
	}
	if !p.semicolon() {
		return member, false
	}
	member.Span = p.spanFrom(start)
	return member, true
}
