package printer

import (
	"jsfront/internal/ast"
)

// leftmost returns the expression that supplies the first token of id.
func (p *printer) leftmost(id ast.ExprID) ast.ExprID {
	for {
		next, ok := p.leftStep(id)
		if !ok {
			return p.builder.Exprs.Unparen(id)
		}
		id = next
	}
}

// leftStep moves one level down the left edge of id, looking through
// source parentheses.
func (p *printer) leftStep(id ast.ExprID) (ast.ExprID, bool) {
	exprs := p.builder.Exprs
	id = exprs.Unparen(id)
	expr := exprs.Get(id)
	if expr == nil {
		return id, false
	}
	switch expr.Kind {
	case ast.ExprBinary, ast.ExprLogical:
		data, _ := exprs.Binary(id)
		return data.Left, true
	case ast.ExprAssign:
		data, _ := exprs.Assign(id)
		return data.Target, true
	case ast.ExprCond:
		data, _ := exprs.Cond(id)
		return data.Test, true
	case ast.ExprSeq:
		data, _ := exprs.Seq(id)
		return data.Exprs[0], true
	case ast.ExprCall:
		data, _ := exprs.Call(id)
		return data.Callee, true
	case ast.ExprMember:
		data, _ := exprs.Member(id)
		return data.Object, true
	case ast.ExprTaggedTemplate:
		data, _ := exprs.TaggedTemplate(id)
		return data.Tag, true
	case ast.ExprUpdate:
		data, _ := exprs.Update(id)
		if data.Prefix {
			return id, false
		}
		return data.Operand, true
	}
	return id, false
}

func (p *printer) leftmostKind(id ast.ExprID) ast.ExprKind {
	if expr := p.builder.Exprs.Get(p.leftmost(id)); expr != nil {
		return expr.Kind
	}
	return ast.ExprParen
}

// needsStatementParens reports an expression statement that would start
// with `{`, `function`, `class` or `let`.
func (p *printer) needsStatementParens(id ast.ExprID) bool {
	switch p.leftmostKind(id) {
	case ast.ExprObject, ast.ExprFunc, ast.ExprClass:
		return true
	}
	return p.startsWithLet(id)
}

func (p *printer) startsWithLet(id ast.ExprID) bool {
	return p.isLetIdent(p.leftmost(id))
}

func (p *printer) isLetIdent(id ast.ExprID) bool {
	data, ok := p.builder.Exprs.Ident(p.builder.Exprs.Unparen(id))
	return ok && p.name(data.Name) == "let"
}

// startsWithLetBracket reports an expression that would print as `let[`,
// which a for-init clause reads as a lexical declaration.
func (p *printer) startsWithLetBracket(id ast.ExprID) bool {
	for {
		next, ok := p.leftStep(id)
		if !ok {
			return false
		}
		if member, isMember := p.builder.Exprs.Member(p.builder.Exprs.Unparen(id)); isMember &&
			member.Computed.IsValid() && p.isLetIdent(next) {
			return true
		}
		id = next
	}
}

// hasCall reports a call along the member chain of a `new` callee:
// `new (a().b)()` differs from `new a().b()`.
func (p *printer) hasCall(id ast.ExprID) bool {
	exprs := p.builder.Exprs
	for {
		id = exprs.Unparen(id)
		expr := exprs.Get(id)
		if expr == nil {
			return false
		}
		switch expr.Kind {
		case ast.ExprCall:
			return true
		case ast.ExprMember:
			data, _ := exprs.Member(id)
			id = data.Object
		case ast.ExprTaggedTemplate:
			data, _ := exprs.TaggedTemplate(id)
			id = data.Tag
		default:
			return false
		}
	}
}

// isOptionalChain reports whether id is part of an a?.b chain.
func (p *printer) isOptionalChain(id ast.ExprID) bool {
	exprs := p.builder.Exprs
	for {
		if data, ok := exprs.Member(id); ok {
			if data.Optional {
				return true
			}
			id = data.Object
			continue
		}
		if data, ok := exprs.Call(id); ok {
			if data.Optional {
				return true
			}
			id = data.Callee
			continue
		}
		return false
	}
}

// isBareInteger reports a number literal such as 1 that would swallow a
// following dot.
func (p *printer) isBareInteger(id ast.ExprID) bool {
	data, ok := p.builder.Exprs.Literal(id)
	if !ok || data.Kind != ast.LitNumber {
		return false
	}
	raw := p.name(data.Raw)
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return raw != ""
}

// containsIn reports a binary `in` anywhere below id.
func (p *printer) containsIn(id ast.ExprID) bool {
	found := false
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if found {
			return
		}
		if data, ok := p.builder.Exprs.Binary(n.Expr); ok && n.Expr.IsValid() && data.Op == ast.OpIn {
			found = true
			return
		}
		for _, c := range p.builder.Children(n) {
			walk(c)
		}
	}
	walk(ast.ExprNode(id))
	return found
}
