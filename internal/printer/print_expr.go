package printer

import (
	"jsfront/internal/ast"
)

// precedence returns the binding power of an already unparenthesized
// expression.
func (p *printer) precedence(id ast.ExprID) int {
	expr := p.builder.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprSeq:
		return ast.PrecComma
	case ast.ExprAssign, ast.ExprArrow, ast.ExprSpread:
		return ast.PrecAssign
	case ast.ExprCond:
		return ast.PrecCond
	case ast.ExprBinary, ast.ExprLogical:
		data, _ := p.builder.Exprs.Binary(id)
		return data.Op.Precedence()
	case ast.ExprUnary:
		return ast.PrecPrefix
	case ast.ExprUpdate:
		if data, _ := p.builder.Exprs.Update(id); data.Prefix {
			return ast.PrecPrefix
		}
		return ast.PrecPostfix
	case ast.ExprNew:
		if data, _ := p.builder.Exprs.New(id); !data.HasArgs {
			return ast.PrecNew
		}
		return ast.PrecMember
	case ast.ExprCall, ast.ExprTaggedTemplate:
		return ast.PrecCall
	case ast.ExprMember:
		return ast.PrecMember
	}
	return ast.PrecPrimary
}

// printExpr prints id, wrapping it in parentheses when it binds looser
// than minPrec. Source parentheses are dropped.
func (p *printer) printExpr(id ast.ExprID, minPrec int) {
	id = p.builder.Exprs.Unparen(id)
	if !id.IsValid() || p.builder.Exprs.Get(id) == nil {
		p.missing++
		return
	}
	if p.precedence(id) < minPrec {
		p.parenthesized(id)
		return
	}
	p.printBare(id)
}

func (p *printer) parenthesized(id ast.ExprID) {
	p.writer.Token("(")
	p.printExpr(id, ast.PrecLowest)
	p.writer.Token(")")
}

func (p *printer) printBare(id ast.ExprID) {
	b := p.builder
	w := p.writer
	expr := b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		w.Token(p.name(data.Name))
	case ast.ExprLit:
		data, _ := b.Exprs.Literal(id)
		w.Token(p.name(data.Raw))
	case ast.ExprThis:
		w.Token("this")
	case ast.ExprSuper:
		w.Token("super")
	case ast.ExprArray:
		p.printArray(id)
	case ast.ExprObject:
		p.printObject(id)
	case ast.ExprFunc:
		fn, _ := b.Exprs.Func(id)
		p.printFunction(fn)
	case ast.ExprArrow:
		fn, _ := b.Exprs.Func(id)
		p.printArrow(fn)
	case ast.ExprClass:
		cls, _ := b.Exprs.Class(id)
		p.printClass(cls)
	case ast.ExprTemplate:
		p.printTemplate(id)
	case ast.ExprTaggedTemplate:
		data, _ := b.Exprs.TaggedTemplate(id)
		p.printChainHead(data.Tag)
		p.printTemplate(data.Quasi)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		p.printChainHead(data.Callee)
		if data.Optional {
			w.Token("?.")
		}
		p.printArgs(data.Args)
	case ast.ExprNew:
		p.printNew(id)
	case ast.ExprMember:
		p.printMember(id)
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		w.Token(data.Op.String())
		if data.Op.IsWord() {
			w.Space()
		}
		p.printExpr(data.Operand, ast.PrecPrefix)
	case ast.ExprUpdate:
		data, _ := b.Exprs.Update(id)
		if data.Prefix {
			w.Token(data.Op.String())
			p.printExpr(data.Operand, ast.PrecCall)
		} else {
			p.printExpr(data.Operand, ast.PrecCall)
			w.Token(data.Op.String())
		}
	case ast.ExprBinary, ast.ExprLogical:
		p.printBinary(id)
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(id)
		p.printExpr(data.Target, ast.PrecCall)
		p.assignOp(data.Op.String())
		p.printExpr(data.Value, ast.PrecAssign)
	case ast.ExprCond:
		data, _ := b.Exprs.Cond(id)
		p.printExpr(data.Test, ast.PrecCond+1)
		p.assignOp("?")
		p.printExpr(data.Then, ast.PrecAssign)
		p.assignOp(":")
		p.printExpr(data.Else, ast.PrecAssign)
	case ast.ExprSeq:
		data, _ := b.Exprs.Seq(id)
		for i, e := range data.Exprs {
			if i > 0 {
				p.comma()
			}
			p.printExpr(e, ast.PrecAssign)
		}
	case ast.ExprSpread:
		data, _ := b.Exprs.Wrap(id)
		w.Token("...")
		p.printExpr(data.Inner, ast.PrecAssign)
	default:
		p.missing++
	}
}

func (p *printer) printBinary(id ast.ExprID) {
	data, _ := p.builder.Exprs.Binary(id)
	prec := data.Op.Precedence()
	leftMin, rightMin := prec, prec+1
	if data.Op.RightAssoc() {
		// -a ** b is a syntax error
		leftMin, rightMin = ast.PrecPostfix, prec
	}
	p.printOperand(data.Left, leftMin, data.Op)
	p.assignOp(data.Op.String())
	p.printOperand(data.Right, rightMin, data.Op)
}

// printOperand keeps ?? apart from && and ||, which may not mix unparenthesized.
func (p *printer) printOperand(id ast.ExprID, minPrec int, parent ast.BinaryOp) {
	if parent == ast.OpCoalesce {
		inner := p.builder.Exprs.Unparen(id)
		if data, ok := p.builder.Exprs.Binary(inner); ok && (data.Op == ast.OpAndAnd || data.Op == ast.OpOrOr) {
			p.parenthesized(inner)
			return
		}
	}
	p.printExpr(id, minPrec)
}

// assignOp prints an infix operator with spaces around it in pretty mode.
func (p *printer) assignOp(op string) {
	p.writer.Space()
	p.writer.Token(op)
	p.writer.Space()
}

func (p *printer) comma() {
	p.writer.Token(",")
	p.writer.Space()
}

func (p *printer) printArgs(args []ast.ExprID) {
	p.writer.Token("(")
	for i, a := range args {
		if i > 0 {
			p.comma()
		}
		p.printExpr(a, ast.PrecAssign)
	}
	p.writer.Token(")")
}

// printChainHead prints the object of a member access, a callee or a tag.
func (p *printer) printChainHead(orig ast.ExprID) {
	inner := p.builder.Exprs.Unparen(orig)
	switch {
	case inner != orig && p.isOptionalChain(inner):
		// (a?.b).c must keep its parentheses
		p.parenthesized(inner)
	case p.isBareInteger(inner):
		p.parenthesized(inner)
	default:
		p.printExpr(inner, ast.PrecCall)
	}
}

func (p *printer) printMember(id ast.ExprID) {
	data, _ := p.builder.Exprs.Member(id)
	w := p.writer
	p.printChainHead(data.Object)
	if data.Computed.IsValid() {
		if data.Optional {
			w.Token("?.")
		}
		w.Token("[")
		p.printExpr(data.Computed, ast.PrecLowest)
		w.Token("]")
		return
	}
	if data.Optional {
		w.Token("?.")
	} else {
		w.Token(".")
	}
	w.Token(p.name(data.Property))
}

func (p *printer) printNew(id ast.ExprID) {
	data, _ := p.builder.Exprs.New(id)
	w := p.writer
	w.Token("new")
	w.Space()
	inner := p.builder.Exprs.Unparen(data.Callee)
	if p.hasCall(inner) || (inner != data.Callee && p.isOptionalChain(inner)) {
		p.parenthesized(inner)
	} else {
		p.printExpr(inner, ast.PrecMember)
	}
	if data.HasArgs {
		p.printArgs(data.Args)
	}
}

func (p *printer) printArray(id ast.ExprID) {
	data, _ := p.builder.Exprs.Array(id)
	w := p.writer
	w.Token("[")
	for i, e := range data.Elems {
		if i > 0 {
			p.comma()
		}
		if e.IsValid() {
			p.printExpr(e, ast.PrecAssign)
		}
	}
	if n := len(data.Elems); n > 0 && !data.Elems[n-1].IsValid() {
		// trailing hole
		w.Token(",")
	}
	w.Token("]")
}

func (p *printer) printTemplate(id ast.ExprID) {
	data, ok := p.builder.Exprs.Template(id)
	if !ok {
		p.missing++
		return
	}
	w := p.writer
	w.Token("`")
	for i, q := range data.Quasis {
		w.Raw(q.Raw)
		if i < len(data.Exprs) {
			w.Raw("${")
			p.printExpr(data.Exprs[i], ast.PrecLowest)
			w.Raw("}")
		}
	}
	w.Raw("`")
}
