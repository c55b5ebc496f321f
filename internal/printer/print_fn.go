package printer

import (
	"jsfront/internal/ast"
	"jsfront/internal/source"
)

func (p *printer) printFunction(id ast.FuncID) {
	fn := p.builder.Funcs.Get(id)
	if fn == nil {
		p.missing++
		return
	}
	w := p.writer
	w.Token("function")
	w.Space()
	if fn.Name != source.NoStringID {
		w.Token(p.name(fn.Name))
	}
	p.printFunctionTail(fn)
}

// printFunctionTail prints `(params) { body }`.
func (p *printer) printFunctionTail(fn *ast.FuncData) {
	p.printParams(fn.Params)
	p.writer.Space()
	p.printBlock(fn.Body)
}

func (p *printer) printParams(params []ast.Param) {
	w := p.writer
	w.Token("(")
	for i, prm := range params {
		if i > 0 {
			p.comma()
		}
		if prm.Rest {
			w.Token("...")
		}
		w.Token(p.name(prm.Name))
		if prm.Default.IsValid() {
			p.assignOp("=")
			p.printExpr(prm.Default, ast.PrecAssign)
		}
	}
	w.Token(")")
}

func (p *printer) printArrow(id ast.FuncID) {
	fn := p.builder.Funcs.Get(id)
	if fn == nil {
		p.missing++
		return
	}
	p.printParams(fn.Params)
	p.assignOp("=>")
	if !fn.ExprBody.IsValid() {
		p.printBlock(fn.Body)
		return
	}
	if p.leftmostKind(fn.ExprBody) == ast.ExprObject {
		p.parenthesized(fn.ExprBody)
		return
	}
	p.printExpr(fn.ExprBody, ast.PrecAssign)
}

func (p *printer) printKey(key ast.PropKey) {
	if key.Kind == ast.KeyComputed {
		p.writer.Token("[")
		p.printExpr(key.Computed, ast.PrecAssign)
		p.writer.Token("]")
		return
	}
	p.writer.Token(p.name(key.Name))
}

func (p *printer) printObject(id ast.ExprID) {
	data, _ := p.builder.Exprs.Object(id)
	w := p.writer
	w.Token("{")
	if len(data.Props) == 0 {
		w.Token("}")
		return
	}
	w.Newline()
	w.IndentPush()
	for i := range data.Props {
		if i > 0 {
			w.Token(",")
			w.Newline()
		}
		p.printProperty(&data.Props[i])
	}
	w.Newline()
	w.IndentPop()
	w.Token("}")
}

func (p *printer) printProperty(prop *ast.Property) {
	w := p.writer
	switch prop.Kind {
	case ast.PropInit:
		p.printKey(prop.Key)
		w.Token(":")
		w.Space()
		p.printExpr(prop.Value, ast.PrecAssign)
	case ast.PropShorthand:
		p.printExpr(prop.Value, ast.PrecAssign)
	case ast.PropSpread:
		w.Token("...")
		p.printExpr(prop.Value, ast.PrecAssign)
	case ast.PropMethod, ast.PropGet, ast.PropSet:
		switch prop.Kind {
		case ast.PropGet:
			w.Token("get")
			w.Space()
		case ast.PropSet:
			w.Token("set")
			w.Space()
		}
		p.printKey(prop.Key)
		p.printMethodTail(prop.Func)
	}
}

func (p *printer) printMethodTail(id ast.FuncID) {
	fn := p.builder.Funcs.Get(id)
	if fn == nil {
		p.missing++
		return
	}
	p.printFunctionTail(fn)
}

func (p *printer) printClass(id ast.ClassID) {
	cls := p.builder.Classes.Get(id)
	if cls == nil {
		p.missing++
		return
	}
	w := p.writer
	w.Token("class")
	if cls.Name != source.NoStringID {
		w.Space()
		w.Token(p.name(cls.Name))
	}
	if cls.Super.IsValid() {
		w.Space()
		w.Token("extends")
		w.Space()
		p.printExpr(cls.Super, ast.PrecCall)
	}
	w.Space()
	w.Token("{")
	if len(cls.Members) == 0 {
		w.Token("}")
		return
	}
	w.Newline()
	w.IndentPush()
	for i := range cls.Members {
		p.printClassMember(&cls.Members[i])
		w.Newline()
	}
	w.IndentPop()
	w.Token("}")
}

func (p *printer) printClassMember(m *ast.ClassMember) {
	w := p.writer
	if m.Static {
		w.Token("static")
		w.Space()
	}
	switch m.Kind {
	case ast.MemberField:
		p.printKey(m.Key)
		if m.Value.IsValid() {
			p.assignOp("=")
			p.printExpr(m.Value, ast.PrecAssign)
		}
		w.Token(";")
	case ast.MemberGetter:
		w.Token("get")
		w.Space()
		p.printKey(m.Key)
		p.printMethodTail(m.Func)
	case ast.MemberSetter:
		w.Token("set")
		w.Space()
		p.printKey(m.Key)
		p.printMethodTail(m.Func)
	default:
		p.printKey(m.Key)
		p.printMethodTail(m.Func)
	}
}
