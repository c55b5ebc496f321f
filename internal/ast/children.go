package ast

import (
	"jsfront/internal/source"
)

// Node addresses one statement or expression; exactly one field is set.
type Node struct {
	Stmt StmtID
	Expr ExprID
}

func StmtNode(id StmtID) Node { return Node{Stmt: id} }
func ExprNode(id ExprID) Node { return Node{Expr: id} }

func (n Node) IsValid() bool { return n.Stmt.IsValid() || n.Expr.IsValid() }

// Span returns the source span of n.
func (b *Builder) Span(n Node) source.Span {
	if n.Stmt.IsValid() {
		if st := b.Stmts.Get(n.Stmt); st != nil {
			return st.Span
		}
	}
	if n.Expr.IsValid() {
		if ex := b.Exprs.Get(n.Expr); ex != nil {
			return ex.Span
		}
	}
	return source.Span{}
}

// Children lists the direct children of n in source order. Functions and
// classes are not nodes of their own: their parameters, bodies and members
// are children of the statement or expression that holds them.
func (b *Builder) Children(n Node) []Node {
	var out []Node
	add := func(id ExprID) {
		if id.IsValid() {
			out = append(out, ExprNode(id))
		}
	}
	addStmt := func(id StmtID) {
		if id.IsValid() {
			out = append(out, StmtNode(id))
		}
	}
	addFunc := func(id FuncID) {
		fn := b.Funcs.Get(id)
		if fn == nil {
			return
		}
		for _, p := range fn.Params {
			add(p.Default)
		}
		addStmt(fn.Body)
		add(fn.ExprBody)
	}
	addClass := func(id ClassID) {
		cls := b.Classes.Get(id)
		if cls == nil {
			return
		}
		add(cls.Super)
		for i := range cls.Members {
			m := &cls.Members[i]
			add(m.Key.Computed)
			add(m.Value)
			addFunc(m.Func)
		}
	}

	if n.Stmt.IsValid() {
		st := b.Stmts.Get(n.Stmt)
		if st == nil {
			return nil
		}
		switch st.Kind {
		case StmtExpr:
			data, _ := b.Stmts.Expr(n.Stmt)
			add(data.Expr)
		case StmtVarDecl:
			data, _ := b.Stmts.VarDecl(n.Stmt)
			for _, d := range data.Decls {
				add(d.Init)
			}
		case StmtFuncDecl:
			fn, _ := b.Stmts.FuncDecl(n.Stmt)
			addFunc(fn)
		case StmtClassDecl:
			cls, _ := b.Stmts.ClassDecl(n.Stmt)
			addClass(cls)
		case StmtBlock:
			data, _ := b.Stmts.Block(n.Stmt)
			for _, s := range data.Stmts {
				addStmt(s)
			}
		case StmtReturn, StmtThrow:
			data, _ := b.Stmts.Arg(n.Stmt)
			add(data.Arg)
		case StmtIf:
			data, _ := b.Stmts.If(n.Stmt)
			add(data.Cond)
			addStmt(data.Then)
			addStmt(data.Else)
		case StmtWhile:
			data, _ := b.Stmts.Loop(n.Stmt)
			add(data.Cond)
			addStmt(data.Body)
		case StmtDoWhile:
			data, _ := b.Stmts.Loop(n.Stmt)
			addStmt(data.Body)
			add(data.Cond)
		case StmtFor:
			data, _ := b.Stmts.For(n.Stmt)
			addStmt(data.Init)
			add(data.Test)
			add(data.Update)
			addStmt(data.Body)
		case StmtForIn, StmtForOf:
			data, _ := b.Stmts.ForInOf(n.Stmt)
			addStmt(data.Decl)
			add(data.Target)
			add(data.Right)
			addStmt(data.Body)
		}
		return out
	}

	ex := b.Exprs.Get(n.Expr)
	if ex == nil {
		return nil
	}
	switch ex.Kind {
	case ExprArray:
		data, _ := b.Exprs.Array(n.Expr)
		for _, el := range data.Elems {
			add(el)
		}
	case ExprObject:
		data, _ := b.Exprs.Object(n.Expr)
		for i := range data.Props {
			p := &data.Props[i]
			add(p.Key.Computed)
			add(p.Value)
			addFunc(p.Func)
		}
	case ExprFunc, ExprArrow:
		fn, _ := b.Exprs.Func(n.Expr)
		addFunc(fn)
	case ExprClass:
		cls, _ := b.Exprs.Class(n.Expr)
		addClass(cls)
	case ExprTemplate:
		data, _ := b.Exprs.Template(n.Expr)
		for _, e := range data.Exprs {
			add(e)
		}
	case ExprTaggedTemplate:
		data, _ := b.Exprs.TaggedTemplate(n.Expr)
		add(data.Tag)
		add(data.Quasi)
	case ExprCall:
		data, _ := b.Exprs.Call(n.Expr)
		add(data.Callee)
		for _, a := range data.Args {
			add(a)
		}
	case ExprNew:
		data, _ := b.Exprs.New(n.Expr)
		add(data.Callee)
		for _, a := range data.Args {
			add(a)
		}
	case ExprMember:
		data, _ := b.Exprs.Member(n.Expr)
		add(data.Object)
		add(data.Computed)
	case ExprUnary:
		data, _ := b.Exprs.Unary(n.Expr)
		add(data.Operand)
	case ExprUpdate:
		data, _ := b.Exprs.Update(n.Expr)
		add(data.Operand)
	case ExprBinary, ExprLogical:
		data, _ := b.Exprs.Binary(n.Expr)
		add(data.Left)
		add(data.Right)
	case ExprAssign:
		data, _ := b.Exprs.Assign(n.Expr)
		add(data.Target)
		add(data.Value)
	case ExprCond:
		data, _ := b.Exprs.Cond(n.Expr)
		add(data.Test)
		add(data.Then)
		add(data.Else)
	case ExprSeq:
		data, _ := b.Exprs.Seq(n.Expr)
		for _, e := range data.Exprs {
			add(e)
		}
	case ExprSpread, ExprParen:
		data, _ := b.Exprs.Wrap(n.Expr)
		add(data.Inner)
	}
	return out
}

// Inspect walks the file depth-first in source order. Returning false from
// fn skips the children of that node.
func (b *Builder) Inspect(file FileID, fn func(n, parent Node) bool) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	var walk func(n, parent Node)
	walk = func(n, parent Node) {
		if !fn(n, parent) {
			return
		}
		for _, c := range b.Children(n) {
			walk(c, n)
		}
	}
	for _, st := range f.Body {
		walk(StmtNode(st), Node{})
	}
}
