package printer

import (
	"jsfront/internal/ast"
)

func (p *printer) printStmt(id ast.StmtID) {
	st := p.builder.Stmts.Get(id)
	if st == nil {
		p.missing++
		return
	}
	w := p.writer
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := p.builder.Stmts.Expr(id)
		p.printExprStatement(data.Expr)
	case ast.StmtVarDecl:
		p.printVarDecl(id, false)
		w.Token(";")
	case ast.StmtFuncDecl:
		fn, _ := p.builder.Stmts.FuncDecl(id)
		p.printFunction(fn)
	case ast.StmtClassDecl:
		cls, _ := p.builder.Stmts.ClassDecl(id)
		p.printClass(cls)
	case ast.StmtBlock:
		p.printBlock(id)
	case ast.StmtEmpty:
		w.Token(";")
	case ast.StmtReturn, ast.StmtThrow:
		data, _ := p.builder.Stmts.Arg(id)
		if st.Kind == ast.StmtReturn {
			w.Token("return")
		} else {
			w.Token("throw")
		}
		if data.Arg.IsValid() {
			w.Space()
			p.printExpr(data.Arg, ast.PrecLowest)
		}
		w.Token(";")
	case ast.StmtBreak:
		w.Token("break;")
	case ast.StmtContinue:
		w.Token("continue;")
	case ast.StmtIf:
		p.printIf(id)
	case ast.StmtWhile:
		data, _ := p.builder.Stmts.Loop(id)
		w.Token("while")
		p.printHeader(data.Cond)
		p.printBody(data.Body)
	case ast.StmtDoWhile:
		data, _ := p.builder.Stmts.Loop(id)
		w.Token("do")
		p.printBody(data.Body)
		p.afterBody(data.Body)
		w.Token("while")
		p.printHeader(data.Cond)
		w.Token(";")
	case ast.StmtFor:
		p.printFor(id)
	case ast.StmtForIn, ast.StmtForOf:
		p.printForInOf(id, st.Kind)
	default:
		p.missing++
	}
}

// printExprStatement wraps the expression when its first token would be
// read as a declaration or a block.
func (p *printer) printExprStatement(id ast.ExprID) {
	if p.needsStatementParens(id) {
		p.writer.Token("(")
		p.printExpr(id, ast.PrecLowest)
		p.writer.Token(")")
	} else {
		p.printExpr(id, ast.PrecLowest)
	}
	p.writer.Token(";")
}

func (p *printer) printVarDecl(id ast.StmtID, inFor bool) {
	data, ok := p.builder.Stmts.VarDecl(id)
	if !ok {
		p.missing++
		return
	}
	w := p.writer
	w.Token(data.Kind.String())
	w.Space()
	for i, d := range data.Decls {
		if i > 0 {
			p.comma()
		}
		w.Token(p.name(d.Name))
		if d.Init.IsValid() {
			p.assignOp("=")
			if inFor && p.containsIn(d.Init) {
				p.parenthesized(d.Init)
			} else {
				p.printExpr(d.Init, ast.PrecAssign)
			}
		}
	}
}

func (p *printer) printBlock(id ast.StmtID) {
	data, ok := p.builder.Stmts.Block(id)
	if !ok {
		p.missing++
		return
	}
	p.printStmtList(data.Stmts)
}

// printStmtList prints `{ ... }` with one statement per line.
func (p *printer) printStmtList(stmts []ast.StmtID) {
	w := p.writer
	w.Token("{")
	if len(stmts) == 0 {
		w.Token("}")
		return
	}
	w.Newline()
	w.IndentPush()
	for _, s := range stmts {
		p.printStmt(s)
		w.Newline()
	}
	w.IndentPop()
	w.Token("}")
}

// printHeader prints ` (cond)` after if/while.
func (p *printer) printHeader(cond ast.ExprID) {
	p.writer.Space()
	p.writer.Token("(")
	p.printExpr(cond, ast.PrecLowest)
	p.writer.Token(")")
}

// printBody prints a statement nested under a control header.
func (p *printer) printBody(id ast.StmtID) {
	w := p.writer
	if st := p.builder.Stmts.Get(id); st != nil && st.Kind == ast.StmtBlock {
		w.Space()
		p.printBlock(id)
		return
	}
	if !w.pretty() {
		p.printStmt(id)
		return
	}
	w.Newline()
	w.IndentPush()
	p.printStmt(id)
	w.IndentPop()
}

// afterBody separates a body from a following `else` or `while`.
func (p *printer) afterBody(id ast.StmtID) {
	if st := p.builder.Stmts.Get(id); st != nil && st.Kind == ast.StmtBlock {
		p.writer.Space()
		return
	}
	p.writer.Newline()
}

func (p *printer) printIf(id ast.StmtID) {
	data, _ := p.builder.Stmts.If(id)
	w := p.writer
	w.Token("if")
	p.printHeader(data.Cond)
	if !data.Else.IsValid() {
		p.printBody(data.Then)
		return
	}
	if p.endsWithOpenIf(data.Then) {
		// else would bind to the inner if
		w.Space()
		p.printStmtList([]ast.StmtID{data.Then})
		w.Space()
	} else {
		p.printBody(data.Then)
		p.afterBody(data.Then)
	}
	w.Token("else")
	if st := p.builder.Stmts.Get(data.Else); st != nil && st.Kind == ast.StmtIf {
		w.Space()
		p.printStmt(data.Else)
		return
	}
	p.printBody(data.Else)
}

// endsWithOpenIf reports whether the statement ends in an if without else.
func (p *printer) endsWithOpenIf(id ast.StmtID) bool {
	st := p.builder.Stmts.Get(id)
	if st == nil {
		return false
	}
	switch st.Kind {
	case ast.StmtIf:
		data, _ := p.builder.Stmts.If(id)
		if !data.Else.IsValid() {
			return true
		}
		return p.endsWithOpenIf(data.Else)
	case ast.StmtWhile:
		data, _ := p.builder.Stmts.Loop(id)
		return p.endsWithOpenIf(data.Body)
	case ast.StmtFor:
		data, _ := p.builder.Stmts.For(id)
		return p.endsWithOpenIf(data.Body)
	case ast.StmtForIn, ast.StmtForOf:
		data, _ := p.builder.Stmts.ForInOf(id)
		return p.endsWithOpenIf(data.Body)
	}
	return false
}

func (p *printer) printFor(id ast.StmtID) {
	data, _ := p.builder.Stmts.For(id)
	w := p.writer
	w.Token("for")
	w.Space()
	w.Token("(")
	if data.Init.IsValid() {
		p.printForInit(data.Init)
	}
	w.Token(";")
	if data.Test.IsValid() {
		w.Space()
		p.printExpr(data.Test, ast.PrecLowest)
	}
	w.Token(";")
	if data.Update.IsValid() {
		w.Space()
		p.printExpr(data.Update, ast.PrecLowest)
	}
	w.Token(")")
	p.printBody(data.Body)
}

// printForInit prints the init clause so that no bare `in` leaks into it.
func (p *printer) printForInit(id ast.StmtID) {
	st := p.builder.Stmts.Get(id)
	if st != nil && st.Kind == ast.StmtVarDecl {
		p.printVarDecl(id, true)
		return
	}
	data, ok := p.builder.Stmts.Expr(id)
	if !ok {
		p.missing++
		return
	}
	if p.containsIn(data.Expr) || p.startsWithLetBracket(data.Expr) {
		p.parenthesized(data.Expr)
		return
	}
	p.printExpr(data.Expr, ast.PrecLowest)
}

func (p *printer) printForInOf(id ast.StmtID, kind ast.StmtKind) {
	data, _ := p.builder.Stmts.ForInOf(id)
	w := p.writer
	w.Token("for")
	w.Space()
	w.Token("(")
	if data.Decl.IsValid() {
		p.printVarDecl(data.Decl, true)
	} else {
		p.printExpr(data.Target, ast.PrecCall)
	}
	w.Space()
	if kind == ast.StmtForOf {
		w.Token("of")
		w.Space()
		p.printExpr(data.Right, ast.PrecAssign)
	} else {
		w.Token("in")
		w.Space()
		p.printExpr(data.Right, ast.PrecLowest)
	}
	w.Token(")")
	p.printBody(data.Body)
}
