package ast

import (
	"jsfront/internal/source"
)

type Hints struct{ Files, Stmts, Exprs uint }

// Builder owns every node of one parse. It is not safe for concurrent use;
// parallel pipelines each get their own Builder.
type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Funcs   *Funcs
	Classes *Classes
	// StringsInterner holds identifier names and literal texts.
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Funcs:           NewFuncs(hints.Stmts / 4),
		Classes:         NewClasses(hints.Stmts / 16),
		StringsInterner: interner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Body = append(f.Body, stmt)
}

// Name returns the interned string or "" for NoStringID.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}

// Intern is a shortcut for b.StringsInterner.Intern.
func (b *Builder) Intern(s string) source.StringID {
	return b.StringsInterner.Intern(s)
}
