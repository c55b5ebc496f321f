package ast

import (
	"jsfront/internal/source"
)

type FuncKind uint8

const (
	// FuncPlain is a function declaration or expression.
	FuncPlain FuncKind = iota
	FuncArrow
	// FuncMethod is an object or class method, getter, setter or constructor.
	FuncMethod
)

// Param is one formal parameter. Destructuring patterns are not supported.
type Param struct {
	Name     source.StringID
	NameSpan source.Span
	Default  ExprID
	Rest     bool
	Span     source.Span
}

// FuncData is shared by function declarations, function expressions, arrow
// functions and methods.
type FuncData struct {
	Kind     FuncKind
	Name     source.StringID // NoStringID для анонимных
	NameSpan source.Span
	Params   []Param
	// Body is a block statement; for concise arrows it is NoStmtID and
	// ExprBody holds the expression.
	Body     StmtID
	ExprBody ExprID
	Span     source.Span
}

type Funcs struct {
	Arena *Arena[FuncData]
}

func NewFuncs(capHint uint) *Funcs {
	return &Funcs{Arena: NewArena[FuncData](capHint)}
}

func (f *Funcs) New(data FuncData) FuncID {
	return FuncID(f.Arena.Allocate(data))
}

func (f *Funcs) Get(id FuncID) *FuncData {
	return f.Arena.Get(uint32(id))
}
