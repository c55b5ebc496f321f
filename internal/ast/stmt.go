package ast

import (
	"jsfront/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtVarDecl
	StmtFuncDecl
	StmtClassDecl
	StmtBlock
	StmtEmpty
	StmtReturn
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtForIn
	StmtForOf
	StmtBreak
	StmtContinue
	StmtThrow
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "ExpressionStatement"
	case StmtVarDecl:
		return "VariableDeclaration"
	case StmtFuncDecl:
		return "FunctionDeclaration"
	case StmtClassDecl:
		return "ClassDeclaration"
	case StmtBlock:
		return "BlockStatement"
	case StmtEmpty:
		return "EmptyStatement"
	case StmtReturn:
		return "ReturnStatement"
	case StmtIf:
		return "IfStatement"
	case StmtWhile:
		return "WhileStatement"
	case StmtDoWhile:
		return "DoWhileStatement"
	case StmtFor:
		return "ForStatement"
	case StmtForIn:
		return "ForInStatement"
	case StmtForOf:
		return "ForOfStatement"
	case StmtBreak:
		return "BreakStatement"
	case StmtContinue:
		return "ContinueStatement"
	case StmtThrow:
		return "ThrowStatement"
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	default:
		return "var"
	}
}

type VarDeclarator struct {
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID
	Span     source.Span
}

type VarDeclData struct {
	Kind  VarKind
	Decls []VarDeclarator
}

type ExprStmtData struct{ Expr ExprID }

type BlockData struct{ Stmts []StmtID }

// ArgStmtData backs return and throw; Arg may be NoExprID for return.
type ArgStmtData struct{ Arg ExprID }

type IfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// LoopData backs while and do-while.
type LoopData struct {
	Cond ExprID
	Body StmtID
}

type ForData struct {
	// Init is a VarDecl or Expr statement, or NoStmtID.
	Init   StmtID
	Test   ExprID
	Update ExprID
	Body   StmtID
}

// ForInOfData backs for-in and for-of. Exactly one of Decl and Target is set.
type ForInOfData struct {
	Decl   StmtID
	Target ExprID
	Right  ExprID
	Body   StmtID
}

type Stmts struct {
	Arena    *Arena[Stmt]
	Exprs    *Arena[ExprStmtData]
	VarDecls *Arena[VarDeclData]
	Blocks   *Arena[BlockData]
	Args     *Arena[ArgStmtData]
	Ifs      *Arena[IfData]
	Loops    *Arena[LoopData]
	Fors     *Arena[ForData]
	ForInOfs *Arena[ForInOfData]
	// FuncDecl и ClassDecl хранят ID напрямую в Payload
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Exprs:    NewArena[ExprStmtData](capHint),
		VarDecls: NewArena[VarDeclData](capHint / 2),
		Blocks:   NewArena[BlockData](capHint / 2),
		Args:     NewArena[ArgStmtData](capHint / 4),
		Ifs:      NewArena[IfData](capHint / 4),
		Loops:    NewArena[LoopData](capHint / 8),
		Fors:     NewArena[ForData](capHint / 8),
		ForInOfs: NewArena[ForInOfData](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payloadOf(id StmtID, kinds ...StmtKind) (PayloadID, bool) {
	st := s.Get(id)
	if st == nil {
		return NoPayloadID, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return st.Payload, true
		}
	}
	return NoPayloadID, false
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, PayloadID(s.Exprs.Allocate(ExprStmtData{Expr: expr})))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmtData, bool) {
	p, ok := s.payloadOf(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(uint32(p)), true
}

func (s *Stmts) NewVarDecl(span source.Span, kind VarKind, decls []VarDeclarator) StmtID {
	return s.new(StmtVarDecl, span, PayloadID(s.VarDecls.Allocate(VarDeclData{Kind: kind, Decls: decls})))
}

func (s *Stmts) VarDecl(id StmtID) (*VarDeclData, bool) {
	p, ok := s.payloadOf(id, StmtVarDecl)
	if !ok {
		return nil, false
	}
	return s.VarDecls.Get(uint32(p)), true
}

func (s *Stmts) NewFuncDecl(span source.Span, fn FuncID) StmtID {
	return s.new(StmtFuncDecl, span, PayloadID(fn))
}

func (s *Stmts) FuncDecl(id StmtID) (FuncID, bool) {
	p, ok := s.payloadOf(id, StmtFuncDecl)
	return FuncID(p), ok
}

func (s *Stmts) NewClassDecl(span source.Span, class ClassID) StmtID {
	return s.new(StmtClassDecl, span, PayloadID(class))
}

func (s *Stmts) ClassDecl(id StmtID) (ClassID, bool) {
	p, ok := s.payloadOf(id, StmtClassDecl)
	return ClassID(p), ok
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, PayloadID(s.Blocks.Allocate(BlockData{Stmts: stmts})))
}

func (s *Stmts) Block(id StmtID) (*BlockData, bool) {
	p, ok := s.payloadOf(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(uint32(p)), true
}

func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}

// NewJump creates break or continue.
func (s *Stmts) NewJump(span source.Span, kind StmtKind) StmtID {
	return s.new(kind, span, NoPayloadID)
}

func (s *Stmts) NewReturn(span source.Span, arg ExprID) StmtID {
	return s.new(StmtReturn, span, PayloadID(s.Args.Allocate(ArgStmtData{Arg: arg})))
}

func (s *Stmts) NewThrow(span source.Span, arg ExprID) StmtID {
	return s.new(StmtThrow, span, PayloadID(s.Args.Allocate(ArgStmtData{Arg: arg})))
}

// Arg returns the payload of return and throw statements.
func (s *Stmts) Arg(id StmtID) (*ArgStmtData, bool) {
	p, ok := s.payloadOf(id, StmtReturn, StmtThrow)
	if !ok {
		return nil, false
	}
	return s.Args.Get(uint32(p)), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, PayloadID(s.Ifs.Allocate(IfData{Cond: cond, Then: then, Else: els})))
}

func (s *Stmts) If(id StmtID) (*IfData, bool) {
	p, ok := s.payloadOf(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(uint32(p)), true
}

// NewLoop creates while or do-while.
func (s *Stmts) NewLoop(span source.Span, kind StmtKind, cond ExprID, body StmtID) StmtID {
	return s.new(kind, span, PayloadID(s.Loops.Allocate(LoopData{Cond: cond, Body: body})))
}

func (s *Stmts) Loop(id StmtID) (*LoopData, bool) {
	p, ok := s.payloadOf(id, StmtWhile, StmtDoWhile)
	if !ok {
		return nil, false
	}
	return s.Loops.Get(uint32(p)), true
}

func (s *Stmts) NewFor(span source.Span, data ForData) StmtID {
	return s.new(StmtFor, span, PayloadID(s.Fors.Allocate(data)))
}

func (s *Stmts) For(id StmtID) (*ForData, bool) {
	p, ok := s.payloadOf(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(uint32(p)), true
}

// NewForInOf creates for-in or for-of depending on kind.
func (s *Stmts) NewForInOf(span source.Span, kind StmtKind, data ForInOfData) StmtID {
	return s.new(kind, span, PayloadID(s.ForInOfs.Allocate(data)))
}

func (s *Stmts) ForInOf(id StmtID) (*ForInOfData, bool) {
	p, ok := s.payloadOf(id, StmtForIn, StmtForOf)
	if !ok {
		return nil, false
	}
	return s.ForInOfs.Get(uint32(p)), true
}
