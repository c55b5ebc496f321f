package ast

import (
	"jsfront/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[ExprIdentData]
	Literals  *Arena[ExprLiteralData]
	Arrays    *Arena[ExprArrayData]
	Objects   *Arena[ExprObjectData]
	Templates *Arena[ExprTemplateData]
	Tagged    *Arena[ExprTaggedTemplateData]
	Calls     *Arena[ExprCallData]
	News      *Arena[ExprNewData]
	Members   *Arena[ExprMemberData]
	Unaries   *Arena[ExprUnaryData]
	Updates   *Arena[ExprUpdateData]
	Binaries  *Arena[ExprBinaryData]
	Assigns   *Arena[ExprAssignData]
	Conds     *Arena[ExprCondData]
	Seqs      *Arena[ExprSeqData]
	Wraps     *Arena[ExprWrapData]
}

// NewExprs creates per-kind arenas preallocated with capHint (default 1<<8).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Literals:  NewArena[ExprLiteralData](capHint / 2),
		Arrays:    NewArena[ExprArrayData](small),
		Objects:   NewArena[ExprObjectData](small),
		Templates: NewArena[ExprTemplateData](small),
		Tagged:    NewArena[ExprTaggedTemplateData](small),
		Calls:     NewArena[ExprCallData](capHint / 4),
		News:      NewArena[ExprNewData](small),
		Members:   NewArena[ExprMemberData](capHint / 4),
		Unaries:   NewArena[ExprUnaryData](small),
		Updates:   NewArena[ExprUpdateData](small),
		Binaries:  NewArena[ExprBinaryData](capHint / 4),
		Assigns:   NewArena[ExprAssignData](small),
		Conds:     NewArena[ExprCondData](small),
		Seqs:      NewArena[ExprSeqData](small),
		Wraps:     NewArena[ExprWrapData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payloadOf(id ExprID, kinds ...ExprKind) (PayloadID, bool) {
	expr := e.Get(id)
	if expr == nil {
		return NoPayloadID, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return expr.Payload, true
		}
	}
	return NoPayloadID, false
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, PayloadID(e.Idents.Allocate(ExprIdentData{Name: name})))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payloadOf(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(uint32(p)), true
}

func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, raw source.StringID) ExprID {
	return e.new(ExprLit, span, PayloadID(e.Literals.Allocate(ExprLiteralData{Kind: kind, Raw: raw})))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payloadOf(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(uint32(p)), true
}

// NewThis and NewSuper carry no payload.
func (e *Exprs) NewThis(span source.Span) ExprID  { return e.new(ExprThis, span, NoPayloadID) }
func (e *Exprs) NewSuper(span source.Span) ExprID { return e.new(ExprSuper, span, NoPayloadID) }

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprArray, span, PayloadID(e.Arrays.Allocate(ExprArrayData{Elems: elems})))
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	p, ok := e.payloadOf(id, ExprArray)
	if !ok {
		return nil, false
	}
	return e.Arrays.Get(uint32(p)), true
}

func (e *Exprs) NewObject(span source.Span, props []Property) ExprID {
	return e.new(ExprObject, span, PayloadID(e.Objects.Allocate(ExprObjectData{Props: props})))
}

func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	p, ok := e.payloadOf(id, ExprObject)
	if !ok {
		return nil, false
	}
	return e.Objects.Get(uint32(p)), true
}

// NewFunc wraps a function expression or arrow; kind is ExprFunc or ExprArrow.
func (e *Exprs) NewFunc(span source.Span, kind ExprKind, fn FuncID) ExprID {
	return e.new(kind, span, PayloadID(fn))
}

// Func returns the function behind ExprFunc and ExprArrow.
func (e *Exprs) Func(id ExprID) (FuncID, bool) {
	p, ok := e.payloadOf(id, ExprFunc, ExprArrow)
	return FuncID(p), ok
}

func (e *Exprs) NewClass(span source.Span, class ClassID) ExprID {
	return e.new(ExprClass, span, PayloadID(class))
}

func (e *Exprs) Class(id ExprID) (ClassID, bool) {
	p, ok := e.payloadOf(id, ExprClass)
	return ClassID(p), ok
}

func (e *Exprs) NewTemplate(span source.Span, quasis []TemplateQuasi, exprs []ExprID) ExprID {
	return e.new(ExprTemplate, span, PayloadID(e.Templates.Allocate(ExprTemplateData{Quasis: quasis, Exprs: exprs})))
}

func (e *Exprs) Template(id ExprID) (*ExprTemplateData, bool) {
	p, ok := e.payloadOf(id, ExprTemplate)
	if !ok {
		return nil, false
	}
	return e.Templates.Get(uint32(p)), true
}

func (e *Exprs) NewTaggedTemplate(span source.Span, tag, quasi ExprID) ExprID {
	return e.new(ExprTaggedTemplate, span, PayloadID(e.Tagged.Allocate(ExprTaggedTemplateData{Tag: tag, Quasi: quasi})))
}

func (e *Exprs) TaggedTemplate(id ExprID) (*ExprTaggedTemplateData, bool) {
	p, ok := e.payloadOf(id, ExprTaggedTemplate)
	if !ok {
		return nil, false
	}
	return e.Tagged.Get(uint32(p)), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID, optional bool) ExprID {
	return e.new(ExprCall, span, PayloadID(e.Calls.Allocate(ExprCallData{Callee: callee, Args: args, Optional: optional})))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payloadOf(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(uint32(p)), true
}

func (e *Exprs) NewNew(span source.Span, callee ExprID, args []ExprID, hasArgs bool) ExprID {
	return e.new(ExprNew, span, PayloadID(e.News.Allocate(ExprNewData{Callee: callee, Args: args, HasArgs: hasArgs})))
}

func (e *Exprs) New(id ExprID) (*ExprNewData, bool) {
	p, ok := e.payloadOf(id, ExprNew)
	if !ok {
		return nil, false
	}
	return e.News.Get(uint32(p)), true
}

func (e *Exprs) NewMember(span source.Span, data ExprMemberData) ExprID {
	return e.new(ExprMember, span, PayloadID(e.Members.Allocate(data)))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payloadOf(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(uint32(p)), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, PayloadID(e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payloadOf(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(uint32(p)), true
}

func (e *Exprs) NewUpdate(span source.Span, op UpdateOp, prefix bool, operand ExprID) ExprID {
	return e.new(ExprUpdate, span, PayloadID(e.Updates.Allocate(ExprUpdateData{Op: op, Prefix: prefix, Operand: operand})))
}

func (e *Exprs) Update(id ExprID) (*ExprUpdateData, bool) {
	p, ok := e.payloadOf(id, ExprUpdate)
	if !ok {
		return nil, false
	}
	return e.Updates.Get(uint32(p)), true
}

// NewBinary creates ExprBinary, or ExprLogical for &&, || and ??.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	kind := ExprBinary
	if op.IsLogical() {
		kind = ExprLogical
	}
	return e.new(kind, span, PayloadID(e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})))
}

// Binary returns the payload of both binary and logical expressions.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payloadOf(id, ExprBinary, ExprLogical)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(uint32(p)), true
}

func (e *Exprs) NewAssign(span source.Span, op AssignOp, target, value ExprID) ExprID {
	return e.new(ExprAssign, span, PayloadID(e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value})))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payloadOf(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(uint32(p)), true
}

func (e *Exprs) NewCond(span source.Span, test, then, els ExprID) ExprID {
	return e.new(ExprCond, span, PayloadID(e.Conds.Allocate(ExprCondData{Test: test, Then: then, Else: els})))
}

func (e *Exprs) Cond(id ExprID) (*ExprCondData, bool) {
	p, ok := e.payloadOf(id, ExprCond)
	if !ok {
		return nil, false
	}
	return e.Conds.Get(uint32(p)), true
}

func (e *Exprs) NewSeq(span source.Span, exprs []ExprID) ExprID {
	return e.new(ExprSeq, span, PayloadID(e.Seqs.Allocate(ExprSeqData{Exprs: exprs})))
}

func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	p, ok := e.payloadOf(id, ExprSeq)
	if !ok {
		return nil, false
	}
	return e.Seqs.Get(uint32(p)), true
}

// NewWrap creates ExprSpread or ExprParen around inner.
func (e *Exprs) NewWrap(span source.Span, kind ExprKind, inner ExprID) ExprID {
	return e.new(kind, span, PayloadID(e.Wraps.Allocate(ExprWrapData{Inner: inner})))
}

func (e *Exprs) Wrap(id ExprID) (*ExprWrapData, bool) {
	p, ok := e.payloadOf(id, ExprSpread, ExprParen)
	if !ok {
		return nil, false
	}
	return e.Wraps.Get(uint32(p)), true
}

// Unparen strips any number of parentheses.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		expr := e.Get(id)
		if expr == nil || expr.Kind != ExprParen {
			return id
		}
		id = e.Wraps.Get(uint32(expr.Payload)).Inner
	}
}
