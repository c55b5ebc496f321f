package ast

import (
	"jsfront/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprThis
	ExprSuper
	ExprArray
	ExprObject
	ExprFunc
	ExprArrow
	ExprClass
	ExprTemplate
	ExprTaggedTemplate
	ExprCall
	ExprNew
	ExprMember
	ExprUnary
	ExprUpdate
	ExprBinary
	ExprLogical
	ExprAssign
	ExprCond
	ExprSeq
	ExprSpread
	ExprParen
)

var exprKindNames = [...]string{
	ExprIdent:          "Identifier",
	ExprLit:            "Literal",
	ExprThis:           "ThisExpression",
	ExprSuper:          "Super",
	ExprArray:          "ArrayLiteral",
	ExprObject:         "ObjectLiteral",
	ExprFunc:           "FunctionExpression",
	ExprArrow:          "ArrowFunction",
	ExprClass:          "ClassExpression",
	ExprTemplate:       "TemplateLiteral",
	ExprTaggedTemplate: "TaggedTemplateExpression",
	ExprCall:           "CallExpression",
	ExprNew:            "NewExpression",
	ExprMember:         "MemberExpression",
	ExprUnary:          "UnaryExpression",
	ExprUpdate:         "UpdateExpression",
	ExprBinary:         "BinaryExpression",
	ExprLogical:        "LogicalExpression",
	ExprAssign:         "AssignmentExpression",
	ExprCond:           "ConditionalExpression",
	ExprSeq:            "SequenceExpression",
	ExprSpread:         "SpreadElement",
	ExprParen:          "ParenthesizedExpression",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprLitKind uint8

const (
	LitNumber ExprLitKind = iota
	LitBigInt
	LitString
	LitTrue
	LitFalse
	LitNull
	LitRegExp
)

func (k ExprLitKind) String() string {
	switch k {
	case LitNumber:
		return "number"
	case LitBigInt:
		return "bigint"
	case LitString:
		return "string"
	case LitTrue, LitFalse:
		return "boolean"
	case LitNull:
		return "null"
	case LitRegExp:
		return "regexp"
	}
	return "?"
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData keeps the raw source text of the literal.
type ExprLiteralData struct {
	Kind ExprLitKind
	Raw  source.StringID
}

// ExprArrayData elements may be NoExprID for holes ([a, , b]).
type ExprArrayData struct {
	Elems []ExprID
}

type ExprObjectData struct {
	Props []Property
}

// TemplateQuasi is one literal chunk of a template; Raw is the text between
// delimiters exactly as written.
type TemplateQuasi struct {
	Raw  string
	Span source.Span
}

// ExprTemplateData interleaves quasis and expressions:
// Quasis[0] Exprs[0] Quasis[1] ... Quasis[n]; len(Quasis) == len(Exprs)+1.
type ExprTemplateData struct {
	Quasis []TemplateQuasi
	Exprs  []ExprID
}

type ExprTaggedTemplateData struct {
	Tag   ExprID
	Quasi ExprID // всегда ExprTemplate
}

type ExprCallData struct {
	Callee   ExprID
	Args     []ExprID
	Optional bool // a?.()
}

type ExprNewData struct {
	Callee ExprID
	Args   []ExprID
	// HasArgs is false for `new Foo` without parentheses.
	HasArgs bool
}

// ExprMemberData covers a.b, a[b], a.#p and their optional forms.
type ExprMemberData struct {
	Object ExprID
	// Property is set for dotted access; Computed for bracket access.
	Property     source.StringID
	PropertySpan source.Span
	Computed     ExprID
	Private      bool
	Optional     bool
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprUpdateData struct {
	Op      UpdateOp
	Prefix  bool
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprAssignData struct {
	Op     AssignOp
	Target ExprID
	Value  ExprID
}

type ExprCondData struct {
	Test ExprID
	Then ExprID
	Else ExprID
}

type ExprSeqData struct {
	Exprs []ExprID
}

// ExprWrapData backs spread and parenthesized expressions.
type ExprWrapData struct {
	Inner ExprID
}
