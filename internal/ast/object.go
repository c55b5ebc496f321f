package ast

import (
	"jsfront/internal/source"
)

type PropKeyKind uint8

const (
	KeyIdent PropKeyKind = iota
	KeyString
	KeyNumber
	KeyComputed
	// KeyPrivate is only valid for class members.
	KeyPrivate
)

// PropKey names an object property or class member. Name keeps the raw
// source text (quotes included for strings, '#' for private names).
type PropKey struct {
	Kind     PropKeyKind
	Name     source.StringID
	Computed ExprID
	Span     source.Span
}

type PropKind uint8

const (
	// PropInit is `key: value`.
	PropInit PropKind = iota
	// PropShorthand is `{ a }`; Value holds the identifier expression.
	PropShorthand
	// PropMethod is `key() {}`; Func holds the method.
	PropMethod
	PropGet
	PropSet
	// PropSpread is `...expr`; Value holds the argument.
	PropSpread
)

// Property is one object literal member; properties keep source order.
type Property struct {
	Kind  PropKind
	Key   PropKey
	Value ExprID
	Func  FuncID
	Span  source.Span
}
