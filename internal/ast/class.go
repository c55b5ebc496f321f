package ast

import (
	"jsfront/internal/source"
)

type ClassMemberKind uint8

const (
	// MemberField is a field declaration, with or without initializer.
	MemberField ClassMemberKind = iota
	// MemberMethod is a method declaration, constructor included.
	MemberMethod
	MemberGetter
	MemberSetter
)

type ClassMember struct {
	Kind   ClassMemberKind
	Static bool
	Key    PropKey
	// Value is the field initializer or NoExprID.
	Value ExprID
	// Func is set for methods, getters and setters.
	Func FuncID
	Span source.Span
}

// IsConstructor reports a method named constructor.
func (m *ClassMember) IsConstructor(b *Builder) bool {
	return m.Kind == MemberMethod && !m.Static && m.Key.Kind != KeyComputed &&
		(b.Name(m.Key.Name) == "constructor" || b.Name(m.Key.Name) == `"constructor"` || b.Name(m.Key.Name) == `'constructor'`)
}

// ClassData backs both class declarations and class expressions.
// Members keep source order.
type ClassData struct {
	Name     source.StringID
	NameSpan source.Span
	Super    ExprID
	Members  []ClassMember
	Span     source.Span
}

type Classes struct {
	Arena *Arena[ClassData]
}

func NewClasses(capHint uint) *Classes {
	return &Classes{Arena: NewArena[ClassData](capHint)}
}

func (c *Classes) New(data ClassData) ClassID {
	return ClassID(c.Arena.Allocate(data))
}

func (c *Classes) Get(id ClassID) *ClassData {
	return c.Arena.Get(uint32(id))
}
