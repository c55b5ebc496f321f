package token

import (
	"jsfront/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal value.
// true/false/null are keywords and count as literals too.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, BigIntLit, StringLit, TemplateLit, RegExpLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LBrace && t.Kind <= QuestionQuestionAssign
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentNamed reports whether the token is the identifier name.
// Used for contextual words like `of` and `static`.
func (t Token) IsIdentNamed(name string) bool { return t.Kind == Ident && t.Text == name }

// IsName reports whether the token can be used as a property name after `.`
// or in an object literal key position: identifiers and any reserved word.
func (t Token) IsName() bool { return t.Kind == Ident || t.Kind.IsKeyword() }

// NewlineBefore reports whether a line terminator precedes the token.
func (t Token) NewlineBefore() bool {
	for _, tr := range t.Leading {
		if tr.HasLineTerminator() {
			return true
		}
	}
	return false
}
