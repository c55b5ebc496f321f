package token

import (
	"strings"

	"jsfront/internal/source"
)

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaHashbang is a `#!` line at the very start of a file.
	TriviaHashbang
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaHashbang:
		return "Hashbang"
	default:
		return "TriviaKind(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// HasLineTerminator reports whether the trivia breaks a line. A block
// comment spanning lines counts as a line terminator.
func (t Trivia) HasLineTerminator() bool {
	switch t.Kind {
	case TriviaNewline:
		return true
	case TriviaBlockComment:
		return strings.ContainsAny(t.Text, "\n\u2028\u2029")
	default:
		return false
	}
}
