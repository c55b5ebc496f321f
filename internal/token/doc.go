// Package token defines lexical token kinds and trivia for the JavaScript front-end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments never appear in the token stream; they are
//     attached to the following token as leading Trivia.
//   - Contextual words (of, get, set, static, async) are identifiers; the
//     parser recognises them by text. `let` has its own kind but may still be
//     used as an identifier where the grammar allows it.
//   - A template literal is a single TemplateLit token from the opening
//     backtick to the closing one, interpolations included.
package token
