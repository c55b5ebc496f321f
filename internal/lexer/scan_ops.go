package lexer

import (
	"jsfront/internal/token"
)

type opEntry struct {
	seq  string
	kind token.Kind
}

// Порядок важен: жадно, от длинных к коротким.
var opTable = [...]opEntry{
	{">>>=", token.UShrAssign},

	{"...", token.Ellipsis},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"**=", token.StarStarAssign},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{">>>", token.UShr},
	{"&&=", token.AndAndAssign},
	{"||=", token.OrOrAssign},
	{"??=", token.QuestionQuestionAssign},

	{"=>", token.Arrow},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"**", token.StarStar},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"??", token.QuestionQuestion},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},

	{"{", token.LBrace},
	{"}", token.RBrace},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{";", token.Semicolon},
	{",", token.Comma},
	{".", token.Dot},
	{"?", token.Question},
	{":", token.Colon},
	{"=", token.Assign},
	{"<", token.Lt},
	{">", token.Gt},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"!", token.Bang},
	{"~", token.Tilde},
}

// scanOperatorOrPunct выбирает самый длинный оператор из opTable.
// Отдельно: "?." не считается оператором, если дальше цифра (a?.5:0).
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '?' && b1 == '.' && !isDec(lx.cursor.PeekAt(2)) {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.emit(token.QuestionDot, start)
	}

	rest := lx.cursor.Rest()
	for _, op := range opTable {
		if len(rest) >= len(op.seq) && string(rest[:len(op.seq)]) == op.seq {
			lx.cursor.Off += uint32(len(op.seq)) //nolint:gosec // operators are at most 4 bytes
			return lx.emit(op.kind, start)
		}
	}
	return lx.scanUnknown()
}
