package token

import "strconv"

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	PrivateName: "PrivateName",
	NumberLit:   "NumberLit",
	BigIntLit:   "BigIntLit",
	StringLit:   "StringLit",
	TemplateLit: "TemplateLit",
	RegExpLit:   "RegExpLit",

	LBrace:      "{",
	RBrace:      "}",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	Ellipsis:    "...",
	Question:    "?",
	QuestionDot: "?.",
	Colon:       ":",
	Arrow:       "=>",

	Assign:           "=",
	EqEq:             "==",
	EqEqEq:           "===",
	BangEq:           "!=",
	BangEqEq:         "!==",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Shl:              "<<",
	Shr:              ">>",
	UShr:             ">>>",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	StarStar:         "**",
	PlusPlus:         "++",
	MinusMinus:       "--",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Bang:             "!",
	Tilde:            "~",
	AndAnd:           "&&",
	OrOr:             "||",
	QuestionQuestion: "??",

	PlusAssign:             "+=",
	MinusAssign:            "-=",
	StarAssign:             "*=",
	SlashAssign:            "/=",
	PercentAssign:          "%=",
	StarStarAssign:         "**=",
	ShlAssign:              "<<=",
	ShrAssign:              ">>=",
	UShrAssign:             ">>>=",
	AmpAssign:              "&=",
	PipeAssign:             "|=",
	CaretAssign:            "^=",
	AndAndAssign:           "&&=",
	OrOrAssign:             "||=",
	QuestionQuestionAssign: "??=",
}

// String returns the punctuator spelling for operators, the keyword for
// keywords and the constant name for everything else.
func (k Kind) String() string {
	if k.IsKeyword() {
		return keywordNames[k]
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > kwStart && k < kwEnd }

// IsAssign reports whether k is `=` or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k == Assign || (k >= PlusAssign && k <= QuestionQuestionAssign)
}
