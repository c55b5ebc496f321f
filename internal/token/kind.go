package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	// PrivateName is a class-private name such as #count.
	PrivateName

	NumberLit
	BigIntLit
	StringLit
	// TemplateLit spans a whole template literal, `${}` parts included.
	TemplateLit
	// RegExpLit is only produced by Lexer.RescanRegExp.
	RegExpLit

	kwStart
	KwVar      // var
	KwLet      // let
	KwConst    // const
	KwFunction // function
	KwClass    // class
	KwExtends  // extends
	KwNew      // new
	KwThis     // this
	KwSuper    // super
	KwReturn   // return
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwDo       // do
	KwFor      // for
	KwIn       // in
	KwBreak    // break
	KwContinue // continue
	KwThrow    // throw
	KwTypeof   // typeof
	KwInstanceof
	KwVoid   // void
	KwDelete // delete
	KwNull   // null
	KwTrue   // true
	KwFalse  // false
	KwSwitch // switch
	KwCase   // case
	KwDefault
	KwTry // try
	KwCatch
	KwFinally
	KwImport
	KwExport
	KwYield
	KwAwait
	KwDebugger
	KwWith
	KwEnum
	kwEnd

	// Punctuation.
	LBrace       // {
	RBrace       // }
	LParen       // (
	RParen       // )
	LBracket     // [
	RBracket     // ]
	Semicolon    // ;
	Comma        // ,
	Dot          // .
	Ellipsis     // ...
	Question     // ?
	QuestionDot  // ?.
	Colon        // :
	Arrow        // =>

	// Operators.
	Assign      // =
	EqEq        // ==
	EqEqEq      // ===
	BangEq      // !=
	BangEqEq    // !==
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	Shl         // <<
	Shr         // >>
	UShr        // >>>
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Percent     // %
	StarStar    // **
	PlusPlus    // ++
	MinusMinus  // --
	Amp         // &
	Pipe        // |
	Caret       // ^
	Bang        // !
	Tilde       // ~
	AndAnd      // &&
	OrOr        // ||
	QuestionQuestion

	// Compound assignment.
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	StarStarAssign
	ShlAssign  // <<=
	ShrAssign  // >>=
	UShrAssign // >>>=
	AmpAssign  // &=
	PipeAssign // |=
	CaretAssign
	AndAndAssign
	OrOrAssign
	QuestionQuestionAssign
)
