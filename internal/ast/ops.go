package ast

// BinaryOp covers arithmetic, bitwise, relational and logical operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpExp
	OpShl
	OpShr
	OpUShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpEq
	OpNotEq
	OpStrictEq
	OpStrictNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpIn
	OpInstanceof
	// логические: отдельный узел ExprLogical
	OpAndAnd
	OpOrOr
	OpCoalesce
)

var binaryOpText = [...]string{
	OpAdd:         "+",
	OpSub:         "-",
	OpMul:         "*",
	OpDiv:         "/",
	OpMod:         "%",
	OpExp:         "**",
	OpShl:         "<<",
	OpShr:         ">>",
	OpUShr:        ">>>",
	OpBitAnd:      "&",
	OpBitOr:       "|",
	OpBitXor:      "^",
	OpEq:          "==",
	OpNotEq:       "!=",
	OpStrictEq:    "===",
	OpStrictNotEq: "!==",
	OpLt:          "<",
	OpLtEq:        "<=",
	OpGt:          ">",
	OpGtEq:        ">=",
	OpIn:          "in",
	OpInstanceof:  "instanceof",
	OpAndAnd:      "&&",
	OpOrOr:        "||",
	OpCoalesce:    "??",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsLogical reports whether op short-circuits.
func (op BinaryOp) IsLogical() bool {
	return op == OpAndAnd || op == OpOrOr || op == OpCoalesce
}

// Precedence levels, higher binds tighter.
const (
	PrecLowest     = 0
	PrecComma      = 1
	PrecAssign     = 2 // также yield, arrow, spread
	PrecCond       = 3
	PrecCoalesce   = 4
	PrecOrOr       = 5
	PrecAndAnd     = 6
	PrecBitOr      = 7
	PrecBitXor     = 8
	PrecBitAnd     = 9
	PrecEquality   = 10
	PrecRelational = 11
	PrecShift      = 12
	PrecAdditive   = 13
	PrecMultiply   = 14
	PrecExp        = 15
	PrecPrefix     = 16
	PrecPostfix    = 17
	PrecNew        = 18
	PrecCall       = 19
	PrecMember     = 20
	PrecPrimary    = 21
)

// Precedence returns the binding power of op.
func (op BinaryOp) Precedence() int {
	switch op {
	case OpCoalesce:
		return PrecCoalesce
	case OpOrOr:
		return PrecOrOr
	case OpAndAnd:
		return PrecAndAnd
	case OpBitOr:
		return PrecBitOr
	case OpBitXor:
		return PrecBitXor
	case OpBitAnd:
		return PrecBitAnd
	case OpEq, OpNotEq, OpStrictEq, OpStrictNotEq:
		return PrecEquality
	case OpLt, OpLtEq, OpGt, OpGtEq, OpIn, OpInstanceof:
		return PrecRelational
	case OpShl, OpShr, OpUShr:
		return PrecShift
	case OpAdd, OpSub:
		return PrecAdditive
	case OpMul, OpDiv, OpMod:
		return PrecMultiply
	case OpExp:
		return PrecExp
	}
	return PrecLowest
}

// RightAssoc is true only for **.
func (op BinaryOp) RightAssoc() bool { return op == OpExp }

type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
	UnaryBitNot
	UnaryTypeof
	UnaryVoid
	UnaryDelete
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryBitNot:
		return "~"
	case UnaryTypeof:
		return "typeof"
	case UnaryVoid:
		return "void"
	case UnaryDelete:
		return "delete"
	}
	return "?"
}

// IsWord reports whether the operator is spelled as a keyword.
func (op UnaryOp) IsWord() bool { return op >= UnaryTypeof }

type UpdateOp uint8

const (
	UpdateInc UpdateOp = iota
	UpdateDec
)

func (op UpdateOp) String() string {
	if op == UpdateDec {
		return "--"
	}
	return "++"
}

type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignExp
	AssignShl
	AssignShr
	AssignUShr
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignAndAnd
	AssignOrOr
	AssignCoalesce
)

var assignOpText = [...]string{
	AssignPlain:    "=",
	AssignAdd:      "+=",
	AssignSub:      "-=",
	AssignMul:      "*=",
	AssignDiv:      "/=",
	AssignMod:      "%=",
	AssignExp:      "**=",
	AssignShl:      "<<=",
	AssignShr:      ">>=",
	AssignUShr:     ">>>=",
	AssignBitAnd:   "&=",
	AssignBitOr:    "|=",
	AssignBitXor:   "^=",
	AssignAndAnd:   "&&=",
	AssignOrOr:     "||=",
	AssignCoalesce: "??=",
}

func (op AssignOp) String() string {
	if int(op) < len(assignOpText) {
		return assignOpText[op]
	}
	return "?"
}

// IsLogical reports &&=, ||= and ??=.
func (op AssignOp) IsLogical() bool { return op >= AssignAndAnd }
