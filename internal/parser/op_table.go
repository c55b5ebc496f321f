package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/token"
)

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:             ast.OpAdd,
	token.Minus:            ast.OpSub,
	token.Star:             ast.OpMul,
	token.Slash:            ast.OpDiv,
	token.Percent:          ast.OpMod,
	token.StarStar:         ast.OpExp,
	token.Shl:              ast.OpShl,
	token.Shr:              ast.OpShr,
	token.UShr:             ast.OpUShr,
	token.Amp:              ast.OpBitAnd,
	token.Pipe:             ast.OpBitOr,
	token.Caret:            ast.OpBitXor,
	token.EqEq:             ast.OpEq,
	token.BangEq:           ast.OpNotEq,
	token.EqEqEq:           ast.OpStrictEq,
	token.BangEqEq:         ast.OpStrictNotEq,
	token.Lt:               ast.OpLt,
	token.LtEq:             ast.OpLtEq,
	token.Gt:               ast.OpGt,
	token.GtEq:             ast.OpGtEq,
	token.KwIn:             ast.OpIn,
	token.KwInstanceof:     ast.OpInstanceof,
	token.AndAnd:           ast.OpAndAnd,
	token.OrOr:             ast.OpOrOr,
	token.QuestionQuestion: ast.OpCoalesce,
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Assign:                 ast.AssignPlain,
	token.PlusAssign:             ast.AssignAdd,
	token.MinusAssign:            ast.AssignSub,
	token.StarAssign:             ast.AssignMul,
	token.SlashAssign:            ast.AssignDiv,
	token.PercentAssign:          ast.AssignMod,
	token.StarStarAssign:         ast.AssignExp,
	token.ShlAssign:              ast.AssignShl,
	token.ShrAssign:              ast.AssignShr,
	token.UShrAssign:             ast.AssignUShr,
	token.AmpAssign:              ast.AssignBitAnd,
	token.PipeAssign:             ast.AssignBitOr,
	token.CaretAssign:            ast.AssignBitXor,
	token.AndAndAssign:           ast.AssignAndAnd,
	token.OrOrAssign:             ast.AssignOrOr,
	token.QuestionQuestionAssign: ast.AssignCoalesce,
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.Plus:     ast.UnaryPlus,
	token.Minus:    ast.UnaryMinus,
	token.Bang:     ast.UnaryNot,
	token.Tilde:    ast.UnaryBitNot,
	token.KwTypeof: ast.UnaryTypeof,
	token.KwVoid:   ast.UnaryVoid,
	token.KwDelete: ast.UnaryDelete,
}

// binaryOp returns the operator for k; `in` is excluded inside for headers.
func (p *Parser) binaryOp(k token.Kind) (ast.BinaryOp, bool) {
	if k == token.KwIn && p.noIn {
		return 0, false
	}
	op, ok := binaryOps[k]
	return op, ok
}
