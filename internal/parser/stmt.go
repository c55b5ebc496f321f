package parser

import (
	"fmt"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// parseStatement выбирает по первому токену нужный распознаватель.
func (p *Parser) parseStatement() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span), true
	case token.KwVar:
		return p.parseVarStatement(ast.VarVar)
	case token.KwConst:
		return p.parseVarStatement(ast.VarConst)
	case token.KwLet:
		if p.letDeclAhead() {
			return p.parseVarStatement(ast.VarLet)
		}
	case token.KwFunction:
		return p.parseFunctionDecl()
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak, token.KwContinue:
		return p.parseJump()
	case token.KwThrow:
		return p.parseThrow()

	case token.KwSwitch:
		p.unsupported("switch statements")
		return ast.NoStmtID, false
	case token.KwTry:
		p.unsupported("try statements")
		return ast.NoStmtID, false
	case token.KwImport, token.KwExport:
		if tok.Kind == token.KwImport && p.peekSecond().Kind == token.LParen {
			break
		}
		p.unsupported("modules (import/export)")
		return ast.NoStmtID, false
	case token.KwWith:
		p.unsupported("with statements")
		return ast.NoStmtID, false
	case token.KwDebugger:
		p.unsupported("debugger statements")
		return ast.NoStmtID, false
	case token.KwEnum:
		p.unsupported("enum declarations")
		return ast.NoStmtID, false
	case token.KwElse, token.KwCatch, token.KwFinally, token.KwCase, token.KwDefault, token.RBrace, token.RParen, token.RBracket:
		p.errExpected(diag.SynUnexpectedToken, "unexpected "+describe(tok), "statement")
		return ast.NoStmtID, false

	case token.Ident:
		next := p.peekSecond()
		if next.Kind == token.Colon {
			p.unsupported("labelled statements")
			return ast.NoStmtID, false
		}
		if tok.Text == "async" && next.Kind == token.KwFunction && !next.NewlineBefore() {
			p.unsupported("async functions")
			return ast.NoStmtID, false
		}
	}
	return p.parseExpressionStatement()
}

// letDeclAhead disambiguates `let x`, `let [`, `let {` from `let` used as
// an identifier.
func (p *Parser) letDeclAhead() bool {
	switch p.peekSecond().Kind {
	case token.Ident, token.LBracket, token.LBrace, token.KwYield, token.KwAwait:
		return true
	}
	return false
}

// parseBodyStatement parses the body of if/while/for, where lexical
// declarations are not allowed.
func (p *Parser) parseBodyStatement() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.KwConst || tok.Kind == token.KwClass || (tok.Kind == token.KwLet && p.letDeclAhead()) {
		p.errExpected(diag.SynUnexpectedToken,
			fmt.Sprintf("'%s' declaration cannot appear in a single-statement context", tok.Text), "statement")
		return ast.NoStmtID, false
	}
	return p.parseStatement()
}

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}
	stmts := p.parseStatementList()
	if p.st.stopped {
		return ast.NoStmtID, false
	}
	if !p.expectClose(token.RBrace, diag.SynUnclosedBrace, open.Span) {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(p.spanFrom(open.Span), stmts), true
}

func (p *Parser) parseExpressionStatement() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.semicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), expr), true
}

func (p *Parser) parseVarStatement(kind ast.VarKind) (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	decls, ok := p.parseVarDeclarators(kind, false)
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.semicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVarDecl(p.spanFrom(start), kind, decls), true
}

// parseVarDeclarators starts at var/let/const. Inside a for header a const
// without initializer is checked by the caller.
func (p *Parser) parseVarDeclarators(kind ast.VarKind, inFor bool) ([]ast.VarDeclarator, bool) {
	kw := p.advance()
	if kind != ast.VarVar {
		p.use(FeatLetConst, kw.Span)
	}
	var decls []ast.VarDeclarator
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.Ident, tok.Kind == token.KwLet && kind == ast.VarVar:
			p.advance()
		case tok.Kind == token.LBracket, tok.Kind == token.LBrace:
			p.unsupported("destructuring patterns")
			return nil, false
		default:
			p.errExpected(diag.SynExpectIdentifier, "expected variable name, found "+describe(tok), "identifier")
			return nil, false
		}
		d := ast.VarDeclarator{Name: p.intern(tok.Text), NameSpan: tok.Span}
		if p.eat(token.Assign) {
			init, ok := p.parseAssign()
			if !ok {
				return nil, false
			}
			d.Init = init
		} else if kind == ast.VarConst && !inFor {
			p.errAt(diag.SynConstWithoutInit, tok.Span,
				fmt.Sprintf("missing initializer in const declaration '%s'", tok.Text))
			return nil, false
		}
		d.Span = p.spanFrom(tok.Span)
		decls = append(decls, d)
		if !p.eat(token.Comma) {
			return decls, true
		}
	}
}
