package parser

import (
	"context"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

const defaultBagSize = 256

type Options struct {
	// Language gates syntax newer than the given edition.
	Language Language
	// MaxErrors stops the parse after that many errors; 0 means no limit.
	MaxErrors uint
	// MaxDiagnostics sizes the bag created by Parse.
	MaxDiagnostics int
	Reporter       diag.Reporter
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
	// Features lists post-ES5 constructs in order of first use.
	Features []FeatureUse
	Errors   uint
	// SyntaxErr is the first grammar error, nil when there was none.
	SyntaxErr *SyntaxError
}

// state is shared between a parser and the sub-parsers it starts for
// template interpolations.
type state struct {
	errors   uint
	stopped  bool
	first    *SyntaxError
	features []FeatureUse
	seen     [featCount]bool
}

// Parser: состояние парсера на один файл (или на одну интерполяцию)
type Parser struct {
	ctx      context.Context
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lang     Language
	st       *state
	lastSpan source.Span // span последнего съеденного токена

	noIn      bool // внутри заголовка for: `in` не оператор
	funcDepth int
	loopDepth int
}

// ParseFile parses the whole range of lx into a new ast.File.
// The lexer should report into the same Reporter as opts.Reporter.
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	start, limit := lx.Range()
	fileSpan := source.Span{File: lx.File().ID, Start: start, End: limit}
	p := Parser{
		ctx:      ctx,
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(fileSpan),
		fs:       fs,
		opts:     opts,
		lang:     opts.Language.Effective(),
		st:       &state{},
		lastSpan: lx.EmptySpan(),
	}

	p.parseProgram()

	return Result{
		File:      p.file,
		Bag:       bagOf(opts.Reporter),
		Features:  p.st.features,
		Errors:    p.st.errors,
		SyntaxErr: p.st.first,
	}
}

// Parse lexes and parses file with a fresh bag. The returned error is the
// first failure: a *lexer.LexError, a *SyntaxError, or the context error.
// Options.Reporter is ignored; diagnostics end up in Result.Bag.
func Parse(ctx context.Context, fs *source.FileSet, file *source.File, arenas *ast.Builder, opts Options) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	size := opts.MaxDiagnostics
	if size <= 0 {
		size = defaultBagSize
	}
	bag := diag.NewBag(size)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	opts.Reporter = rep

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := ParseFile(ctx, fs, lx, arenas, opts)
	res.Bag = bag

	if err := ctx.Err(); err != nil {
		return res, err
	}
	d, ok := bag.FirstError()
	if !ok {
		if res.SyntaxErr != nil {
			// bag overflowed before the first error
			return res, res.SyntaxErr
		}
		return res, nil
	}
	if lexer.IsLexCode(d.Code) {
		return res, &lexer.LexError{Code: d.Code, Span: d.Primary, Message: d.Message}
	}
	if res.SyntaxErr != nil {
		return res, res.SyntaxErr
	}
	return res, &SyntaxError{Code: d.Code, Span: d.Primary, Message: d.Message}
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case diag.BagReporter:
		return br.Bag
	case *diag.BagReporter:
		return br.Bag
	}
	return nil
}

// parseProgram: основной цикл верхнего уровня
func (p *Parser) parseProgram() {
	for !p.at(token.EOF) && !p.st.stopped {
		if p.ctx.Err() != nil {
			p.st.stopped = true
			return
		}
		stmt, ok := p.parseStatementGuarded()
		if ok {
			p.arenas.PushStmt(p.file, stmt)
		}
	}
}

// parseStatementGuarded parses one statement and resynchronises on failure.
// It always makes progress.
func (p *Parser) parseStatementGuarded() (ast.StmtID, bool) {
	before := p.lx.Peek().Span
	stmt, ok := p.parseStatement()
	if !ok {
		p.resyncStatement()
		if after := p.lx.Peek(); after.Span == before && after.Kind != token.EOF {
			p.advance()
		}
	}
	return stmt, ok && stmt.IsValid()
}

// parseStatementList parses statements until `}`; the brace is not consumed.
func (p *Parser) parseStatementList() []ast.StmtID {
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.st.stopped {
		if p.ctx.Err() != nil {
			p.st.stopped = true
			break
		}
		if stmt, ok := p.parseStatementGuarded(); ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// resyncStatement skips to the end of the broken statement: a `;` at the
// same nesting level, a `}` closing the current block, or a statement
// starter on a new line.
func (p *Parser) resyncStatement() {
	depth := 0
	moved := false
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				// пропущенный блок закончился
				p.advance()
				if p.lx.Peek().NewlineBefore() {
					return
				}
				moved = true
				continue
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		if moved && depth == 0 && tok.NewlineBefore() && isStatementStarter(tok.Kind) {
			return
		}
		p.advance()
		moved = true
	}
}

func isStatementStarter(k token.Kind) bool {
	switch k {
	case token.KwVar, token.KwLet, token.KwConst, token.KwFunction, token.KwClass,
		token.KwIf, token.KwWhile, token.KwDo, token.KwFor, token.KwReturn,
		token.KwBreak, token.KwContinue, token.KwThrow, token.KwSwitch, token.KwTry,
		token.KwImport, token.KwExport:
		return true
	}
	return false
}

// sub returns a parser over [start, limit) of the same file that shares
// the arenas, the error state and the function/loop context.
func (p *Parser) sub(start, limit uint32) *Parser {
	lx := lexer.New(p.lx.File(), lexer.Options{Reporter: p.opts.Reporter})
	lx.SetRange(start, limit)
	child := *p
	child.lx = lx
	child.noIn = false
	child.lastSpan = source.Span{File: p.lx.File().ID, Start: start, End: start}
	return &child
}
