package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// parseWith parses input as a virtual file and returns everything a test
// may want to inspect.
func parseWith(t *testing.T, input string, opts Options) (*ast.Builder, Result, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(input)))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res, err := Parse(context.Background(), fs, file, builder, opts)
	return builder, res, err
}

// parseOK parses input and fails the test on any error.
func parseOK(t *testing.T, input string) (*ast.Builder, ast.FileID) {
	t.Helper()
	builder, res, err := parseWith(t, input, Options{})
	if err != nil {
		t.Fatalf("parse %q: %v (diagnostics: %s)", input, err, diagnosticsSummary(res.Bag))
	}
	return builder, res.File
}

// topStmts returns the top-level statements of the parsed file.
func topStmts(b *ast.Builder, file ast.FileID) []ast.StmtID {
	return b.Files.Get(file).Body
}

// onlyExpr parses a single expression statement and returns its expression.
func onlyExpr(t *testing.T, input string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, file := parseOK(t, input)
	stmts := topStmts(b, file)
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	data, ok := b.Stmts.Expr(stmts[0])
	if !ok {
		t.Fatalf("expected expression statement, got %s", b.Stmts.Get(stmts[0]).Kind)
	}
	return b, data.Expr
}

func exprKind(b *ast.Builder, id ast.ExprID) ast.ExprKind {
	return b.Exprs.Get(id).Kind
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
