package parser

import (
	"testing"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/lexer"
)

func TestTemplateWithMemberInterpolation(t *testing.T) {
	b, e := onlyExpr(t, "`${this.n}`;")
	tpl, ok := b.Exprs.Template(e)
	if !ok {
		t.Fatalf("expected TemplateLiteral, got %s", exprKind(b, e))
	}
	if len(tpl.Exprs) != 1 || len(tpl.Quasis) != 2 {
		t.Fatalf("expected 1 expression and 2 quasis, got %d/%d", len(tpl.Exprs), len(tpl.Quasis))
	}
	member, ok := b.Exprs.Member(tpl.Exprs[0])
	if !ok || b.Name(member.Property) != "n" || exprKind(b, member.Object) != ast.ExprThis {
		t.Fatalf("interpolation must be this.n")
	}
	if tpl.Quasis[0].Raw != "" || tpl.Quasis[1].Raw != "" {
		t.Fatalf("quasis must be empty: %+v", tpl.Quasis)
	}
}

func TestTemplateSegmentsAndNesting(t *testing.T) {
	b, e := onlyExpr(t, "`a${x}b${ {k: `in${y}`}.k }c\\${not}`;")
	tpl, _ := b.Exprs.Template(e)
	if len(tpl.Exprs) != 2 {
		t.Fatalf("expected 2 interpolations, got %d", len(tpl.Exprs))
	}
	raws := []string{"a", "b", "c\\${not}"}
	for i, q := range tpl.Quasis {
		if q.Raw != raws[i] {
			t.Errorf("quasi %d = %q, want %q", i, q.Raw, raws[i])
		}
	}
	member, ok := b.Exprs.Member(tpl.Exprs[1])
	if !ok {
		t.Fatalf("second interpolation must be a member expression")
	}
	obj, _ := b.Exprs.Object(member.Object)
	if exprKind(b, obj.Props[0].Value) != ast.ExprTemplate {
		t.Fatalf("nested template lost")
	}
}

func TestTaggedTemplate(t *testing.T) {
	b, e := onlyExpr(t, "tag`x${y}z`;")
	tagged, ok := b.Exprs.TaggedTemplate(e)
	if !ok || exprKind(b, tagged.Tag) != ast.ExprIdent || exprKind(b, tagged.Quasi) != ast.ExprTemplate {
		t.Fatalf("expected TaggedTemplateExpression")
	}
}

func TestTemplateErrors(t *testing.T) {
	_, res, err := parseWith(t, "`a${}b`;", Options{})
	if err == nil || !hasCode(res.Bag, diag.SynEmptyInterpolation) {
		t.Fatalf("expected SynEmptyInterpolation, got %s", diagnosticsSummary(res.Bag))
	}

	_, res, err = parseWith(t, "`a${x y}b`;", Options{})
	if err == nil || !hasCode(res.Bag, diag.SynUnclosedBrace) {
		t.Fatalf("expected SynUnclosedBrace, got %s", diagnosticsSummary(res.Bag))
	}

	_, _, err = parseWith(t, "let s = `abc", Options{})
	lexErr, ok := err.(*lexer.LexError)
	if !ok || lexErr.Code != diag.LexUnterminatedTemplate {
		t.Fatalf("expected LexError for unterminated template, got %T %v", err, err)
	}
}

func TestMalformedTokensFailWithLexError(t *testing.T) {
	for _, input := range []string{"var s = 'abc", "var a = 1 @ 2;", "var r = /abc"} {
		_, res, err := parseWith(t, input, Options{})
		if _, ok := err.(*lexer.LexError); !ok {
			t.Errorf("%q: expected *lexer.LexError, got %T %v (%s)", input, err, err, diagnosticsSummary(res.Bag))
		}
	}
}
