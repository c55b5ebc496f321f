package parser

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
)

func parseFixture(t *testing.T, opts Options) (*ast.Builder, Result) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(filepath.Join("..", "..", "testdata", "let_and_const.js"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := Parse(context.Background(), fs, fs.Get(id), b, opts)
	if err != nil {
		t.Fatalf("parse fixture: %v (%s)", err, diagnosticsSummary(res.Bag))
	}
	return b, res
}

func TestFixtureShape(t *testing.T) {
	b, res := parseFixture(t, Options{})
	stmts := topStmts(b, res.File)
	want := []ast.StmtKind{
		ast.StmtVarDecl, ast.StmtVarDecl, ast.StmtVarDecl, ast.StmtExpr,
		ast.StmtVarDecl, ast.StmtVarDecl, ast.StmtClassDecl, ast.StmtVarDecl,
	}
	if len(stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(stmts))
	}
	for i, k := range want {
		if got := b.Stmts.Get(stmts[i]).Kind; got != k {
			t.Errorf("stmt %d: %s, want %s", i, got, k)
		}
	}

	clsA, _ := b.Stmts.VarDecl(stmts[4])
	obj, ok := b.Exprs.Object(clsA.Decls[0].Init)
	if !ok || len(obj.Props) != 2 {
		t.Fatalf("clsA must be an object literal with 2 properties")
	}
	if exprKind(b, obj.Props[1].Value) != ast.ExprFunc {
		t.Fatalf("clsA.f must be a FunctionExpression")
	}

	created, _ := b.Stmts.VarDecl(stmts[5])
	if exprKind(b, created.Decls[0].Init) != ast.ExprCall {
		t.Fatalf("Object.create(clsA) must stay a CallExpression")
	}

	clsID, _ := b.Stmts.ClassDecl(stmts[6])
	cls := b.Classes.Get(clsID)
	if len(cls.Members) != 3 || cls.Members[0].Kind != ast.MemberField || !cls.Members[1].IsConstructor(b) {
		t.Fatalf("unexpected class body %+v", cls.Members)
	}

	if res.Bag.Len() != 0 {
		t.Fatalf("fixture must parse cleanly: %s", diagnosticsSummary(res.Bag))
	}
}

func TestSpansNestInsideParents(t *testing.T) {
	b, res := parseFixture(t, Options{})
	var prevSibling = map[ast.Node]ast.Node{}
	b.Inspect(res.File, func(n, parent ast.Node) bool {
		sp := b.Span(n)
		if sp.End < sp.Start {
			t.Errorf("inverted span %v", sp)
		}
		if parent.IsValid() {
			if ps := b.Span(parent); !ps.Contains(sp) {
				t.Errorf("child %v escapes parent %v", sp, ps)
			}
			if prev, ok := prevSibling[parent]; ok {
				if b.Span(prev).End > sp.Start {
					t.Errorf("sibling %v overlaps previous %v", sp, b.Span(prev))
				}
			}
			prevSibling[parent] = n
		}
		return true
	})
}

func TestLanguageGating(t *testing.T) {
	tests := []struct {
		input string
		lang  Language
		ok    bool
	}{
		{"var x = 1;", LangES5, true},
		{"let x = 1;", LangES5, false},
		{"var f = () => 1;", LangES5, false},
		{"var s = `x`;", LangES5, false},
		{"var o = { m() {} };", LangES5, false},
		{"for (var x of y) {}", LangES5, false},
		{"f(...a);", LangES5, false},
		{"class A {}", LangES2015, true},
		{"a ** b;", LangES2015, false},
		{"a ** b;", LangES2016, true},
		{"a?.b;", LangES2019, false},
		{"a ?? b;", LangES2020, true},
		{"class A { x = 1; }", LangES2021, false},
		{"class A { x = 1; }", LangES2022, true},
	}
	for _, tt := range tests {
		_, res, err := parseWith(t, tt.input, Options{Language: tt.lang})
		if tt.ok && err != nil {
			t.Errorf("%q at %s: unexpected error %v", tt.input, tt.lang, err)
		}
		if !tt.ok && (err == nil || !hasCode(res.Bag, diag.SynFeatureNotInLanguage)) {
			t.Errorf("%q at %s: expected SynFeatureNotInLanguage, got %s", tt.input, tt.lang, diagnosticsSummary(res.Bag))
		}
	}
}

func TestFeaturesRecordedInOrder(t *testing.T) {
	_, res := parseFixture(t, Options{})
	var got []Feature
	for _, u := range res.Features {
		got = append(got, u.Feature)
	}
	want := []Feature{FeatLetConst, FeatClass, FeatClassFields, FeatTemplate}
	if len(got) != len(want) {
		t.Fatalf("features = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("features = %v, want %v", got, want)
		}
	}
	above := Above(res.Features, LangES2015)
	if len(above) != 1 || above[0].Feature != FeatClassFields {
		t.Fatalf("only class fields are newer than ES2015, got %v", above)
	}
}

func TestParseLanguageNames(t *testing.T) {
	for name, want := range map[string]Language{
		"ECMASCRIPT5":     LangES5,
		"ecmascript_2015": LangES2015,
		"es6":             LangES2015,
		"STABLE":          LangES2021,
		"ECMASCRIPT_NEXT": LangESNext,
	} {
		got, err := ParseLanguage(name)
		if err != nil || got != want {
			t.Errorf("ParseLanguage(%q) = %s, %v; want %s", name, got, err, want)
		}
	}
	if _, err := ParseLanguage("ES1999"); err == nil {
		t.Fatalf("unknown language must fail")
	}
}

func TestCanceledContext(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.js", []byte("var a = 1;\nvar b = 2;")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := Parse(ctx, fs, file, b, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(topStmts(b, res.File)) != 0 {
		t.Fatalf("a canceled parse must not produce statements")
	}
}
