package parser

import (
	"testing"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
)

func parseClassMembers(t *testing.T, input string) (*ast.Builder, *ast.ClassData) {
	t.Helper()
	b, file := parseOK(t, input)
	clsID, ok := b.Stmts.ClassDecl(topStmts(b, file)[0])
	if !ok {
		t.Fatalf("expected ClassDeclaration")
	}
	return b, b.Classes.Get(clsID)
}

func TestClassFieldThenConstructor(t *testing.T) {
	b, cls := parseClassMembers(t, "class clsB {\n  n = 'Test';\n  constructor(a) {\n    this.n = a;\n  }\n}")
	if b.Name(cls.Name) != "clsB" {
		t.Fatalf("class name = %q", b.Name(cls.Name))
	}
	if len(cls.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(cls.Members))
	}
	field := cls.Members[0]
	if field.Kind != ast.MemberField || !field.Value.IsValid() || b.Name(field.Key.Name) != "n" {
		t.Fatalf("first member must be field n with initializer: %+v", field)
	}
	ctor := cls.Members[1]
	if ctor.Kind != ast.MemberMethod || !ctor.IsConstructor(b) {
		t.Fatalf("second member must be the constructor: %+v", ctor)
	}
	if fn := b.Funcs.Get(ctor.Func); len(fn.Params) != 1 || b.Name(fn.Params[0].Name) != "a" {
		t.Fatalf("constructor must take parameter a")
	}
}

func TestClassMemberVariety(t *testing.T) {
	_, cls := parseClassMembers(t, `class A extends B {
  static count = 0;
  #secret;
  static create() { return new A(); }
  get size() { return this.#secret; }
  set size(v) { this.#secret = v; }
  ['computed' + 1]() {}
  static;
  get;
}`)
	want := []struct {
		kind   ast.ClassMemberKind
		static bool
		key    ast.PropKeyKind
	}{
		{ast.MemberField, true, ast.KeyIdent},
		{ast.MemberField, false, ast.KeyPrivate},
		{ast.MemberMethod, true, ast.KeyIdent},
		{ast.MemberGetter, false, ast.KeyIdent},
		{ast.MemberSetter, false, ast.KeyIdent},
		{ast.MemberMethod, false, ast.KeyComputed},
		{ast.MemberField, false, ast.KeyIdent},
		{ast.MemberField, false, ast.KeyIdent},
	}
	if len(cls.Members) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(cls.Members))
	}
	for i, w := range want {
		m := cls.Members[i]
		if m.Kind != w.kind || m.Static != w.static || m.Key.Kind != w.key {
			t.Errorf("member %d: got kind=%d static=%v key=%d", i, m.Kind, m.Static, m.Key.Kind)
		}
	}
	if !cls.Super.IsValid() {
		t.Fatalf("extends clause lost")
	}
}

func TestClassErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"class A { constructor() {} constructor() {} }", diag.SynDuplicateConstructor},
		{"class { }", diag.SynExpectIdentifier},
		{"class A { get x(a) {} }", diag.SynUnexpectedToken},
		{"class A { *gen() {} }", diag.SynUnsupportedSyntax},
		{"class A { static { init(); } }", diag.SynUnsupportedSyntax},
		{"class A { a = 1 b = 2 }", diag.SynExpectSemicolon},
	}
	for _, tt := range tests {
		_, res, err := parseWith(t, tt.input, Options{})
		if err == nil || !hasCode(res.Bag, tt.code) {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.code.ID(), diagnosticsSummary(res.Bag))
		}
	}
}

func TestClassExpressionAndSuper(t *testing.T) {
	b, file := parseOK(t, "const C = class extends Base { constructor() { super(); this.x = super.y; } };")
	decl, _ := b.Stmts.VarDecl(topStmts(b, file)[0])
	if exprKind(b, decl.Decls[0].Init) != ast.ExprClass {
		t.Fatalf("expected ClassExpression")
	}
}

func TestObjectAccessorsAndOrder(t *testing.T) {
	b, e := onlyExpr(t, "({ get x() { return 1; }, set x(v) {}, get: 1, set() {}, 'q': 2, 3: 4, [k]: 5, ...rest });")
	wrap, _ := b.Exprs.Wrap(e)
	obj, ok := b.Exprs.Object(wrap.Inner)
	if !ok {
		t.Fatalf("expected object literal")
	}
	want := []ast.PropKind{
		ast.PropGet, ast.PropSet, ast.PropInit, ast.PropMethod,
		ast.PropInit, ast.PropInit, ast.PropInit, ast.PropSpread,
	}
	if len(obj.Props) != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), len(obj.Props))
	}
	for i, k := range want {
		if obj.Props[i].Kind != k {
			t.Errorf("prop %d: kind %d, want %d", i, obj.Props[i].Kind, k)
		}
	}
	if obj.Props[4].Key.Kind != ast.KeyString || obj.Props[5].Key.Kind != ast.KeyNumber || obj.Props[6].Key.Kind != ast.KeyComputed {
		t.Fatalf("key kinds not preserved")
	}
}
