package printer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dop251/goja"

	"jsfront/internal/ast"
	"jsfront/internal/parser"
	"jsfront/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.Parse(context.Background(), fs, file, b, parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return b, res.File
}

func printString(t *testing.T, src string, mode Mode) string {
	t.Helper()
	b, fid := parseSource(t, src)
	out, err := Print(b, fid, Options{Mode: mode})
	if err != nil {
		t.Fatalf("print %q: %v", src, err)
	}
	return string(out)
}

func TestCompactParentheses(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(a + b) * c;", "(a+b)*c;"},
		{"a + (b * c);", "a+b*c;"},
		{"a - (b - c);", "a-(b-c);"},
		{"(a - b) - c;", "a-b-c;"},
		{"(a ** b) ** c;", "(a**b)**c;"},
		{"a ** (b ** c);", "a**b**c;"},
		{"(-a) ** b;", "(-a)**b;"},
		{"a ?? (b || c);", "a??(b||c);"},
		{"(a || b) ?? c;", "(a||b)??c;"},
		{"(a, b);", "a,b;"},
		{"f((a, b));", "f((a,b));"},
		{"a = (b, c);", "a=(b,c);"},
		{"new (f())();", "new(f())();"},
		{"new (a.b().c)();", "new(a.b().c)();"},
		{"(new X).y;", "(new X).y;"},
		{"new X().y;", "new X().y;"},
		{"({}).toString();", "({}.toString());"},
		{"(function () {})();", "(function(){}());"},
		{"(() => 1)();", "(()=>1)();"},
		{"x = () => ({});", "x=()=>({});"},
		{"a ? b : c ? d : e;", "a?b:c?d:e;"},
		{"(a ? b : c) ? d : e;", "(a?b:c)?d:e;"},
		{"a = b = c;", "a=b=c;"},
		{"(a = b) + 1;", "(a=b)+1;"},
		{"(a?.b).c;", "(a?.b).c;"},
		{"a?.b.c;", "a?.b.c;"},
		{"1..toString();", "1..toString();"},
		{"(1).toString();", "(1).toString();"},
	}
	for _, tt := range tests {
		if got := printString(t, tt.in, Compact); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompactKeepsTokensApart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a - -b;", "a- -b;"},
		{"a + +b;", "a+ +b;"},
		{"- -a;", "- -a;"},
		{"typeof x;", "typeof x;"},
		{"void (0);", "void 0;"},
		{"a in b;", "a in b;"},
		{"x = a / /re/g.source.length;", "x=a/ /re/g.source.length;"},
	}
	for _, tt := range tests {
		if got := printString(t, tt.in, Compact); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompactStatements(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"for (var i = (a in b); i;) {}", "for(var i=(a in b);i;){}"},
		{"for (x in y) z;", "for(x in y)z;"},
		{"for (const v of list) { f(v); }", "for(const v of list){f(v);}"},
		{"if (a) b; else c;", "if(a)b;else c;"},
		{"if (a) b; else if (c) d;", "if(a)b;else if(c)d;"},
		{"do x++; while (y);", "do x++;while(y);"},
		{"while (a) { break; }", "while(a){break;}"},
		{"function f() { return; }", "function f(){return;}"},
		{"x = function f(a, ...r) { return a; };", "x=function f(a,...r){return a;};"},
		{"function g(a = 1, b) { throw a; }", "function g(a=1,b){throw a;}"},
		{"let o = {a, [b]: 1, get c() { return 1 }, ...d};", "let o={a,[b]:1,get c(){return 1;},...d};"},
		{"class A extends B { static x = 1; #p; get y() { return this.#p } }", "class A extends B{static x=1;#p;get y(){return this.#p;}}"},
		{"`a${b}c`;", "`a${b}c`;"},
		{"tag`x${1 + 2}`;", "tag`x${1+2}`;"},
		{"[a, , b];", "[a,,b];"},
		{"let a = 1, b;", "let a=1,b;"},
	}
	for _, tt := range tests {
		if got := printString(t, tt.in, Compact); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrettyLayout(t *testing.T) {
	src := "let t=0;\nconst tc= \"tc\";\nclass A extends B { n = 'x'; static get y() { return 1 } }\nif (t) t++; else { t--; }\n"
	want := `let t = 0;
const tc = "tc";
class A extends B {
  n = 'x';
  static get y() {
    return 1;
  }
}
if (t)
  t++;
else {
  t--;
}
`
	if got := printString(t, src, Pretty); got != want {
		t.Fatalf("pretty output mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyTabs(t *testing.T) {
	b, fid := parseSource(t, "while (a) { b(); }")
	out, err := Print(b, fid, Options{Mode: Pretty, UseTabs: true})
	if err != nil {
		t.Fatal(err)
	}
	if want := "while (a) {\n\tb();\n}\n"; string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestDanglingElseGetsBraces(t *testing.T) {
	b, fid := parseSource(t, "if (a) if (b) c;")
	outer := b.Files.Get(fid).Body[0]
	data, ok := b.Stmts.If(outer)
	if !ok {
		t.Fatalf("expected if statement")
	}
	sp := b.Stmts.Get(outer).Span
	data.Else = b.Stmts.NewExpr(sp, b.Exprs.NewIdent(sp, b.Intern("d")))

	out, err := Print(b, fid, Options{Mode: Compact})
	if err != nil {
		t.Fatal(err)
	}
	if want := "if(a){if(b)c;}else d;"; string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestIncompleteTree(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	fid := b.NewFile(source.Span{})
	b.PushStmt(fid, b.Stmts.NewExpr(source.Span{}, ast.NoExprID))
	if _, err := Print(b, fid, Options{}); !errors.Is(err, ErrIncompleteTree) {
		t.Fatalf("expected ErrIncompleteTree, got %v", err)
	}
	if _, err := Print(b, ast.NoFileID, Options{}); err == nil {
		t.Fatalf("expected error for invalid file id")
	}
}

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "let_and_const.js"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func TestFixtureRoundTrip(t *testing.T) {
	b, fid := parseSource(t, readFixture(t))
	for _, mode := range []Mode{Pretty, Compact} {
		if ok, msg := CheckRoundTrip(context.Background(), b, fid, Options{Mode: mode}); !ok {
			t.Fatalf("%s: %s", mode, msg)
		}
	}
}

// runJS executes src and returns the lines passed to console.log.
func runJS(t *testing.T, src string) []string {
	t.Helper()
	vm := goja.New()
	var lines []string
	console := vm.NewObject()
	err := console.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		lines = append(lines, strings.Join(parts, " "))
		return goja.Undefined()
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := vm.Set("console", console); err != nil {
		t.Fatal(err)
	}
	if _, err := vm.RunString(src); err != nil {
		t.Fatalf("run: %v\n%s", err, src)
	}
	return lines
}

func TestFixtureBehaviourPreserved(t *testing.T) {
	src := readFixture(t) + "\nconsole.log(String(B));\nA.f('!');\nconsole.log(A.n === '', B.n);\n"
	want := runJS(t, src)
	if strings.Join(want, "|") != "tc1|hello|!|true hello" {
		t.Fatalf("unexpected baseline output %q", want)
	}
	for _, mode := range []Mode{Pretty, Compact} {
		printed := printString(t, src, mode)
		got := runJS(t, printed)
		if strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("%s: output %q, want %q", mode, got, want)
		}
	}
}

func TestExpressionsBehaviourPreserved(t *testing.T) {
	src := `
var r = [];
r.push(2 ** 3 ** 2, (2 ** 3) ** 2, (-2) ** 2, 1 - (2 - 3), (1, 2));
var o = { a: 1, get b() { return this.a + 1 }, ['c' + 1]: 3 };
r.push(o.b, o.c1, typeof o, - -1, 1..toFixed(1), null ?? (0 || 'x'));
var f = (x, y = 2, ...z) => ({ sum: x + y + z.length });
r.push(f(1).sum, f(1, 1, 0, 0).sum);
for (var k in { p: 1, q: 2 }) r.push(k);
var i = 0; do i++; while (i < 3); r.push(i);
r.push(new (function () { this.v = 7 })().v, ` + "`t${i > 2 ? 'y' : 'n'}`" + `);
console.log(r.join(','));
`
	want := runJS(t, src)
	for _, mode := range []Mode{Pretty, Compact} {
		got := runJS(t, printString(t, src, mode))
		if strings.Join(got, "\n") != strings.Join(want, "\n") {
			t.Errorf("%s: output %q, want %q", mode, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("compact"); err != nil || m != Compact {
		t.Fatalf("compact: %v %v", m, err)
	}
	if m, err := ParseMode("PRETTY_PRINT"); err != nil || m != Pretty {
		t.Fatalf("PRETTY_PRINT: %v %v", m, err)
	}
	if _, err := ParseMode("ugly"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestForInitLetBracketKeepsParens(t *testing.T) {
	src := "var let = [0], n = 0;\n" +
		"for ((let[0] = 5); n < 1; n++) console.log(let[0], n);\n" +
		"for (let.length; n < 2; n++) ;\n" +
		"console.log(n);\n"
	want := runJS(t, src)
	if strings.Join(want, "|") != "5 0|2" {
		t.Fatalf("unexpected baseline output %q", want)
	}

	b, fid := parseSource(t, src)
	for _, mode := range []Mode{Pretty, Compact} {
		out, err := Print(b, fid, Options{Mode: mode})
		if err != nil {
			t.Fatal(err)
		}
		printed := string(out)
		if !strings.Contains(printed, "((let[0]") {
			t.Errorf("%s: for-init lost its parentheses:\n%s", mode, printed)
		}
		if strings.Contains(printed, "(let.length)") {
			t.Errorf("%s: dotted let access needs no parentheses:\n%s", mode, printed)
		}
		if ok, msg := CheckRoundTrip(context.Background(), b, fid, Options{Mode: mode}); !ok {
			t.Errorf("%s: %s", mode, msg)
		}
		if got := runJS(t, printed); strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("%s: output %q, want %q", mode, got, want)
		}
	}
}
