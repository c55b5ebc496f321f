package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"jsfront/internal/ast"
	"jsfront/internal/parser"
	"jsfront/internal/source"
)

func parseFixture(t *testing.T) (*ast.Builder, ast.FileID, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(filepath.Join("..", "..", "testdata", "let_and_const.js"))
	if err != nil {
		t.Fatal(err)
	}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.Parse(context.Background(), fs, fs.Get(id), b, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return b, res.File, fs
}

func TestFormatASTJSONShape(t *testing.T) {
	b, fid, _ := parseFixture(t)
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, b, fid); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Type != "Program" || len(root.Children) != 8 {
		t.Fatalf("unexpected root %s with %d children", root.Type, len(root.Children))
	}

	first := root.Children[0]
	if first.Type != "VariableDeclaration" || first.Value != "let" || first.Children[0].Name != "t" {
		t.Errorf("unexpected first statement %+v", first)
	}

	cls := root.Children[6]
	if cls.Type != "ClassDeclaration" || cls.Name != "clsB" || len(cls.Children) != 3 {
		t.Fatalf("unexpected class %+v", cls)
	}
	if cls.Children[0].Type != "FieldDeclaration" || cls.Children[0].Name != "n" {
		t.Errorf("first member must be field n, got %+v", cls.Children[0])
	}
	if cls.Children[1].Detail != "constructor" {
		t.Errorf("second member must be the constructor, got %+v", cls.Children[1])
	}

	obj := root.Children[4].Children[0].Children[0]
	if obj.Type != "ObjectLiteral" || obj.Children[1].Name != "f" || obj.Children[1].Children[0].Type != "FunctionExpression" {
		t.Errorf("unexpected clsA literal %+v", obj)
	}
}

func TestFormatASTTree(t *testing.T) {
	b, fid, fs := parseFixture(t)
	var buf bytes.Buffer
	if err := FormatASTTree(&buf, b, fid, fs, TreeOpts{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Program ") {
		t.Fatalf("tree must start with the program: %q", out)
	}
	for _, want := range []string{
		"├─ VariableDeclaration const\n",
		"│  └─ VariableDeclarator tc\n",
		"├─ FieldDeclaration n\n",
		"MethodDeclaration constructor (constructor)\n",
		"TemplateLiteral\n",
		"MemberExpression n\n",
		"└─ VariableDeclaration const\n",
		"CallExpression\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in tree:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("uncolored tree has escapes")
	}

	buf.Reset()
	if err := FormatASTTree(&buf, b, fid, fs, TreeOpts{Spans: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "VariableDeclaration let @4:1-4:9") {
		t.Errorf("span suffix missing:\n%s", buf.String())
	}
}
