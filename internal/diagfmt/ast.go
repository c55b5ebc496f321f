package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"jsfront/internal/ast"
	"jsfront/internal/source"
)

type SpanJSON struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// ASTNodeOutput is one node of the AST dump. Name carries identifiers and
// keys, Value carries literal text and operators.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Value    string          `json:"value,omitempty"`
	Detail   string          `json:"detail,omitempty"`
	Span     SpanJSON        `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

func spanJSON(sp source.Span) SpanJSON { return SpanJSON{Start: sp.Start, End: sp.End} }

// FormatASTJSON writes the AST of fileID as indented JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := BuildASTOutput(builder, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

// BuildASTOutput converts the file into a generic node tree.
func BuildASTOutput(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file %d not found", fileID)
	}
	d := astDumper{b: builder}
	root := ASTNodeOutput{Type: "Program", Span: spanJSON(file.Span)}
	for _, id := range file.Body {
		root.Children = append(root.Children, d.stmt(id))
	}
	return root, nil
}

type astDumper struct {
	b *ast.Builder
}

func (d astDumper) stmts(ids []ast.StmtID) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.stmt(id))
	}
	return out
}

func (d astDumper) exprs(ids []ast.ExprID) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.expr(id))
	}
	return out
}

// optional appends the node for id when it is set.
func (d astDumper) optional(out []ASTNodeOutput, id ast.ExprID) []ASTNodeOutput {
	if id.IsValid() {
		out = append(out, d.expr(id))
	}
	return out
}

func (d astDumper) optionalStmt(out []ASTNodeOutput, id ast.StmtID) []ASTNodeOutput {
	if id.IsValid() {
		out = append(out, d.stmt(id))
	}
	return out
}

func (d astDumper) stmt(id ast.StmtID) ASTNodeOutput {
	b := d.b
	st := b.Stmts.Get(id)
	if st == nil {
		return ASTNodeOutput{Type: "<missing>"}
	}
	node := ASTNodeOutput{Type: st.Kind.String(), Span: spanJSON(st.Span)}
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := b.Stmts.Expr(id)
		node.Children = d.optional(nil, data.Expr)
	case ast.StmtVarDecl:
		data, _ := b.Stmts.VarDecl(id)
		node.Value = data.Kind.String()
		for _, decl := range data.Decls {
			node.Children = append(node.Children, ASTNodeOutput{
				Type:     "VariableDeclarator",
				Name:     b.Name(decl.Name),
				Span:     spanJSON(decl.Span),
				Children: d.optional(nil, decl.Init),
			})
		}
	case ast.StmtFuncDecl:
		fn, _ := b.Stmts.FuncDecl(id)
		d.fillFunc(&node, fn)
	case ast.StmtClassDecl:
		cls, _ := b.Stmts.ClassDecl(id)
		d.fillClass(&node, cls)
	case ast.StmtBlock:
		data, _ := b.Stmts.Block(id)
		node.Children = d.stmts(data.Stmts)
	case ast.StmtReturn, ast.StmtThrow:
		data, _ := b.Stmts.Arg(id)
		node.Children = d.optional(nil, data.Arg)
	case ast.StmtIf:
		data, _ := b.Stmts.If(id)
		node.Children = d.optionalStmt(d.optionalStmt(d.optional(nil, data.Cond), data.Then), data.Else)
	case ast.StmtWhile:
		data, _ := b.Stmts.Loop(id)
		node.Children = d.optionalStmt(d.optional(nil, data.Cond), data.Body)
	case ast.StmtDoWhile:
		data, _ := b.Stmts.Loop(id)
		node.Children = d.optional(d.optionalStmt(nil, data.Body), data.Cond)
	case ast.StmtFor:
		data, _ := b.Stmts.For(id)
		out := d.optionalStmt(nil, data.Init)
		out = d.optional(out, data.Test)
		out = d.optional(out, data.Update)
		node.Children = d.optionalStmt(out, data.Body)
	case ast.StmtForIn, ast.StmtForOf:
		data, _ := b.Stmts.ForInOf(id)
		out := d.optionalStmt(nil, data.Decl)
		out = d.optional(out, data.Target)
		out = d.optional(out, data.Right)
		node.Children = d.optionalStmt(out, data.Body)
	}
	return node
}

func (d astDumper) expr(id ast.ExprID) ASTNodeOutput {
	b := d.b
	ex := b.Exprs.Get(id)
	if ex == nil {
		return ASTNodeOutput{Type: "<missing>"}
	}
	node := ASTNodeOutput{Type: ex.Kind.String(), Span: spanJSON(ex.Span)}
	switch ex.Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		node.Name = b.Name(data.Name)
	case ast.ExprLit:
		data, _ := b.Exprs.Literal(id)
		node.Value = b.Name(data.Raw)
		node.Detail = data.Kind.String()
	case ast.ExprArray:
		data, _ := b.Exprs.Array(id)
		for _, e := range data.Elems {
			if !e.IsValid() {
				node.Children = append(node.Children, ASTNodeOutput{Type: "Hole"})
				continue
			}
			node.Children = append(node.Children, d.expr(e))
		}
	case ast.ExprObject:
		data, _ := b.Exprs.Object(id)
		for i := range data.Props {
			node.Children = append(node.Children, d.property(&data.Props[i]))
		}
	case ast.ExprFunc, ast.ExprArrow:
		fn, _ := b.Exprs.Func(id)
		d.fillFunc(&node, fn)
	case ast.ExprClass:
		cls, _ := b.Exprs.Class(id)
		d.fillClass(&node, cls)
	case ast.ExprTemplate:
		data, _ := b.Exprs.Template(id)
		for i, q := range data.Quasis {
			node.Children = append(node.Children, ASTNodeOutput{Type: "TemplateElement", Value: q.Raw, Span: spanJSON(q.Span)})
			if i < len(data.Exprs) {
				node.Children = append(node.Children, d.expr(data.Exprs[i]))
			}
		}
	case ast.ExprTaggedTemplate:
		data, _ := b.Exprs.TaggedTemplate(id)
		node.Children = []ASTNodeOutput{d.expr(data.Tag), d.expr(data.Quasi)}
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		if data.Optional {
			node.Detail = "optional"
		}
		node.Children = append([]ASTNodeOutput{d.expr(data.Callee)}, d.exprs(data.Args)...)
	case ast.ExprNew:
		data, _ := b.Exprs.New(id)
		node.Children = append([]ASTNodeOutput{d.expr(data.Callee)}, d.exprs(data.Args)...)
	case ast.ExprMember:
		data, _ := b.Exprs.Member(id)
		switch {
		case data.Optional:
			node.Detail = "optional"
		case data.Private:
			node.Detail = "private"
		}
		node.Children = []ASTNodeOutput{d.expr(data.Object)}
		if data.Computed.IsValid() {
			node.Children = append(node.Children, d.expr(data.Computed))
		} else {
			node.Name = b.Name(data.Property)
		}
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		node.Value = data.Op.String()
		node.Children = []ASTNodeOutput{d.expr(data.Operand)}
	case ast.ExprUpdate:
		data, _ := b.Exprs.Update(id)
		node.Value = data.Op.String()
		node.Detail = "postfix"
		if data.Prefix {
			node.Detail = "prefix"
		}
		node.Children = []ASTNodeOutput{d.expr(data.Operand)}
	case ast.ExprBinary, ast.ExprLogical:
		data, _ := b.Exprs.Binary(id)
		node.Value = data.Op.String()
		node.Children = []ASTNodeOutput{d.expr(data.Left), d.expr(data.Right)}
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(id)
		node.Value = data.Op.String()
		node.Children = []ASTNodeOutput{d.expr(data.Target), d.expr(data.Value)}
	case ast.ExprCond:
		data, _ := b.Exprs.Cond(id)
		node.Children = []ASTNodeOutput{d.expr(data.Test), d.expr(data.Then), d.expr(data.Else)}
	case ast.ExprSeq:
		data, _ := b.Exprs.Seq(id)
		node.Children = d.exprs(data.Exprs)
	case ast.ExprSpread, ast.ExprParen:
		data, _ := b.Exprs.Wrap(id)
		node.Children = []ASTNodeOutput{d.expr(data.Inner)}
	}
	return node
}

func (d astDumper) keyName(key ast.PropKey) string {
	if key.Kind == ast.KeyComputed {
		return "[computed]"
	}
	return d.b.Name(key.Name)
}

func (d astDumper) property(prop *ast.Property) ASTNodeOutput {
	node := ASTNodeOutput{Type: "Property", Span: spanJSON(prop.Span)}
	switch prop.Kind {
	case ast.PropSpread:
		node.Type = "SpreadElement"
		node.Children = d.optional(nil, prop.Value)
		return node
	case ast.PropShorthand:
		node.Detail = "shorthand"
	case ast.PropMethod:
		node.Type = "MethodDeclaration"
	case ast.PropGet:
		node.Type, node.Detail = "MethodDeclaration", "get"
	case ast.PropSet:
		node.Type, node.Detail = "MethodDeclaration", "set"
	}
	node.Name = d.keyName(prop.Key)
	if prop.Key.Kind == ast.KeyComputed {
		node.Children = append(node.Children, d.expr(prop.Key.Computed))
	}
	if prop.Func.IsValid() {
		fn := ASTNodeOutput{}
		d.fillFunc(&fn, prop.Func)
		node.Children = append(node.Children, fn.Children...)
		return node
	}
	if prop.Kind != ast.PropShorthand {
		node.Children = d.optional(node.Children, prop.Value)
	}
	return node
}

// fillFunc adds name, parameters and body of fn to node.
func (d astDumper) fillFunc(node *ASTNodeOutput, id ast.FuncID) {
	fn := d.b.Funcs.Get(id)
	if fn == nil {
		return
	}
	node.Name = d.b.Name(fn.Name)
	for _, p := range fn.Params {
		param := ASTNodeOutput{Type: "Param", Name: d.b.Name(p.Name), Span: spanJSON(p.Span)}
		if p.Rest {
			param.Detail = "rest"
		}
		param.Children = d.optional(nil, p.Default)
		node.Children = append(node.Children, param)
	}
	node.Children = d.optionalStmt(node.Children, fn.Body)
	node.Children = d.optional(node.Children, fn.ExprBody)
}

func (d astDumper) fillClass(node *ASTNodeOutput, id ast.ClassID) {
	cls := d.b.Classes.Get(id)
	if cls == nil {
		return
	}
	node.Name = d.b.Name(cls.Name)
	if cls.Super.IsValid() {
		node.Children = append(node.Children, ASTNodeOutput{
			Type:     "Extends",
			Span:     spanJSON(d.b.Exprs.Get(cls.Super).Span),
			Children: []ASTNodeOutput{d.expr(cls.Super)},
		})
	}
	for i := range cls.Members {
		node.Children = append(node.Children, d.member(&cls.Members[i]))
	}
}

func (d astDumper) member(m *ast.ClassMember) ASTNodeOutput {
	node := ASTNodeOutput{Type: "MethodDeclaration", Name: d.keyName(m.Key), Span: spanJSON(m.Span)}
	switch {
	case m.Kind == ast.MemberField:
		node.Type = "FieldDeclaration"
	case m.IsConstructor(d.b):
		node.Detail = "constructor"
	case m.Kind == ast.MemberGetter:
		node.Detail = "get"
	case m.Kind == ast.MemberSetter:
		node.Detail = "set"
	}
	if m.Static {
		if node.Detail != "" {
			node.Detail = "static " + node.Detail
		} else {
			node.Detail = "static"
		}
	}
	if m.Key.Kind == ast.KeyComputed {
		node.Children = append(node.Children, d.expr(m.Key.Computed))
	}
	if m.Kind == ast.MemberField {
		node.Children = d.optional(node.Children, m.Value)
		return node
	}
	fn := ASTNodeOutput{}
	d.fillFunc(&fn, m.Func)
	node.Children = append(node.Children, fn.Children...)
	return node
}
