package parser

import (
	"testing"

	"nvcfg/internal/ast"
	"nvcfg/internal/diag"
	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

func parse(t *testing.T, src string) Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("init.lua", []byte(src))
	return ParseFile(fs.Get(id), Options{})
}

func TestParseAssign(t *testing.T) {
	res := parse(t, "vim.opt.tabstop = 4\n")
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	if len(res.Chunk.Stmts) != 1 {
		t.Fatalf("stmt count = %d", len(res.Chunk.Stmts))
	}
	st := res.Chunk.Stmts[0]
	if st.Kind != ast.StmtAssign {
		t.Fatalf("kind = %v, want StmtAssign", st.Kind)
	}
	tgt := st.Assign.Targets[0]
	if tgt.Kind != ast.ExprIndex || tgt.Index.Name() != "tabstop" {
		t.Fatalf("target = %+v, want index .tabstop", tgt)
	}
	val := st.Assign.Values[0]
	if val.Kind != ast.ExprLiteral || val.Lit.Tok.Text != "4" {
		t.Fatalf("value = %+v, want literal 4", val)
	}
}

func TestParseLocal(t *testing.T) {
	res := parse(t, "local a, b = 1, 'x'\nlocal c\n")
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	first := res.Chunk.Stmts[0]
	if first.Kind != ast.StmtLocal {
		t.Fatalf("kind = %v", first.Kind)
	}
	if len(first.Local.Names) != 2 || first.Local.Names[1].Text != "b" {
		t.Fatalf("names = %+v", first.Local.Names)
	}
	if len(first.Local.Values) != 2 {
		t.Fatalf("values = %d, want 2", len(first.Local.Values))
	}
	second := res.Chunk.Stmts[1]
	if second.Local.AssignTok != nil {
		t.Fatalf("bare local must have no initializer")
	}
}

func TestParseCallStatement(t *testing.T) {
	res := parse(t, `require("lazy").setup({ { "nvim-lua/plenary.nvim" } })`)
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	st := res.Chunk.Stmts[0]
	if st.Kind != ast.StmtCall {
		t.Fatalf("kind = %v, want StmtCall", st.Kind)
	}
	call := st.Call.Call.Call
	if call.Style != ast.ArgsParen || len(call.Args) != 1 {
		t.Fatalf("call = %+v", call)
	}
	if call.Args[0].Kind != ast.ExprTable {
		t.Fatalf("arg kind = %v, want table", call.Args[0].Kind)
	}
	// base is require("lazy").setup, an index over a call
	base := call.Base
	if base.Kind != ast.ExprIndex || base.Index.Name() != "setup" {
		t.Fatalf("base = %+v", base)
	}
}

func TestParseTableFields(t *testing.T) {
	res := parse(t, `t = { "pos", key = 1, ["expr"] = true, }`)
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	tbl := res.Chunk.Stmts[0].Assign.Values[0].Table
	if len(tbl.Fields) != 3 {
		t.Fatalf("field count = %d", len(tbl.Fields))
	}
	if tbl.Fields[0].Kind != ast.FieldValue {
		t.Fatalf("field 0 = %v", tbl.Fields[0].Kind)
	}
	if tbl.Fields[1].Kind != ast.FieldNamed || tbl.Fields[1].NameTok.Text != "key" {
		t.Fatalf("field 1 = %+v", tbl.Fields[1])
	}
	if tbl.Fields[2].Kind != ast.FieldBracket {
		t.Fatalf("field 2 = %v", tbl.Fields[2].Kind)
	}
	if tbl.Fields[2].Sep == nil {
		t.Fatalf("trailing separator lost")
	}
}

func TestParseFunctionExprOpaque(t *testing.T) {
	res := parse(t, "cfg = function()\n  if x then return end\nend\n")
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	v := res.Chunk.Stmts[0].Assign.Values[0]
	if v.Kind != ast.ExprFunction {
		t.Fatalf("value kind = %v, want function", v.Kind)
	}
	if v.Func.Tokens[0].Kind != token.KwFunction {
		t.Fatalf("first token = %v", v.Func.Tokens[0].Kind)
	}
	last := v.Func.Tokens[len(v.Func.Tokens)-1]
	if last.Text != "end" {
		t.Fatalf("last token = %q, want end", last.Text)
	}
}

func TestParseControlFlowOpaque(t *testing.T) {
	res := parse(t, "if vim.g.vscode then\n  return\nend\nvim.g.mapleader = ' '\n")
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	if res.Chunk.Stmts[0].Kind != ast.StmtOpaque {
		t.Fatalf("kind = %v, want StmtOpaque", res.Chunk.Stmts[0].Kind)
	}
	if res.Chunk.Stmts[1].Kind != ast.StmtAssign {
		t.Fatalf("kind = %v, want StmtAssign after opaque block", res.Chunk.Stmts[1].Kind)
	}
}

func TestParseReturnStatement(t *testing.T) {
	res := parse(t, "return M\n")
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	st := res.Chunk.Stmts[0]
	if st.Kind != ast.StmtReturn || len(st.Return.Values) != 1 {
		t.Fatalf("return stmt = %+v", st)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	res := parse(t, "vim.opt.tabstop 4\nx = 1\n")
	if !res.Bag.HasErrors() {
		t.Fatalf("expected syntax error")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynExpectAssign {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing SynExpectAssign: %+v", res.Bag.Items())
	}
	// the trailing assignment must survive recovery
	last := res.Chunk.Stmts[len(res.Chunk.Stmts)-1]
	if last.Kind != ast.StmtAssign {
		t.Fatalf("statement after error = %v, want StmtAssign", last.Kind)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	res := parse(t, "x = 1 + 2 * 3\n")
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	v := res.Chunk.Stmts[0].Assign.Values[0]
	if v.Kind != ast.ExprBinary || v.Binary.OpTok.Text != "+" {
		t.Fatalf("root op = %+v, want +", v)
	}
	if v.Binary.Y.Kind != ast.ExprBinary || v.Binary.Y.Binary.OpTok.Text != "*" {
		t.Fatalf("rhs = %+v, want 2 * 3", v.Binary.Y)
	}
}

func TestChunkHasErrors(t *testing.T) {
	res := parse(t, "local = 1\n")
	if !res.Chunk.HasErrors() && !res.Bag.HasErrors() {
		t.Fatalf("expected error surface on bad local")
	}
}
