package lexer

import (
	"strings"
	"testing"

	"nvcfg/internal/diag"
	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lua", []byte(src))
	bag := diag.NewBag(0)
	toks := Tokenize(fs.Get(id), Options{Reporter: diag.NewBagReporter(bag)})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestLexSimpleAssign(t *testing.T) {
	toks, bag := lexAll(t, "vim.opt.tabstop = 4\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{
		token.Ident, token.Dot, token.Ident, token.Dot, token.Ident,
		token.Assign, token.NumberLit, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexKeywordsAndStrings(t *testing.T) {
	toks, bag := lexAll(t, `local name = "gruvbox"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.KwLocal {
		t.Fatalf("token[0] = %v, want local keyword", toks[0].Kind)
	}
	if toks[3].Kind != token.StringLit || toks[3].Text != `"gruvbox"` {
		t.Fatalf("string token = %v %q", toks[3].Kind, toks[3].Text)
	}
}

func TestLexSingleQuoteString(t *testing.T) {
	toks, bag := lexAll(t, `x = 'it\'s fine'`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[2].Kind != token.StringLit {
		t.Fatalf("token[2] = %v, want StringLit", toks[2].Kind)
	}
}

func TestLexLongString(t *testing.T) {
	toks, bag := lexAll(t, "s = [==[raw ]] body]==]")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[2].Kind != token.StringLit || toks[2].Text != "[==[raw ]] body]==]" {
		t.Fatalf("long string = %v %q", toks[2].Kind, toks[2].Text)
	}
}

func TestLexComments(t *testing.T) {
	toks, bag := lexAll(t, "-- options\nx = 1 --[[ block\ncomment ]] y = 2")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	first := toks[0]
	if len(first.Leading) == 0 || first.Leading[0].Kind != token.TriviaLineComment {
		t.Fatalf("leading trivia = %+v, want line comment first", first.Leading)
	}
	// find token 'y' and check the long comment rode on it
	var yTok token.Token
	for _, tk := range toks {
		if tk.Text == "y" {
			yTok = tk
		}
	}
	found := false
	for _, tr := range yTok.Leading {
		if tr.Kind == token.TriviaLongComment {
			found = true
		}
	}
	if !found {
		t.Fatalf("long comment not attached to following token: %+v", yTok.Leading)
	}
}

func TestLexNumbers(t *testing.T) {
	cases := []string{"4", "3.14", ".5", "1e-3", "0xFF", "0x1p4"}
	for _, src := range cases {
		toks, bag := lexAll(t, "n = "+src)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics: %+v", src, bag.Items())
		}
		if toks[2].Kind != token.NumberLit || toks[2].Text != src {
			t.Fatalf("%q lexed as %v %q", src, toks[2].Kind, toks[2].Text)
		}
	}
}

func TestLexBadNumber(t *testing.T) {
	_, bag := lexAll(t, "n = 1e+")
	if !bag.HasErrors() {
		t.Fatalf("expected LexBadNumber")
	}
	if bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("code = %v, want LexBadNumber", bag.Items()[0].Code)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, `s = "oops`)
	if !bag.HasErrors() {
		t.Fatalf("expected unterminated string error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code = %v, want LexUnterminatedString", bag.Items()[0].Code)
	}
}

func TestLexUnterminatedLongComment(t *testing.T) {
	_, bag := lexAll(t, "--[[ never closed\nx = 1")
	if !bag.HasErrors() {
		t.Fatalf("expected unterminated long bracket error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedLongBracket {
		t.Fatalf("code = %v, want LexUnterminatedLongBracket", bag.Items()[0].Code)
	}
}

func TestLexOperators(t *testing.T) {
	toks, bag := lexAll(t, "a == b ~= c <= d .. e ... #f")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	wantOps := []token.Kind{token.EqEq, token.TildeEq, token.LtEq, token.DotDot, token.Ellipsis, token.Hash}
	var gotOps []token.Kind
	for _, tk := range toks {
		if tk.IsPunctOrOp() {
			gotOps = append(gotOps, tk.Kind)
		}
	}
	if len(gotOps) != len(wantOps) {
		t.Fatalf("ops = %v, want %v", gotOps, wantOps)
	}
	for i := range wantOps {
		if gotOps[i] != wantOps[i] {
			t.Fatalf("op[%d] = %v, want %v", i, gotOps[i], wantOps[i])
		}
	}
}

// Every byte of input must be recoverable from trivia + token text.
func TestLexLossless(t *testing.T) {
	srcs := []string{
		"",
		"\n\n",
		"vim.opt.tabstop = 4\n",
		"-- header\nlocal o = vim.opt\no.number = true  -- trailing\n",
		"require(\"lazy\").setup({\n  { \"folke/tokyonight.nvim\", lazy = false },\n})\n",
		"--[[ block ]] x = 1",
	}
	for _, src := range srcs {
		toks, _ := lexAll(t, src)
		var sb strings.Builder
		for _, tk := range toks {
			sb.WriteString(tk.LeadingText())
			sb.WriteString(tk.Text)
		}
		if sb.String() != src {
			t.Fatalf("lossless reprint failed:\n got %q\nwant %q", sb.String(), src)
		}
	}
}

func TestLexPeek(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lua", []byte("a = 1"))
	lx := New(fs.Get(id), Options{})

	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Text != n.Text {
		t.Fatalf("Peek %v != Next %v", p, n)
	}
	if lx.Next().Kind != token.Assign {
		t.Fatalf("expected Assign after peeked ident")
	}
}
