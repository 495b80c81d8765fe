package token_test

import (
	"testing"

	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.NumberLit, token.StringLit, token.KwTrue, token.KwFalse, token.KwNil,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLocal, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	kws := []token.Kind{token.KwLocal, token.KwFunction, token.KwEnd, token.KwReturn}
	for _, k := range kws {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	if tok(token.Ident).IsKeyword() {
		t.Fatalf("Ident must NOT be keyword")
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		k    token.Kind
		want string
	}{
		{token.Assign, "="},
		{token.DotDot, ".."},
		{token.KwLocal, "local"},
		{token.StringLit, "string"},
		{token.EOF, "eof"},
	}
	for _, tc := range cases {
		if got := tc.k.String(); got != tc.want {
			t.Fatalf("String(%d) = %q, want %q", tc.k, got, tc.want)
		}
	}
}

func TestLeadingText(t *testing.T) {
	tk := token.Token{
		Kind: token.Ident,
		Text: "vim",
		Leading: []token.Trivia{
			{Kind: token.TriviaLineComment, Text: "-- options"},
			{Kind: token.TriviaNewline, Text: "\n"},
		},
	}
	if got := tk.LeadingText(); got != "-- options\n" {
		t.Fatalf("LeadingText = %q", got)
	}
}
