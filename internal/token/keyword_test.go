package token_test

import (
	"testing"

	"nvcfg/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		ident string
		kind  token.Kind
		ok    bool
	}{
		{"local", token.KwLocal, true},
		{"function", token.KwFunction, true},
		{"nil", token.KwNil, true},
		{"Local", token.Invalid, false},
		{"vim", token.Invalid, false},
		{"", token.Invalid, false},
	}
	for _, tc := range cases {
		k, ok := token.LookupKeyword(tc.ident)
		if ok != tc.ok {
			t.Fatalf("LookupKeyword(%q) ok = %v, want %v", tc.ident, ok, tc.ok)
		}
		if ok && k != tc.kind {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", tc.ident, k, tc.kind)
		}
	}
}
