package patch

import (
	"strings"

	"nvcfg/internal/ast"
	"nvcfg/internal/parser"
	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

// parseStmtSnippet parses synthesized statement text into a node. The
// snippet must parse cleanly to exactly one statement.
func parseStmtSnippet(text string) (*ast.Stmt, bool) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("patch.lua", []byte(text))
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	if res.Bag.HasErrors() || len(res.Chunk.Stmts) != 1 {
		return nil, false
	}
	if res.Chunk.Stmts[0].Kind == ast.StmtError {
		return nil, false
	}
	return res.Chunk.Stmts[0], true
}

// parseExprSnippet parses synthesized expression text into a node.
func parseExprSnippet(text string) (*ast.Expr, bool) {
	st, ok := parseStmtSnippet("_ = " + text)
	if !ok || st.Kind != ast.StmtAssign || len(st.Assign.Values) != 1 {
		return nil, false
	}
	return st.Assign.Values[0], true
}

// setLeading replaces a token's leading trivia with a single run of
// text. An empty text clears it.
func setLeading(t *token.Token, text string) {
	if text == "" {
		t.Leading = nil
		return
	}
	kind := token.TriviaSpace
	if strings.Contains(text, "\n") {
		kind = token.TriviaNewline
	}
	t.Leading = []token.Trivia{{Kind: kind, Text: text}}
}

func firstTokenOfField(f *ast.Field) *token.Token {
	var first *token.Token
	f.VisitTokens(func(t *token.Token) {
		if first == nil {
			first = t
		}
	})
	return first
}

func firstTokenOfExpr(e *ast.Expr) *token.Token {
	var first *token.Token
	e.VisitTokens(func(t *token.Token) {
		if first == nil {
			first = t
		}
	})
	return first
}

// copyLeading grafts src's leading trivia onto dst.
func copyLeading(dst, src *token.Token) {
	if src == nil {
		dst.Leading = nil
		return
	}
	dst.Leading = append([]token.Trivia(nil), src.Leading...)
}

// commaToken builds a synthetic ',' with no trivia.
func commaToken() token.Token {
	return token.Token{Kind: token.Comma, Text: ","}
}

// specText renders a PluginSpec as a single-line Lua table.
func specText(spec PluginSpec) string {
	var sb strings.Builder
	sb.WriteString("{ ")
	sb.WriteString(quoteLua(spec.Name))
	if len(spec.Dependencies) > 0 {
		sb.WriteString(", dependencies = { ")
		for i, d := range spec.Dependencies {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quoteLua(d))
		}
		sb.WriteString(" }")
	}
	if len(spec.Events) == 1 {
		sb.WriteString(", event = ")
		sb.WriteString(quoteLua(spec.Events[0]))
	} else if len(spec.Events) > 1 {
		sb.WriteString(", event = { ")
		for i, ev := range spec.Events {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quoteLua(ev))
		}
		sb.WriteString(" }")
	}
	if spec.Enabled != nil {
		if *spec.Enabled {
			sb.WriteString(", enabled = true")
		} else {
			sb.WriteString(", enabled = false")
		}
	}
	sb.WriteString(" }")
	return sb.String()
}
