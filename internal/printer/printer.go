// Package printer serializes a syntax tree back to text. For trees that
// came straight from the parser the output is byte-identical to the
// input: every token carries its leading trivia, and the chunk's EOF
// token carries whatever trailed the last statement.
package printer

import (
	"strings"

	"nvcfg/internal/ast"
	"nvcfg/internal/token"
)

// Print renders the chunk: leading trivia then text for every token in
// source order.
func Print(c *ast.Chunk) string {
	var sb strings.Builder
	c.VisitTokens(func(t *token.Token) {
		sb.WriteString(t.LeadingText())
		sb.WriteString(t.Text)
	})
	return sb.String()
}

// PrintStmt renders a single statement, including its leading trivia.
func PrintStmt(s *ast.Stmt) string {
	var sb strings.Builder
	s.VisitTokens(func(t *token.Token) {
		sb.WriteString(t.LeadingText())
		sb.WriteString(t.Text)
	})
	return sb.String()
}

// PrintExpr renders a single expression, including its leading trivia.
func PrintExpr(e *ast.Expr) string {
	var sb strings.Builder
	e.VisitTokens(func(t *token.Token) {
		sb.WriteString(t.LeadingText())
		sb.WriteString(t.Text)
	})
	return sb.String()
}
