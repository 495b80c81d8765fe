// Package ast defines the concrete syntax tree for Lua configuration
// sources. Nodes are closed kind-tagged variants: a Stmt or Expr carries
// its kind plus exactly one non-nil payload. Every token of the input is
// owned by exactly one node (or by the chunk's EOF token), in source
// order, which is what makes reprinting byte-exact.
package ast

import (
	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

// Chunk is the root of a parsed file: a statement list plus the EOF
// token, which carries any trailing trivia.
type Chunk struct {
	Span  source.Span
	Stmts []*Stmt
	EOF   token.Token
}
