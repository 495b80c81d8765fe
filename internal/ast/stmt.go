package ast

import (
	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

type StmtKind uint8

const (
	// StmtAssign is "target[, target] = value[, value]".
	StmtAssign StmtKind = iota
	// StmtLocal is "local name[, name] [= value[, value]]".
	StmtLocal
	// StmtCall is a call used as a statement, e.g. require("lazy").setup{...}.
	StmtCall
	// StmtReturn is "return [value[, value]]".
	StmtReturn
	// StmtDo is "do ... end".
	StmtDo
	// StmtSemi is a bare ';'.
	StmtSemi
	// StmtOpaque is a syntactically balanced statement the model does not
	// interpret (if/while/for/repeat/function declarations, goto, labels).
	// Kept verbatim; it is valid Lua, just not configuration.
	StmtOpaque
	// StmtError is an unparseable token run kept verbatim so the rest of
	// the tree stays printable.
	StmtError
)

type Stmt struct {
	Kind StmtKind
	Span source.Span

	Assign *AssignStmt
	Local  *LocalStmt
	Call   *CallStmt
	Return *ReturnStmt
	Do     *DoStmt
	Semi   *SemiStmt
	Opaque *OpaqueStmt
	Error  *ErrorStmt
}

type AssignStmt struct {
	Targets     []*Expr
	Commas      []token.Token // between targets
	AssignTok   token.Token
	Values      []*Expr
	ValueCommas []token.Token // between values
}

type LocalStmt struct {
	LocalTok    token.Token
	Names       []token.Token // identifiers
	NameCommas  []token.Token
	AssignTok   *token.Token // nil when no initializer
	Values      []*Expr
	ValueCommas []token.Token
}

type CallStmt struct {
	Call *Expr // always ExprCall
}

type ReturnStmt struct {
	ReturnTok token.Token
	Values    []*Expr
	Commas    []token.Token
}

type DoStmt struct {
	DoTok  token.Token
	Body   []*Stmt
	EndTok token.Token
}

type SemiStmt struct {
	Tok token.Token
}

type OpaqueStmt struct {
	Tokens []token.Token
}

type ErrorStmt struct {
	Tokens []token.Token
}
