package ast

import (
	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	// ExprLiteral covers numbers, strings, true/false/nil, and '...'.
	ExprLiteral
	ExprIndex
	ExprCall
	ExprTable
	// ExprFunction is "function ... end" kept as a raw balanced token run.
	// Config tooling never looks inside function bodies.
	ExprFunction
	ExprUnary
	ExprBinary
	ExprParen
)

type Expr struct {
	Kind ExprKind
	Span source.Span

	Ident  *IdentExpr
	Lit    *LiteralExpr
	Index  *IndexExpr
	Call   *CallExpr
	Table  *TableExpr
	Func   *FuncExpr
	Unary  *UnaryExpr
	Binary *BinaryExpr
	Paren  *ParenExpr
}

type IdentExpr struct {
	Tok token.Token
}

func (e *IdentExpr) Name() string { return e.Tok.Text }

type LiteralExpr struct {
	Tok token.Token
}

// IndexExpr is "base.name" or "base[expr]".
type IndexExpr struct {
	Base    *Expr
	Bracket bool

	// dot form
	DotTok  token.Token
	NameTok token.Token

	// bracket form
	LBrackTok token.Token
	Sub       *Expr
	RBrackTok token.Token
}

// Name returns the indexed key for the dot form, or "" for brackets.
func (e *IndexExpr) Name() string {
	if e.Bracket {
		return ""
	}
	return e.NameTok.Text
}

// CallArgStyle distinguishes Lua's three call argument shapes.
type CallArgStyle uint8

const (
	// ArgsParen is "f(a, b)".
	ArgsParen CallArgStyle = iota
	// ArgsString is `f "lit"` (single string literal, no parens).
	ArgsString
	// ArgsTable is "f{...}" (single table constructor, no parens).
	ArgsTable
)

type CallExpr struct {
	Base *Expr

	// method form "base:name(...)"; both nil for plain calls
	ColonTok  *token.Token
	MethodTok *token.Token

	Style CallArgStyle

	// ArgsParen
	LParenTok token.Token
	Args      []*Expr
	Commas    []token.Token
	RParenTok token.Token

	// ArgsString / ArgsTable: the single argument
	Arg *Expr
}

type TableExpr struct {
	LBraceTok token.Token
	Fields    []*Field
	RBraceTok token.Token
}

type FieldKind uint8

const (
	// FieldValue is a positional entry: "expr".
	FieldValue FieldKind = iota
	// FieldNamed is "name = expr".
	FieldNamed
	// FieldBracket is "[expr] = expr".
	FieldBracket
)

type Field struct {
	Kind FieldKind
	Span source.Span

	NameTok   token.Token // FieldNamed
	LBrackTok token.Token // FieldBracket
	KeyExpr   *Expr       // FieldBracket
	RBrackTok token.Token // FieldBracket
	AssignTok token.Token // FieldNamed / FieldBracket
	Value     *Expr

	// Sep is the ',' or ';' after the field, nil for the last field when
	// the table has no trailing separator.
	Sep *token.Token
}

type FuncExpr struct {
	Tokens []token.Token
}

type UnaryExpr struct {
	OpTok   token.Token
	Operand *Expr
}

type BinaryExpr struct {
	X     *Expr
	OpTok token.Token
	Y     *Expr
}

type ParenExpr struct {
	LParenTok token.Token
	Inner     *Expr
	RParenTok token.Token
}
