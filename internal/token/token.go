package token

import (
	"nvcfg/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number, string, boolean, or nil
// literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNil:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a Lua keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwAnd, KwBreak, KwDo, KwElse, KwElseif, KwEnd, KwFalse, KwFor,
		KwFunction, KwGoto, KwIf, KwIn, KwLocal, KwNil, KwNot, KwOr,
		KwRepeat, KwReturn, KwThen, KwTrue, KwUntil, KwWhile:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Caret, Hash, Assign, EqEq,
		TildeEq, Lt, LtEq, Gt, GtEq, Semicolon, Colon, Comma, Dot,
		DotDot, Ellipsis, LParen, RParen, LBrace, RBrace, LBracket, RBracket:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// LeadingText concatenates the token's leading trivia text in order.
func (t Token) LeadingText() string {
	if len(t.Leading) == 0 {
		return ""
	}
	n := 0
	for _, tr := range t.Leading {
		n += len(tr.Text)
	}
	buf := make([]byte, 0, n)
	for _, tr := range t.Leading {
		buf = append(buf, tr.Text...)
	}
	return string(buf)
}
