package lexer

import (
	"nvcfg/internal/diag"
	"nvcfg/internal/token"
)

// scanString scans a quoted string literal delimited by quote ('"' or
// '\''). Escapes are consumed but not decoded here: Token.Text keeps the
// raw source slice, which is what the printer copies back out.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanBracketOrLongString handles '[': either the opener of a long
// string ("[[", "[=[", ...) or a plain LBracket.
func (lx *Lexer) scanBracketOrLongString() token.Token {
	start := lx.cursor.Mark()
	if level, ok := lx.tryOpenLongBracket(); ok {
		closed := lx.consumeLongBracketBody(level)
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		if !closed {
			lx.errLex(diag.LexUnterminatedLongBracket, sp, "unterminated long string")
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		return token.Token{Kind: token.StringLit, Span: sp, Text: text}
	}
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.LBracket, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
