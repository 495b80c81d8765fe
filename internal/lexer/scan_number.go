package lexer

import (
	"nvcfg/internal/diag"
	"nvcfg/internal/token"
)

// scanNumber scans Lua numerals: decimal integers and floats with an
// optional exponent ("1", "3.14", ".5", "1e-3"), and hex literals with
// an optional binary exponent ("0xFF", "0x1p4").
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		return lx.scanHexNumber(start)
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		if !lx.scanExponent(isDec) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "malformed number: exponent has no digits")
			return lx.invalidFrom(start)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) scanHexNumber(start Mark) token.Token {
	lx.cursor.Bump() // '0'
	lx.cursor.Bump() // 'x'

	digits := 0
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
		digits++
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
	}
	if digits == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "malformed number: hex literal has no digits")
		return lx.invalidFrom(start)
	}
	if b := lx.cursor.Peek(); b == 'p' || b == 'P' {
		if !lx.scanExponent(isDec) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "malformed number: exponent has no digits")
			return lx.invalidFrom(start)
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanExponent consumes the exponent marker, an optional sign, and the
// digit run. Reports false when no digits follow.
func (lx *Lexer) scanExponent(isDigit func(byte) bool) bool {
	lx.cursor.Bump() // 'e'/'E'/'p'/'P'
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	n := 0
	for isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	return n > 0
}

func (lx *Lexer) invalidFrom(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
