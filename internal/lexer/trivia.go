package lexer

import (
	"nvcfg/internal/diag"
	"nvcfg/internal/token"
)

// collectLeadingTrivia gathers the run of trivia before the next
// significant token:
//   - ' ' and '\t' coalesce into one TriviaSpace
//   - consecutive '\n' coalesce into one TriviaNewline
//   - "--..." up to newline -> TriviaLineComment
//   - "--[[...]]" (any '=' level) -> TriviaLongComment; if unterminated,
//     report and cut at EOF
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		if b == '-' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '-' && b1 == '-' {
				lx.scanCommentIntoHold()
				continue
			}
		}

		break
	}
}

// "--..." or "--[[...]]"
func (lx *Lexer) scanCommentIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '-'
	lx.cursor.Bump() // '-'

	if level, ok := lx.tryOpenLongBracket(); ok {
		closed := lx.consumeLongBracketBody(level)
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.errLex(diag.LexUnterminatedLongBracket, sp, "unterminated long comment")
		}
		lx.hold = append(lx.hold, token.Trivia{
			Kind: token.TriviaLongComment,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return
	}

	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaLineComment,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// tryOpenLongBracket consumes "[" "="* "[" and returns the '=' count.
// On failure the cursor is left untouched.
func (lx *Lexer) tryOpenLongBracket() (level int, ok bool) {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('[') {
		return 0, false
	}
	for lx.cursor.Eat('=') {
		level++
	}
	if !lx.cursor.Eat('[') {
		lx.cursor.Reset(start)
		return 0, false
	}
	return level, true
}

// consumeLongBracketBody advances past the matching "]" "="*level "]".
// Returns false if the closer never appears before EOF.
func (lx *Lexer) consumeLongBracketBody(level int) bool {
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != ']' {
			lx.cursor.Bump()
			continue
		}
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		n := 0
		for lx.cursor.Eat('=') {
			n++
		}
		if n == level && lx.cursor.Eat(']') {
			return true
		}
		lx.cursor.Reset(m)
		lx.cursor.Bump()
	}
	return false
}
