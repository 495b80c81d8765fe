package token

import "nvcfg/internal/source"

// TriviaKind classifies non-semantic source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaLongComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line-comment"
	case TriviaLongComment:
		return "long-comment"
	}
	return "unknown"
}

// Trivia is a run of whitespace or a comment attached to the token that
// follows it. Text always covers Span exactly.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
