// Package token defines lexical token kinds and trivia for Lua sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace, newlines, and comments never appear in the main token
//     stream; they ride on the next token as leading Trivia. This is what
//     makes a token stream reprintable byte-for-byte.
//   - Long strings ([[...]]) are StringLit tokens; long comments
//     (--[[...]]) are trivia.
package token
