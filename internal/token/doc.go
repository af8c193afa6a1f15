// Package token defines lexical token kinds and trivia for C#-family sources.
// Invariants:
//   - Token.Text is the exact source text of the token (no trivia).
//   - Trivia before a token is Leading; trivia after it up to and including the
//     first line break is Trailing. Every source byte belongs to exactly one
//     token or one trivia item.
//   - Contextual keywords that can start a declaration (async, partial, record)
//     are lexed as keywords; the front-end decides from the parse tree whether
//     they are used as modifiers.
//   - Synthesized tokens carry a zero Span.
package token
