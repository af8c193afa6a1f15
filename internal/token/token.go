package token

import (
	"strings"

	"declfix/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  TriviaList
	Trailing TriviaList
}

// New returns a synthesized token without trivia.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// WithLeading returns a copy of t with its leading trivia replaced.
func (t Token) WithLeading(l TriviaList) Token {
	t.Leading = l
	return t
}

// WithTrailing returns a copy of t with its trailing trivia replaced.
func (t Token) WithTrailing(l TriviaList) Token {
	t.Trailing = l
	return t
}

// FullText returns leading trivia, text and trailing trivia.
func (t Token) FullText() string {
	var sb strings.Builder
	t.WriteFull(&sb)
	return sb.String()
}

// WriteFull appends the full text of t to sb.
func (t Token) WriteFull(sb *strings.Builder) {
	for _, tv := range t.Leading {
		sb.WriteString(tv.Text)
	}
	sb.WriteString(t.Text)
	for _, tv := range t.Trailing {
		sb.WriteString(tv.Text)
	}
}

// FullSpan covers the token and all of its trivia. Synthesized trivia
// (zero span) does not widen the result.
func (t Token) FullSpan() source.Span {
	sp := t.Span
	if len(t.Leading) > 0 && !t.Leading[0].Span.Empty() {
		sp.Start = t.Leading[0].Span.Start
	}
	if n := len(t.Trailing); n > 0 && !t.Trailing[n-1].Span.Empty() {
		sp.End = t.Trailing[n-1].Span.End
	}
	return sp
}

// Synthesized reports whether the token was created by a rewrite rather than lexed.
func (t Token) Synthesized() bool {
	return t.Span == (source.Span{}) && t.Text != ""
}

// Same reports whether two tokens are the same lexed token with identical trivia.
func (t Token) Same(other Token) bool {
	return t.Kind == other.Kind &&
		t.Span == other.Span &&
		t.Text == other.Text &&
		t.Leading.Identical(other.Leading) &&
		t.Trailing.Identical(other.Trailing)
}

// IsModifierKeyword reports whether the token is one of the modifier keywords.
func (t Token) IsModifierKeyword() bool {
	return t.Kind >= KwNew && t.Kind <= KwParams
}

// IsKeyword reports whether the token is a reserved or contextual keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwNew && t.Kind <= Keyword
}

// IsLiteral reports whether the token is a numeric, string or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LBrace && t.Kind <= Operator
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
