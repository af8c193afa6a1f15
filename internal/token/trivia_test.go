package token_test

import (
	"testing"

	"declfix/internal/source"
	"declfix/internal/token"
)

func TestTokenFullTextAndSpan(t *testing.T) {
	tk := token.Token{
		Kind: token.KwPublic,
		Span: source.Span{Start: 20, End: 26},
		Text: "public",
		Leading: token.TriviaList{
			{Kind: token.TriviaDocComment, Span: source.Span{Start: 4, End: 15}, Text: "/// <doc/>"},
			{Kind: token.TriviaNewline, Span: source.Span{Start: 15, End: 16}, Text: "\n"},
			{Kind: token.TriviaSpace, Span: source.Span{Start: 16, End: 20}, Text: "    "},
		},
		Trailing: token.TriviaList{{Kind: token.TriviaSpace, Span: source.Span{Start: 26, End: 27}, Text: " "}},
	}
	if got := tk.FullText(); got != "/// <doc/>\n    public " {
		t.Fatalf("FullText = %q", got)
	}
	if got := tk.FullSpan(); got != (source.Span{Start: 4, End: 27}) {
		t.Fatalf("FullSpan = %v", got)
	}
	if tk.Leading.IsWhitespaceOnly() || !tk.Leading.HasNewline() {
		t.Fatalf("doc comment trivia misclassified")
	}
}

func TestTriviaListEqualIgnoresSpans(t *testing.T) {
	a := token.TriviaList{{Kind: token.TriviaSpace, Span: source.Span{Start: 3, End: 4}, Text: " "}}
	b := token.Space()
	if !a.Equal(b) {
		t.Fatalf("Equal must ignore spans")
	}
	if a.Identical(b) {
		t.Fatalf("Identical must compare spans")
	}
}

func TestConcatDoesNotAlias(t *testing.T) {
	base := make(token.TriviaList, 1, 4)
	base[0] = token.Trivia{Kind: token.TriviaSpace, Text: " "}
	x := base.Concat(token.TriviaList{{Kind: token.TriviaNewline, Text: "\n"}})
	y := base.Concat(token.TriviaList{{Kind: token.TriviaLineComment, Text: "// c"}})
	if x.Text() != " \n" || y.Text() != " // c" {
		t.Fatalf("Concat aliased its receiver: %q %q", x.Text(), y.Text())
	}
}

func TestSynthesizedToken(t *testing.T) {
	if !token.New(token.KwPrivate, "private").Synthesized() {
		t.Fatalf("New must produce a synthesized token")
	}
	lexed := token.Token{Kind: token.KwPrivate, Text: "private", Span: source.Span{Start: 0, End: 7}}
	if lexed.Synthesized() {
		t.Fatalf("lexed token reported as synthesized")
	}
}
