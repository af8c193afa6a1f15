package token

import (
	"strings"

	"declfix/internal/source"
)

// TriviaKind classifies non-semantic source text attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace        TriviaKind = iota // spaces and tabs
	TriviaNewline                        // one or more line breaks
	TriviaLineComment                    // // ...
	TriviaBlockComment                   // /* ... */
	TriviaDocComment                     // /// ...
	TriviaDirective                      // #region, #if, ... (whole line)
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocComment:
		return "DocComment"
	case TriviaDirective:
		return "Directive"
	default:
		return "Trivia(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsWhitespace reports whether the trivia carries no comment or directive.
func (t Trivia) IsWhitespace() bool {
	return t.Kind == TriviaSpace || t.Kind == TriviaNewline
}

// TriviaList is an ordered run of trivia. Values are never mutated in place;
// every helper returns a fresh slice.
type TriviaList []Trivia

// Space returns a list holding a single synthesized space.
func Space() TriviaList {
	return TriviaList{{Kind: TriviaSpace, Text: " "}}
}

// Text concatenates the source text of every item.
func (l TriviaList) Text() string {
	if len(l) == 1 {
		return l[0].Text
	}
	var sb strings.Builder
	for _, t := range l {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// IsWhitespaceOnly reports whether the list has no comments or directives.
// An empty list is whitespace-only.
func (l TriviaList) IsWhitespaceOnly() bool {
	for _, t := range l {
		if !t.IsWhitespace() {
			return false
		}
	}
	return true
}

// HasNewline reports whether the list contains a line break.
func (l TriviaList) HasNewline() bool {
	for _, t := range l {
		if t.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// Concat returns l followed by other without aliasing either input.
func (l TriviaList) Concat(other TriviaList) TriviaList {
	if len(l) == 0 && len(other) == 0 {
		return nil
	}
	out := make(TriviaList, 0, len(l)+len(other))
	out = append(out, l...)
	return append(out, other...)
}

// Equal compares kinds and text; spans are ignored so that moved trivia
// compares equal to its original.
func (l TriviaList) Equal(other TriviaList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i].Kind != other[i].Kind || l[i].Text != other[i].Text {
			return false
		}
	}
	return true
}

// Identical compares kinds, text and spans.
func (l TriviaList) Identical(other TriviaList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
