package syntax

import (
	"fmt"
	"slices"

	"declfix/internal/modifier"
	"declfix/internal/token"
)

// ModifierList is an immutable ordered run of modifier tokens.
// The zero value is an empty list.
type ModifierList struct {
	toks []token.Token
}

// NewModifierList copies toks into a new list.
func NewModifierList(toks ...token.Token) ModifierList {
	if len(toks) == 0 {
		return ModifierList{}
	}
	return ModifierList{toks: slices.Clone(toks)}
}

func (l ModifierList) Len() int { return len(l.toks) }

// At returns the i-th token; out-of-range indexes panic.
func (l ModifierList) At(i int) token.Token {
	if i < 0 || i >= len(l.toks) {
		panic(fmt.Errorf("syntax: modifier index %d out of range [0,%d)", i, len(l.toks)))
	}
	return l.toks[i]
}

// Tokens returns a copy of the tokens.
func (l ModifierList) Tokens() []token.Token {
	return slices.Clone(l.toks)
}

// Insert returns a list with tok at index i.
func (l ModifierList) Insert(i int, tok token.Token) ModifierList {
	if i < 0 || i > len(l.toks) {
		panic(fmt.Errorf("syntax: insert index %d out of range [0,%d]", i, len(l.toks)))
	}
	out := make([]token.Token, 0, len(l.toks)+1)
	out = append(out, l.toks[:i]...)
	out = append(out, tok)
	out = append(out, l.toks[i:]...)
	return ModifierList{toks: out}
}

// RemoveAt returns a list without the i-th token.
func (l ModifierList) RemoveAt(i int) ModifierList {
	_ = l.At(i)
	out := make([]token.Token, 0, len(l.toks)-1)
	out = append(out, l.toks[:i]...)
	out = append(out, l.toks[i+1:]...)
	return ModifierList{toks: out}
}

// Replace returns a list whose i-th token is tok.
func (l ModifierList) Replace(i int, tok token.Token) ModifierList {
	_ = l.At(i)
	out := slices.Clone(l.toks)
	out[i] = tok
	return ModifierList{toks: out}
}

// Kind returns the modifier kind of the i-th token.
func (l ModifierList) Kind(i int) (modifier.Kind, bool) {
	return modifier.FromToken(l.At(i).Kind)
}

// Kinds returns the kinds of all recognised modifier tokens in order.
func (l ModifierList) Kinds() []modifier.Kind {
	out := make([]modifier.Kind, 0, len(l.toks))
	for _, t := range l.toks {
		if k, ok := modifier.FromToken(t.Kind); ok {
			out = append(out, k)
		}
	}
	return out
}

// Known reports whether every token is a recognised modifier keyword.
func (l ModifierList) Known() bool {
	for _, t := range l.toks {
		if _, ok := modifier.FromToken(t.Kind); !ok {
			return false
		}
	}
	return true
}

// IndexOf returns the index of the first token of kind k, or -1.
func (l ModifierList) IndexOf(k modifier.Kind) int {
	tk := k.Token()
	for i, t := range l.toks {
		if t.Kind == tk {
			return i
		}
	}
	return -1
}

func (l ModifierList) Contains(k modifier.Kind) bool {
	return l.IndexOf(k) >= 0
}

// String renders the keywords separated by single spaces (for messages).
func (l ModifierList) String() string {
	var out []byte
	for i, t := range l.toks {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, t.Text...)
	}
	return string(out)
}

// NewModifierToken returns a synthesized keyword token without trivia.
func NewModifierToken(k modifier.Kind) token.Token {
	return token.New(k.Token(), modifier.Name(k))
}

// Space returns a single synthesized space trivia list.
func Space() token.TriviaList {
	return token.Space()
}
