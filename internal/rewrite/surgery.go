package rewrite

import (
	"fmt"

	"declfix/internal/access"
	"declfix/internal/modifier"
	"declfix/internal/syntax"
	"declfix/internal/token"
)

func mustModifiable(d syntax.Decl) syntax.Modifiable {
	m, ok := d.(syntax.Modifiable)
	if !ok {
		panic(fmt.Errorf("rewrite: %s declarations carry no modifiers", d.Kind()))
	}
	return m
}

// Insert places tok at its canonical position according to c.
// tok must be a modifier keyword.
func Insert(d syntax.Decl, tok token.Token, c modifier.Comparer) syntax.Decl {
	m := mustModifiable(d)
	k, ok := modifier.FromToken(tok.Kind)
	if !ok {
		panic(fmt.Errorf("rewrite: %s is not a modifier keyword", tok.Kind))
	}
	idx := modifier.InsertionIndex(c, m.Modifiers().Tokens(), k)
	return insertAt(m, idx, tok)
}

// InsertKind inserts a synthesized keyword of kind k.
func InsertKind(d syntax.Decl, k modifier.Kind, c modifier.Comparer) syntax.Decl {
	return Insert(d, syntax.NewModifierToken(k), c)
}

func insertAt(m syntax.Modifiable, idx int, tok token.Token) syntax.Decl {
	mods := m.Modifiers()
	tok = tok.WithLeading(nil).WithTrailing(syntax.Space())
	if idx > 0 {
		// "public/**/static" style lists have no separator to reuse
		if prev := mods.At(idx - 1); len(prev.Trailing) == 0 {
			tok = tok.WithLeading(syntax.Space())
		}
		return m.WithModifiers(mods.Insert(idx, tok))
	}

	// the new first token inherits the declaration's leading trivia
	if mods.Len() > 0 {
		displaced := mods.At(0)
		tok = tok.WithLeading(displaced.Leading)
		mods = mods.Replace(0, displaced.WithLeading(nil))
		return m.WithModifiers(mods.Insert(0, tok))
	}
	next, ok := syntax.AfterModifiers(m)
	if !ok {
		return m.WithModifiers(mods.Insert(0, tok.WithTrailing(nil)))
	}
	tok = tok.WithLeading(next.Leading)
	d := m.WithModifiers(mods.Insert(0, tok))
	return syntax.WithAfterModifiers(d, next.WithLeading(nil))
}

// Remove deletes the modifier token that is the same lexed token as tok.
// A token that is not in the list leaves d unchanged.
func Remove(d syntax.Decl, tok token.Token) syntax.Decl {
	m := mustModifiable(d)
	for i, t := range m.Modifiers().Tokens() {
		if t.Same(tok) {
			return removeAt(m, i)
		}
	}
	return d
}

// RemoveKind deletes the first modifier of kind k, if any.
func RemoveKind(d syntax.Decl, k modifier.Kind) syntax.Decl {
	m := mustModifiable(d)
	i := m.Modifiers().IndexOf(k)
	if i < 0 {
		return d
	}
	return removeAt(m, i)
}

// RemoveAt deletes the i-th modifier; out-of-range indexes panic.
func RemoveAt(d syntax.Decl, i int) syntax.Decl {
	m := mustModifiable(d)
	_ = m.Modifiers().At(i)
	return removeAt(m, i)
}

// RemoveAccessibility deletes every accessibility keyword the classifier
// attributes to the declaration, highest index first.
func RemoveAccessibility(d syntax.Decl) syntax.Decl {
	m := mustModifiable(d)
	idx := access.Classify(m.Modifiers()).Indexes()
	for i := len(idx) - 1; i >= 0; i-- {
		d = removeAt(d.(syntax.Modifiable), idx[i])
	}
	return d
}

// RemoveAll deletes the whole modifier list.
func RemoveAll(d syntax.Decl) syntax.Decl {
	m := mustModifiable(d)
	for i := m.Modifiers().Len() - 1; i >= 0; i-- {
		d = removeAt(d.(syntax.Modifiable), i)
	}
	return d
}

func removeAt(m syntax.Modifiable, i int) syntax.Decl {
	mods := m.Modifiers()
	removed := mods.At(i)
	mods = mods.RemoveAt(i)

	// kept: a comment that trailed the removed keyword
	var kept token.TriviaList
	if !removed.Trailing.IsWhitespaceOnly() {
		kept = removed.Trailing
	}

	ownLine := false
	if i > 0 {
		prev := mods.At(i - 1)
		ownLine = prev.Trailing.HasNewline()
		if kept != nil && !ownLine {
			own := prev.Trailing
			if startsWithSpace(kept) {
				own = trimTrailingSpace(own)
			}
			mods = mods.Replace(i-1, prev.WithTrailing(own.Concat(kept)))
			kept = nil
		}
	}

	d := m.WithModifiers(mods)
	next, ok := slotToken(d, i)
	if !ok {
		return d
	}

	switch {
	case i == 0:
		// the declaration prefix stays in front; the comment moves behind the new first token
		lead := removed.Leading
		if kept != nil {
			tr, ok := appendTrailing(next.Trailing, kept)
			if !ok {
				// both runs end a line: keep the comment line in front
				lead = lead.Concat(trimLeadingSpace(kept)).Concat(next.Leading)
				return withSlotToken(d, i, next.WithLeading(lead))
			}
			next = next.WithTrailing(tr)
		}
		if !next.Leading.IsWhitespaceOnly() {
			lead = lead.Concat(next.Leading)
		}
		next = next.WithLeading(lead)
	case ownLine:
		// the removed keyword started a line: its indentation goes to the next token
		carried := removed.Leading.Concat(trimLeadingSpace(kept))
		if carried.IsWhitespaceOnly() && removed.Trailing.HasNewline() {
			return d
		}
		if endsWithNewline(carried) || !next.Leading.IsWhitespaceOnly() {
			carried = carried.Concat(next.Leading)
		}
		next = next.WithLeading(carried)
	case kept == nil && removed.Trailing.HasNewline():
		// the line break went away with the token; the following indentation goes too
		if next.Leading.IsWhitespaceOnly() {
			next = next.WithLeading(nil)
		} else {
			next = next.WithLeading(trimLeadingSpace(next.Leading))
		}
	default:
		return d
	}
	return withSlotToken(d, i, next)
}

// slotToken returns the modifier at slot i or, past the end of the list,
// the first token after it.
func slotToken(d syntax.Decl, i int) (token.Token, bool) {
	if mods := d.(syntax.Modifiable).Modifiers(); i < mods.Len() {
		return mods.At(i), true
	}
	return syntax.AfterModifiers(d)
}

func withSlotToken(d syntax.Decl, i int, tok token.Token) syntax.Decl {
	m := d.(syntax.Modifiable)
	if mods := m.Modifiers(); i < mods.Len() {
		return m.WithModifiers(mods.Replace(i, tok))
	}
	return syntax.WithAfterModifiers(d, tok)
}

// appendTrailing puts kept behind a token whose trailing trivia is own.
// A line comment always stays last; false means both runs end a line.
func appendTrailing(own, kept token.TriviaList) (token.TriviaList, bool) {
	if kept.HasNewline() {
		if own.HasNewline() {
			return nil, false
		}
		return trimTrailingSpace(own).Concat(kept), true
	}
	if len(own) == 0 {
		return kept, true
	}
	return trimTrailingSpace(kept).Concat(own), true
}

func startsWithSpace(l token.TriviaList) bool {
	return len(l) > 0 && l[0].Kind == token.TriviaSpace
}

func endsWithNewline(l token.TriviaList) bool {
	return len(l) > 0 && l[len(l)-1].Kind == token.TriviaNewline
}

func trimLeadingSpace(l token.TriviaList) token.TriviaList {
	for len(l) > 0 && l[0].Kind == token.TriviaSpace {
		l = l[1:]
	}
	return l
}

func trimTrailingSpace(l token.TriviaList) token.TriviaList {
	for len(l) > 0 && l[len(l)-1].Kind == token.TriviaSpace {
		l = l[:len(l)-1]
	}
	return l
}
