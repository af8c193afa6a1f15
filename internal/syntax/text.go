package syntax

import (
	"strings"

	"declfix/internal/source"
	"declfix/internal/token"
)

// FullText returns the exact text of d including its outer trivia.
func FullText(d Decl) string {
	var sb strings.Builder
	for _, t := range d.Tokens() {
		t.WriteFull(&sb)
	}
	return sb.String()
}

// Text returns the text of d without the leading trivia of its first token
// and the trailing trivia of its last token.
func Text(d Decl) string {
	toks := d.Tokens()
	if len(toks) == 0 {
		return ""
	}
	toks[0] = toks[0].WithLeading(nil)
	toks[len(toks)-1] = toks[len(toks)-1].WithTrailing(nil)
	var sb strings.Builder
	for _, t := range toks {
		t.WriteFull(&sb)
	}
	return sb.String()
}

// LeadingTrivia returns the trivia in front of the first token of d: doc
// comments, attributes' indentation, blank lines.
func LeadingTrivia(d Decl) token.TriviaList {
	f, ok := d.base().first()
	if !ok {
		return nil
	}
	return f.Leading
}

// Edit computes the smallest single text replacement that turns the source
// text of old into the text of updated. old must be made of lexed tokens (it
// is the declaration as parsed); updated is any declaration derived from it.
// Unchanged tokens at both ends are kept; the full span of the changed old
// tokens is replaced by the full text of the new ones. A pure insertion is
// placed right after the preceding token's trailing trivia.
// ok is false when both versions render identically token for token.
func Edit(old, updated Decl) (span source.Span, text string, ok bool) {
	a, b := old.Tokens(), updated.Tokens()

	p := 0
	for p < len(a) && p < len(b) && a[p].Same(b[p]) {
		p++
	}
	s := 0
	for s < len(a)-p && s < len(b)-p && a[len(a)-1-s].Same(b[len(b)-1-s]) {
		s++
	}
	if p == len(a) && p == len(b) {
		return source.Span{}, "", false
	}

	oldMid, newMid := a[p:len(a)-s], b[p:len(b)-s]

	var sb strings.Builder
	for _, t := range newMid {
		t.WriteFull(&sb)
	}

	switch {
	case len(oldMid) > 0:
		span = oldMid[0].FullSpan().Cover(oldMid[len(oldMid)-1].FullSpan())
	case p > 0:
		end := a[p-1].FullSpan().End
		span = source.Span{File: a[p-1].Span.File, Start: end, End: end}
	case len(a) > 0:
		start := a[0].FullSpan().Start
		span = source.Span{File: a[0].Span.File, Start: start, End: start}
	default:
		return source.Span{}, "", false
	}
	return span, sb.String(), true
}
