package syntax

import (
	"fmt"
	"slices"

	"declfix/internal/token"
)

// clone copies the concrete node behind d and returns the copy together with
// its mutable core. Only this package mutates the core, and only on fresh copies.
func clone(d Decl) (Decl, *node) {
	switch v := d.(type) {
	case *TypeDecl:
		c := *v
		return &c, &c.node
	case *NamespaceDecl:
		c := *v
		return &c, &c.node
	case *MemberDecl:
		c := *v
		return &c, &c.node
	case *UnnamedDecl:
		c := *v
		return &c, &c.node
	case *EnumMemberDecl:
		c := *v
		return &c, &c.node
	default:
		panic(fmt.Errorf("syntax: unexpected declaration type %T", d))
	}
}

// WithHead returns a copy of d with its head tokens replaced.
func WithHead(d Decl, head []token.Token) Decl {
	c, n := clone(d)
	n.head = slices.Clone(head)
	return c
}

// WithTail returns a copy of d with its tail tokens replaced.
func WithTail(d Decl, tail []token.Token) Decl {
	c, n := clone(d)
	n.tail = slices.Clone(tail)
	return c
}

// WithAttributes returns a copy of d with its attribute tokens replaced.
func WithAttributes(d Decl, attrs []token.Token) Decl {
	c, n := clone(d)
	n.attrs = slices.Clone(attrs)
	return c
}

// WithLeadingTrivia replaces the leading trivia of the first token of d.
// A declaration without tokens is returned unchanged.
func WithLeadingTrivia(d Decl, l token.TriviaList) Decl {
	n := d.base()
	switch {
	case len(n.attrs) > 0:
		attrs := slices.Clone(n.attrs)
		attrs[0] = attrs[0].WithLeading(l)
		return WithAttributes(d, attrs)
	case n.mods.Len() > 0:
		c, cn := clone(d)
		cn.mods = n.mods.Replace(0, n.mods.At(0).WithLeading(l))
		return c
	case len(n.head) > 0:
		head := slices.Clone(n.head)
		head[0] = head[0].WithLeading(l)
		return WithHead(d, head)
	case len(n.members) > 0:
		c, cn := clone(d)
		cn.members = slices.Clone(n.members)
		cn.members[0] = WithLeadingTrivia(cn.members[0], l)
		return c
	case len(n.tail) > 0:
		tail := slices.Clone(n.tail)
		tail[0] = tail[0].WithLeading(l)
		return WithTail(d, tail)
	}
	return d
}

// AfterModifiers returns the first token that follows the modifier list, if any.
func AfterModifiers(d Decl) (token.Token, bool) {
	n := d.base()
	if len(n.head) > 0 {
		return n.head[0], true
	}
	for _, m := range n.members {
		if t, ok := m.base().first(); ok {
			return t, true
		}
	}
	if len(n.tail) > 0 {
		return n.tail[0], true
	}
	return token.Token{}, false
}

// WithAfterModifiers replaces the token returned by AfterModifiers.
func WithAfterModifiers(d Decl, tok token.Token) Decl {
	n := d.base()
	if len(n.head) > 0 {
		head := slices.Clone(n.head)
		head[0] = tok
		return WithHead(d, head)
	}
	for i, m := range n.members {
		if _, ok := m.base().first(); ok {
			c, cn := clone(d)
			cn.members = slices.Clone(n.members)
			cn.members[i] = WithLeadingTrivia(m, tok.Leading)
			return c
		}
	}
	if len(n.tail) > 0 {
		tail := slices.Clone(n.tail)
		tail[0] = tok
		return WithTail(d, tail)
	}
	return d
}
