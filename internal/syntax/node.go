package syntax

import (
	"slices"

	"declfix/internal/source"
	"declfix/internal/token"
)

// Decl is any declaration node.
type Decl interface {
	Kind() Kind
	// Tokens returns every token of the node in source order, members included.
	Tokens() []token.Token
	// Span covers the node text without its outer trivia.
	Span() source.Span
	// FullSpan covers the node including leading and trailing trivia.
	FullSpan() source.Span
	// Malformed reports that the parser recovered from an error inside the node.
	Malformed() bool
	Attributes() []token.Token
	Head() []token.Token
	Tail() []token.Token

	base() *node
}

// Modifiable declarations own a modifier list.
type Modifiable interface {
	Decl
	Modifiers() ModifierList
	WithModifiers(ModifierList) Decl
}

// Named declarations have an identifier.
type Named interface {
	Decl
	Name() string
}

// Container declarations own member declarations.
type Container interface {
	Decl
	Members() []Decl
	WithMembers([]Decl) Decl
}

type node struct {
	kind      Kind
	attrs     []token.Token
	mods      ModifierList
	head      []token.Token
	members   []Decl
	tail      []token.Token
	name      string
	malformed bool
}

func (n *node) base() *node { return n }

func (n *node) Kind() Kind { return n.kind }

func (n *node) Malformed() bool { return n.malformed }

func (n *node) Attributes() []token.Token { return slices.Clone(n.attrs) }

func (n *node) Head() []token.Token { return slices.Clone(n.head) }

func (n *node) Tail() []token.Token { return slices.Clone(n.tail) }

func (n *node) Tokens() []token.Token {
	out := make([]token.Token, 0, n.countTokens())
	return n.appendTokens(out)
}

func (n *node) countTokens() int {
	c := len(n.attrs) + n.mods.Len() + len(n.head) + len(n.tail)
	for _, m := range n.members {
		c += m.base().countTokens()
	}
	return c
}

func (n *node) appendTokens(out []token.Token) []token.Token {
	out = append(out, n.attrs...)
	out = append(out, n.mods.toks...)
	out = append(out, n.head...)
	for _, m := range n.members {
		out = m.base().appendTokens(out)
	}
	return append(out, n.tail...)
}

// first and last yield the outermost tokens without materialising the list.
func (n *node) first() (token.Token, bool) {
	switch {
	case len(n.attrs) > 0:
		return n.attrs[0], true
	case n.mods.Len() > 0:
		return n.mods.toks[0], true
	case len(n.head) > 0:
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

func (n *node) last() (token.Token, bool) {
	if len(n.tail) > 0 {
		return n.tail[len(n.tail)-1], true
	}
	for i := len(n.members) - 1; i >= 0; i-- {
		if t, ok := n.members[i].base().last(); ok {
			return t, true
		}
	}
	switch {
	case len(n.head) > 0:
		return n.head[len(n.head)-1], true
	case n.mods.Len() > 0:
		return n.mods.toks[n.mods.Len()-1], true
	case len(n.attrs) > 0:
		return n.attrs[len(n.attrs)-1], true
	}
	return token.Token{}, false
}

func (n *node) Span() source.Span {
	f, ok := n.first()
	if !ok {
		return source.Span{}
	}
	l, _ := n.last()
	return source.Span{File: f.Span.File, Start: f.Span.Start, End: l.Span.End}
}

func (n *node) FullSpan() source.Span {
	f, ok := n.first()
	if !ok {
		return source.Span{}
	}
	l, _ := n.last()
	return source.Span{File: f.Span.File, Start: f.FullSpan().Start, End: l.FullSpan().End}
}

// TypeDecl is a class, struct, interface, record or enum.
type TypeDecl struct{ node }

func (d *TypeDecl) Modifiers() ModifierList { return d.mods }

func (d *TypeDecl) WithModifiers(m ModifierList) Decl {
	c := *d
	c.mods = m
	return &c
}

func (d *TypeDecl) Name() string { return d.name }

func (d *TypeDecl) Members() []Decl { return slices.Clone(d.members) }

func (d *TypeDecl) WithMembers(ms []Decl) Decl {
	c := *d
	c.members = slices.Clone(ms)
	return &c
}

// NamespaceDecl is a block or file-scoped namespace. It carries no modifiers.
type NamespaceDecl struct{ node }

func (d *NamespaceDecl) Name() string { return d.name }

func (d *NamespaceDecl) Members() []Decl { return slices.Clone(d.members) }

func (d *NamespaceDecl) WithMembers(ms []Decl) Decl {
	c := *d
	c.members = slices.Clone(ms)
	return &c
}

// MemberDecl is a named declaration with modifiers: methods, properties,
// fields, events, constructors, delegates, accessors, locals and parameters.
type MemberDecl struct{ node }

func (d *MemberDecl) Modifiers() ModifierList { return d.mods }

func (d *MemberDecl) WithModifiers(m ModifierList) Decl {
	c := *d
	c.mods = m
	return &c
}

func (d *MemberDecl) Name() string { return d.name }

// UnnamedDecl is a declaration with modifiers but no meaningful identifier:
// destructors, indexers, operators and incomplete members.
type UnnamedDecl struct{ node }

func (d *UnnamedDecl) Modifiers() ModifierList { return d.mods }

func (d *UnnamedDecl) WithModifiers(m ModifierList) Decl {
	c := *d
	c.mods = m
	return &c
}

// EnumMemberDecl is one enum constant.
type EnumMemberDecl struct{ node }

func (d *EnumMemberDecl) Name() string { return d.name }
