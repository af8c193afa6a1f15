package csharp

import (
	sitter "github.com/smacker/go-tree-sitter"

	"declfix/internal/diag"
	"declfix/internal/modifier"
	"declfix/internal/source"
	"declfix/internal/syntax"
	"declfix/internal/token"
)

type builder struct {
	file   *source.File
	toks   []token.Token
	src    []byte
	rep    diag.Reporter
	budget int
	errs   int
	nested []syntax.Decl
}

// built is a declaration together with its token range [lo, hi).
type built struct {
	decl   syntax.Decl
	lo, hi int
}

// members collects the member declarations among the children of list.
// A file-scoped namespace adopts every declaration that follows it.
func (b *builder) members(list *sitter.Node) []built {
	var out []built
	count := int(list.ChildCount())
	for i := 0; i < count; i++ {
		c := list.Child(i)
		if c == nil {
			continue
		}
		if c.Type() == "file_scoped_namespace_declaration" {
			if m, ok := b.fileScopedNamespace(list, c, i); ok {
				out = append(out, m)
			}
			return out
		}
		if m, ok := b.member(c); ok {
			out = append(out, m)
			continue
		}
		b.scanNested(c)
	}
	return out
}

func (b *builder) member(c *sitter.Node) (built, bool) {
	if c.Type() == "ERROR" {
		return b.incomplete(c)
	}
	k, ok := memberKinds[c.Type()]
	if !ok {
		return built{}, false
	}
	if k == syntax.Record && hasChild(c, "struct") {
		k = syntax.Struct
	}
	lo, hi := b.tokenRange(c)
	if lo >= hi {
		return built{}, false
	}
	attrEnd, modEnd := b.prefix(c, lo, k)
	p := syntax.Parts{
		Attrs:     b.slice(lo, attrEnd),
		Mods:      b.slice(attrEnd, modEnd),
		Name:      b.name(c),
		Malformed: c.HasError(),
	}
	if k.IsType() || k == syntax.Namespace {
		var ms []built
		body := bodyOf(c)
		if body != nil {
			ms = b.members(body)
		}
		b.scanNestedExcept(c, body)
		b.assemble(&p, modEnd, hi, ms)
	} else {
		p.Head = b.slice(modEnd, hi)
		b.scanNested(c)
	}
	return built{decl: syntax.New(k, p), lo: lo, hi: hi}, true
}

// assemble lays out head, members and tail of a container. Tokens between
// two members that belong to neither (enum commas, stray semicolons) go to
// the tail of the earlier member.
func (b *builder) assemble(p *syntax.Parts, from, hi int, ms []built) {
	if len(ms) == 0 {
		p.Head = b.slice(from, hi)
		return
	}
	p.Head = b.slice(from, ms[0].lo)
	for i, m := range ms {
		d := m.decl
		if i+1 < len(ms) {
			if gap := b.slice(m.hi, ms[i+1].lo); len(gap) > 0 {
				d = syntax.WithTail(d, append(d.Tail(), gap...))
			}
		}
		p.Members = append(p.Members, d)
	}
	p.Tail = b.slice(ms[len(ms)-1].hi, hi)
}

func (b *builder) fileScopedNamespace(list, ns *sitter.Node, at int) (built, bool) {
	lo, hi := b.tokenRange(ns)
	if lo >= hi {
		return built{}, false
	}
	// newer grammar revisions nest the members, older ones leave them as siblings
	ms := b.members(ns)
	count := int(list.ChildCount())
	for i := at + 1; i < count; i++ {
		c := list.Child(i)
		if c == nil {
			continue
		}
		if m, ok := b.member(c); ok {
			ms = append(ms, m)
			continue
		}
		b.scanNested(c)
	}
	if len(ms) > 0 && ms[len(ms)-1].hi > hi {
		hi = ms[len(ms)-1].hi
	}
	p := syntax.Parts{
		Name:      b.name(ns),
		Malformed: ns.HasError(),
	}
	attrEnd, _ := b.prefix(ns, lo, syntax.Namespace)
	p.Attrs = b.slice(lo, attrEnd)
	b.assemble(&p, attrEnd, hi, ms)
	return built{decl: syntax.New(syntax.Namespace, p), lo: lo, hi: hi}, true
}

// incomplete turns an ERROR node in a member list into an incomplete member:
// leading modifier keywords become its modifier list.
func (b *builder) incomplete(c *sitter.Node) (built, bool) {
	lo, hi := b.tokenRange(c)
	if lo >= hi {
		return built{}, false
	}
	i := lo
	for i < hi {
		if _, ok := modifier.FromToken(b.toks[i].Kind); !ok {
			break
		}
		i++
	}
	b.scanNested(c)
	d := syntax.New(syntax.IncompleteMember, syntax.Parts{
		Mods:      b.slice(lo, i),
		Head:      b.slice(i, hi),
		Malformed: true,
	})
	return built{decl: d, lo: lo, hi: hi}, true
}

// prefix finds where the attribute lists and the modifier run of n end.
// Kinds that cannot carry modifiers keep them in the head.
func (b *builder) prefix(n *sitter.Node, lo int, k syntax.Kind) (attrEnd, modEnd int) {
	attrEnd, modEnd = lo, lo
	count := int(n.ChildCount())
scan:
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch typ := c.Type(); {
		case typ == "attribute_list":
			attrEnd = b.tokenAt(c.EndByte())
			modEnd = attrEnd
		case typ == "modifier" || typ == "parameter_modifier" || (!c.IsNamed() && modifierWord(typ)):
			modEnd = b.tokenAt(c.EndByte())
		default:
			break scan
		}
	}
	if k == syntax.Namespace || k == syntax.EnumMember {
		modEnd = attrEnd
	}
	return attrEnd, modEnd
}

func (b *builder) name(n *sitter.Node) string {
	if c := n.ChildByFieldName("name"); c != nil {
		return b.text(c)
	}
	if n.Type() == "accessor_declaration" {
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			if c := n.Child(i); c != nil && accessorWords[c.Type()] {
				return c.Type()
			}
		}
	}
	decl := findFirst(n, "variable_declarator", 3)
	if decl == nil {
		return ""
	}
	if c := decl.ChildByFieldName("name"); c != nil {
		return b.text(c)
	}
	if c := findFirst(decl, "identifier", 1); c != nil {
		return b.text(c)
	}
	return ""
}

func (b *builder) text(n *sitter.Node) string {
	return string(b.src[n.StartByte():n.EndByte()])
}

// scanNested records accessors, parameters, locals and local functions
// found anywhere under n. Member lists are left to members.
func (b *builder) scanNested(n *sitter.Node) {
	b.scanNestedExcept(n, nil)
}

func (b *builder) scanNestedExcept(n, skip *sitter.Node) {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c == nil || sameNode(c, skip) || bodyTypes[c.Type()] {
			continue
		}
		if k, ok := nestedKinds[c.Type()]; ok {
			b.nestedDecl(c, k)
		}
		b.scanNested(c)
	}
}

func (b *builder) nestedDecl(n *sitter.Node, k syntax.Kind) {
	lo, hi := b.tokenRange(n)
	if lo >= hi {
		return
	}
	attrEnd, modEnd := b.prefix(n, lo, k)
	b.nested = append(b.nested, syntax.New(k, syntax.Parts{
		Attrs:     b.slice(lo, attrEnd),
		Mods:      b.slice(attrEnd, modEnd),
		Head:      b.slice(modEnd, hi),
		Name:      b.name(n),
		Malformed: n.HasError(),
	}))
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func bodyOf(n *sitter.Node) *sitter.Node {
	if c := n.ChildByFieldName("body"); c != nil && bodyTypes[c.Type()] {
		return c
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && bodyTypes[c.Type()] {
			return c
		}
	}
	return nil
}

func hasChild(n *sitter.Node, typ string) bool {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil && c.Type() == typ {
			return true
		}
	}
	return false
}

// findFirst is a depth-limited pre-order search for a node of type typ.
func findFirst(n *sitter.Node, typ string, depth int) *sitter.Node {
	if depth == 0 {
		return nil
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		if c.Type() == typ {
			return c
		}
		if r := findFirst(c, typ, depth-1); r != nil {
			return r
		}
	}
	return nil
}
