package rewrite

import (
	"cmp"

	"declfix/internal/modifier"
	"declfix/internal/syntax"
	"declfix/internal/token"
)

// canonical breaks rank ties between accessibility keywords so that pairs
// come out as "private protected" and "protected internal".
type canonical struct {
	modifier.Comparer
}

var accessOrder = map[modifier.Kind]int{
	modifier.Private:   0,
	modifier.Protected: 1,
	modifier.Internal:  2,
	modifier.Public:    3,
}

func (c canonical) Compare(a, b modifier.Kind) int {
	if r := c.Comparer.Compare(a, b); r != 0 {
		return r
	}
	if a.IsAccessibility() && b.IsAccessibility() {
		return cmp.Compare(accessOrder[a], accessOrder[b])
	}
	return 0
}

// Canonical wraps c with the accessibility pair tie-break used by OrderModifiers.
func Canonical(c modifier.Comparer) modifier.Comparer {
	if _, ok := c.(canonical); ok {
		return c
	}
	return canonical{c}
}

// ModifiersOrdered reports whether OrderModifiers would leave d unchanged.
func ModifiersOrdered(d syntax.Decl, c modifier.Comparer) bool {
	m := mustModifiable(d)
	return modifier.IsSorted(Canonical(c), m.Modifiers().Tokens())
}

// OrderModifiers sorts the whole modifier list. The sort is stable and
// trivia stays with the slot: the token moved into position i takes the
// leading and trailing trivia that position i had.
func OrderModifiers(d syntax.Decl, c modifier.Comparer) syntax.Decl {
	m := mustModifiable(d)
	toks := m.Modifiers().Tokens()
	order := modifier.SortedOrder(Canonical(c), toks)

	moved := false
	out := make([]token.Token, len(toks))
	for i, src := range order {
		if src != i {
			moved = true
		}
		out[i] = toks[src].WithLeading(toks[i].Leading).WithTrailing(toks[i].Trailing)
	}
	if !moved {
		return d
	}
	return m.WithModifiers(syntax.NewModifierList(out...))
}
