package rewrite

import (
	"declfix/internal/access"
	"declfix/internal/modifier"
	"declfix/internal/syntax"
)

// Strategy is how ChangeAccessibility turns one level into another.
type Strategy uint8

const (
	// Unchanged: the declaration already has the requested level.
	Unchanged Strategy = iota
	// SingleTokenSwap rewrites one keyword in place, keeping its trivia.
	SingleTokenSwap
	// RemoveThenInsert drops the current keywords and inserts the new ones
	// at their canonical positions.
	RemoveThenInsert
)

func (s Strategy) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case SingleTokenSwap:
		return "swap"
	case RemoveThenInsert:
		return "remove-insert"
	default:
		return "strategy(?)"
	}
}

// PlanAccessibility picks the strategy ChangeAccessibility will use.
// A swap is only valid when the new keyword would be inserted right where
// the old one sits: at its index or just past it, since the old token shares
// the rank of the new one.
func PlanAccessibility(d syntax.Decl, a access.Accessibility, c modifier.Comparer) Strategy {
	m := mustModifiable(d)
	info := access.Classify(m.Modifiers())
	if info.Accessibility == a {
		return Unchanged
	}
	if !access.IsSingleToken(info.Accessibility) || !access.IsSingleToken(a) {
		return RemoveThenInsert
	}
	idx := modifier.InsertionIndex(c, m.Modifiers().Tokens(), access.Kinds(a)[0])
	if idx == info.Primary || idx == info.Primary+1 {
		return SingleTokenSwap
	}
	return RemoveThenInsert
}

// ChangeAccessibility returns d with accessibility a. NotApplicable removes
// the accessibility keywords altogether.
func ChangeAccessibility(d syntax.Decl, a access.Accessibility, c modifier.Comparer) syntax.Decl {
	switch PlanAccessibility(d, a, c) {
	case Unchanged:
		return d
	case SingleTokenSwap:
		m := d.(syntax.Modifiable)
		info := access.Classify(m.Modifiers())
		old := m.Modifiers().At(info.Primary)
		repl := syntax.NewModifierToken(access.Kinds(a)[0]).
			WithLeading(old.Leading).
			WithTrailing(old.Trailing)
		return m.WithModifiers(m.Modifiers().Replace(info.Primary, repl))
	}
	d = RemoveAccessibility(d)
	for _, k := range access.Kinds(a) {
		d = InsertKind(d, k, c)
	}
	return d
}

// CanChangeAccessibility reports whether ChangeAccessibility(d, a) is both
// possible and legal for d inside parent (nil for file level).
func CanChangeAccessibility(d, parent syntax.Decl, a access.Accessibility) bool {
	m, ok := d.(syntax.Modifiable)
	if !ok || d.Malformed() || !m.Modifiers().Known() {
		return false
	}
	return access.Allowed(d, parent, a)
}
