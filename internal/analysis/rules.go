package analysis

import (
	"fmt"

	"declfix/internal/access"
	"declfix/internal/diag"
	"declfix/internal/fix"
	"declfix/internal/members"
	"declfix/internal/modifier"
	"declfix/internal/rewrite"
	"declfix/internal/source"
	"declfix/internal/syntax"
)

// editable returns the modifier list of d when the rules may touch it:
// parsed cleanly and made of known modifier keywords only.
func editable(d syntax.Decl) (syntax.ModifierList, bool) {
	m, ok := d.(syntax.Modifiable)
	if !ok || d.Malformed() {
		return syntax.ModifierList{}, false
	}
	mods := m.Modifiers()
	return mods, mods.Known()
}

func modifierSpan(mods syntax.ModifierList) source.Span {
	return mods.At(0).Span.Cover(mods.At(mods.Len() - 1).Span)
}

func checkModifierOrder(p *pass, d, _ syntax.Decl) {
	mods, ok := editable(d)
	if !ok || mods.Len() < 2 {
		return
	}
	c := p.comparer(d)
	if modifier.IsSorted(c, mods.Tokens()) {
		return
	}
	updated := rewrite.OrderModifiers(d, c)
	want := updated.(syntax.Modifiable).Modifiers().String()
	f, ok := fix.FromDecl(fmt.Sprintf("Reorder modifiers to %q", want), p.file, d, updated, fix.Preferred())
	if !ok {
		return
	}
	diag.ReportWarning(p.rep, diag.StyModifierOrder, modifierSpan(mods),
		fmt.Sprintf("modifiers %q of %s are not in canonical order, expected %q", mods.String(), describe(d), want)).
		WithFixSuggestion(&f).
		Emit()
}

func checkAccessibilityPair(p *pass, d, _ syntax.Decl) {
	mods, ok := editable(d)
	if !ok || mods.Len() < 2 {
		return
	}
	c := p.comparer(d)
	// a list out of rank order is STY3001's business
	if !modifier.IsSorted(c, mods.Tokens()) || rewrite.ModifiersOrdered(d, c) {
		return
	}
	info := access.Classify(mods)
	idx := info.Indexes()
	if len(idx) != 2 {
		return
	}
	written := mods.At(idx[0]).Text + " " + mods.At(idx[1]).Text
	canonical := access.Name(info.Accessibility)
	updated := rewrite.OrderModifiers(d, c)
	f, ok := fix.FromDecl(fmt.Sprintf("Write %q", canonical), p.file, d, updated, fix.Preferred())
	if !ok {
		return
	}
	sp := mods.At(idx[0]).Span.Cover(mods.At(idx[1]).Span)
	diag.ReportInfo(p.rep, diag.StyAccessibilityPair, sp,
		fmt.Sprintf("accessibility written as %q, canonical spelling is %q", written, canonical)).
		WithFixSuggestion(&f).
		Emit()
}

func checkMissingAccessibility(p *pass, d, parent syntax.Decl) {
	mods, ok := editable(d)
	if !ok || !d.Kind().IsMember() {
		return
	}
	// partial methods without accessibility have no implementation requirement
	if d.Kind() == syntax.Method && mods.Contains(modifier.Partial) {
		return
	}
	if access.Classify(mods).Accessibility != access.NotApplicable {
		return
	}
	def := access.Default(d, parent)
	if def == access.NotApplicable || !rewrite.CanChangeAccessibility(d, parent, def) {
		return
	}
	updated := rewrite.ChangeAccessibility(d, def, p.comparer(d))
	f, ok := fix.FromDecl(fmt.Sprintf("Add %q", access.Name(def)), p.file, d, updated)
	if !ok {
		return
	}
	diag.ReportWarning(p.rep, diag.StyMissingAccessibility, nameSpan(d),
		fmt.Sprintf("%s has no explicit accessibility (it is %s)", describe(d), access.Name(def))).
		WithFixSuggestion(&f).
		Emit()
}

func checkMemberOrder(p *pass, d, _ syntax.Decl) {
	if !members.Sortable(d) || d.Malformed() {
		return
	}
	ms := d.(syntax.Container).Members()
	for _, m := range ms {
		if m.Malformed() {
			return
		}
	}
	first := -1
	for i := 1; i < len(ms); i++ {
		if p.members.Compare(ms[i-1], ms[i]) > 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return
	}
	mode, names := p.opts.MemberOrder, p.opts.MemberNames
	lazy := fix.Lazy(fmt.Sprintf("Sort members of %s", describe(d)), p.file,
		func() (syntax.Decl, syntax.Decl) {
			return d, members.NewComparer(mode, names).SortContainer(d)
		},
		fix.WithKind(diag.FixKindRefactorRewrite),
		fix.WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
	)
	diag.ReportInfo(p.rep, diag.StyMemberOrder, nameSpan(ms[first]),
		fmt.Sprintf("%s should come before %s", describe(ms[first]), describe(ms[first-1]))).
		WithNote(nameSpan(d), fmt.Sprintf("members of %s are ordered by %s", describe(d), mode)).
		WithFixSuggestion(lazy).
		Emit()
}
